// Package render materialises a page of cards into display nodes and writes
// them, together with the stats, to a Surface.
//
// Nodes are cached by card id. A card never changes without a reload, so a
// cached node is always valid until Renderer.Reset is called.
package render
