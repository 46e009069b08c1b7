package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSidebarWidth is the minimum width at which the distribution
	// sidebar is shown.
	LayoutSidebarWidth = 90

	// SidebarWidth is the width of the distribution sidebar, border included.
	SidebarWidth = 28

	// TileWidth is the outer width of a grid tile.
	TileWidth = 28

	// PageStripRadius is how many page numbers the footer shows on each
	// side of the current page.
	PageStripRadius = 2
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI polls the store for reloads.
	DefaultUIInterval = time.Second
)

// Search debouncer key.
const searchKey = "search"
