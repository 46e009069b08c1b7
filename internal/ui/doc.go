// Package ui provides the Bubble Tea browser for a card collection.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling and commands
//   - search.go: search box input and debouncing
//   - header.go: header stats, filter bar, footer and distribution sidebar
//   - cards.go: grid, list and compact layouts plus the empty and error states
//   - help.go: help overlay built from the key map
//   - keys.go, theme.go, layout.go: bindings, palette and sizes
//
// # Event Flow
//
//  1. A key press is mapped to a state.Action
//  2. state.Reduce produces the next View
//  3. render.Refresh runs filter, paginate and stats, then writes the page
//     and the stats back into the Model through the render.Surface methods
//  4. The page number reported by the pipeline replaces the stored one, so an
//     out-of-range page is clamped without any message
//
// Typing into the search box does not dispatch SetSearch per keystroke. Each
// change schedules a debounce.Scheduler run under one key; only the last run
// in a burst is accepted. enter applies the text immediately and esc clears
// it.
//
// # Collection updates
//
// A tick polls state.Store. When the snapshot generation changes the node
// cache and the tile cache are both reset, then the pipeline reruns for the
// current View. If no collection has ever loaded and the last attempt failed
// the error state is shown instead of cards; a failed reload over an existing
// collection only shows a warning in the footer.
//
// # Key Bindings
//
//   - /: Search (enter applies, esc clears)
//   - r: Cycle rarity filter
//   - 1-5: Toggle white, blue, black, red, green
//   - c: Clear filters
//   - ←/h, →/l: Previous/next page
//   - g/G: First/last page
//   - j/k: Move cursor
//   - space: Strike a card out of the totals
//   - v: Cycle grid/list/compact (saved to prefs)
//   - d: Cycle distribution grouping (saved to prefs)
//   - ?: Help
//   - q, ctrl+c: Quit
package ui
