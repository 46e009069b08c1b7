// Package state holds the browser's mutable state in two forms.
//
// # View state
//
// View is the UI state: current page, page size, view mode, filter criteria,
// struck-out cards and distribution grouping. It is only ever changed by
// applying an Action through Reduce:
//
//	next := state.Reduce(current, state.SetSearch{Text: "drag"})
//
// Reduce is pure. It clones the input, applies the action to the clone and
// returns it, so a View held by a caller never changes underneath it. This
// is what lets the UI, the CLI and the tests share the same transitions.
//
// Rules enforced by the actions:
//
//   - Filter actions (SetSearch, SetRarity, ToggleColor, CycleRarity,
//     ClearFilters) reset Page to 1.
//   - Page and display actions (SetPage, NextPage, PrevPage, SetView,
//     CycleView, ToggleMark, CycleGrouping) never touch the criteria.
//   - Page is kept >= 1 by the actions; the upper bound depends on the
//     filtered count and is applied by browse.Run or Normalize.
//
// # Collection store
//
// Store carries the loaded collection from the loader goroutine (initial
// load and file-watch reloads) to the UI:
//
//	Loader / watcher:              UI:
//	┌──────────────────┐          ┌───────────────────┐
//	│ repo.Reload()    │          │                   │
//	│      ↓           │          │                   │
//	│ store.Update()   │─────────→│ store.Snapshot()  │
//	│                  │ (mutex)  │      ↓            │
//	│                  │          │ reset render cache│
//	│                  │          │ when Generation   │
//	│                  │          │ changed           │
//	└──────────────────┘          └───────────────────┘
//
// Update semantics follow the usual snapshot rules: a successful update
// replaces the cards and clears the error; a failed one keeps the previous
// cards and only records the error. Snapshot hands out copies.
//
// The zero Store is ready to use.
package state
