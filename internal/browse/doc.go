// Package browse derives what the browser shows from the loaded collection:
// the filtered set, the current page window, the aggregate stats and the
// distribution summary.
//
// Everything here is a pure function over a card slice. Filtering never
// reorders cards, paginating never fails (out-of-range pages clamp or come
// back empty), and stats are always computed over the filtered set rather
// than the visible page.
package browse
