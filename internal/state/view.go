package state

import (
	"strings"

	"github.com/five82/binder/internal/browse"
)

// ViewMode is the display density. It never affects which cards are shown.
type ViewMode int

const (
	Grid ViewMode = iota
	List
	Compact
)

// ViewModes lists every mode in cycling order.
var ViewModes = []ViewMode{Grid, List, Compact}

func (m ViewMode) String() string {
	switch m {
	case List:
		return "list"
	case Compact:
		return "compact"
	default:
		return "grid"
	}
}

// Next returns the mode after m, wrapping around.
func (m ViewMode) Next() ViewMode {
	for i, mode := range ViewModes {
		if mode == m {
			return ViewModes[(i+1)%len(ViewModes)]
		}
	}
	return Grid
}

// Valid reports whether m is one of the known modes.
func (m ViewMode) Valid() bool {
	return m >= Grid && m <= Compact
}

// ParseViewMode maps a mode name to a ViewMode.
func ParseViewMode(value string) (ViewMode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "grid":
		return Grid, true
	case "list":
		return List, true
	case "compact":
		return Compact, true
	}
	return Grid, false
}

// View is the browser's UI state. Values are treated as immutable: Reduce
// always returns a fresh copy.
type View struct {
	Page     int
	PageSize int
	Mode     ViewMode
	Criteria browse.Criteria
	Marked   map[int64]bool
	Grouping browse.Grouping
}

// NewView returns the initial state: first page, no filters.
func NewView(pageSize int, mode ViewMode) View {
	if pageSize <= 0 {
		pageSize = browse.DefaultPageSize
	}
	if !mode.Valid() {
		mode = Grid
	}
	return View{Page: 1, PageSize: pageSize, Mode: mode}
}

// Clone returns a deep copy of v.
func (v View) Clone() View {
	v.Criteria = v.Criteria.Clone()
	if v.Marked != nil {
		marked := make(map[int64]bool, len(v.Marked))
		for id, ok := range v.Marked {
			if ok {
				marked[id] = true
			}
		}
		v.Marked = marked
	}
	return v
}

// Query converts the view into pipeline input.
func (v View) Query() browse.Query {
	return browse.Query{
		Criteria: v.Criteria,
		Page:     v.Page,
		PageSize: v.PageSize,
		Marked:   v.Marked,
		Grouping: v.Grouping,
	}
}

// IsMarked reports whether the card with id is struck out.
func (v View) IsMarked(id int64) bool {
	return v.Marked[id]
}

// Normalize clamps the page into [1, max(1, ceil(filteredCount/PageSize))].
func Normalize(v View, filteredCount int) View {
	next := v.Clone()
	next.Page = browse.ClampPage(v.Page, browse.TotalPages(filteredCount, v.PageSize))
	return next
}
