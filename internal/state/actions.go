package state

import (
	"strings"
)

// Action is a discrete user intent. Actions are applied with Reduce.
type Action interface {
	apply(View) View
}

// Filter actions. Each one resets the page to 1.
type (
	SetSearch   struct{ Text string }
	SetRarity   struct{ Value string }
	ToggleColor struct{ Tag string }
	// CycleRarity steps the rarity filter through Options, then back to none.
	CycleRarity  struct{ Options []string }
	ClearFilters struct{}
)

// Page and display actions. None of them touch the filter criteria.
type (
	SetPage struct{ N int }
	// NextPage advances one page; TotalPages bounds it when positive.
	NextPage      struct{ TotalPages int }
	PrevPage      struct{}
	SetView       struct{ Mode ViewMode }
	CycleView     struct{}
	ToggleMark    struct{ ID int64 }
	CycleGrouping struct{}
)

// Reduce applies a to v and returns the resulting state. v is never
// modified.
func Reduce(v View, a Action) View {
	next := v.Clone()
	if a == nil {
		return next
	}
	return a.apply(next)
}

// IsFilterAction reports whether a changes the filter criteria.
func IsFilterAction(a Action) bool {
	switch a.(type) {
	case SetSearch, SetRarity, ToggleColor, CycleRarity, ClearFilters:
		return true
	}
	return false
}

func (a SetSearch) apply(v View) View {
	v.Criteria.Search = a.Text
	v.Page = 1
	return v
}

func (a SetRarity) apply(v View) View {
	v.Criteria.Rarity = strings.ToLower(strings.TrimSpace(a.Value))
	v.Page = 1
	return v
}

func (a ToggleColor) apply(v View) View {
	tag := strings.ToLower(strings.TrimSpace(a.Tag))
	if tag == "" {
		return v
	}
	colors := make([]string, 0, len(v.Criteria.Colors)+1)
	removed := false
	for _, c := range v.Criteria.Colors {
		if c == tag {
			removed = true
			continue
		}
		colors = append(colors, c)
	}
	if !removed {
		colors = append(colors, tag)
	}
	if len(colors) == 0 {
		colors = nil
	}
	v.Criteria.Colors = colors
	v.Page = 1
	return v
}

func (a CycleRarity) apply(v View) View {
	current := v.Criteria.Rarity
	next := ""
	if len(a.Options) > 0 {
		if current == "" {
			next = a.Options[0]
		} else {
			for i, opt := range a.Options {
				if strings.EqualFold(opt, current) && i+1 < len(a.Options) {
					next = a.Options[i+1]
					break
				}
			}
		}
	}
	return SetRarity{Value: next}.apply(v)
}

func (ClearFilters) apply(v View) View {
	v.Criteria = v.Criteria.Clone()
	v.Criteria.Search = ""
	v.Criteria.Rarity = ""
	v.Criteria.Colors = nil
	v.Page = 1
	return v
}

func (a SetPage) apply(v View) View {
	if a.N < 1 {
		a.N = 1
	}
	v.Page = a.N
	return v
}

func (a NextPage) apply(v View) View {
	if a.TotalPages > 0 && v.Page >= a.TotalPages {
		v.Page = a.TotalPages
		return v
	}
	v.Page++
	return v
}

func (PrevPage) apply(v View) View {
	if v.Page > 1 {
		v.Page--
	} else {
		v.Page = 1
	}
	return v
}

func (a SetView) apply(v View) View {
	if a.Mode.Valid() {
		v.Mode = a.Mode
	}
	return v
}

func (CycleView) apply(v View) View {
	v.Mode = v.Mode.Next()
	return v
}

func (a ToggleMark) apply(v View) View {
	if v.Marked == nil {
		v.Marked = make(map[int64]bool)
	}
	if v.Marked[a.ID] {
		delete(v.Marked, a.ID)
	} else {
		v.Marked[a.ID] = true
	}
	return v
}

func (CycleGrouping) apply(v View) View {
	v.Grouping = v.Grouping.Next()
	return v
}
