package browse

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/binder/internal/collection"
)

// Criteria are the active filters. Zero values match everything.
type Criteria struct {
	Search string
	Rarity string
	Colors []string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && strings.TrimSpace(c.Rarity) == "" && len(c.Colors) == 0
}

// Clone returns a copy that shares no memory with c.
func (c Criteria) Clone() Criteria {
	if c.Colors != nil {
		colors := make([]string, len(c.Colors))
		copy(colors, c.Colors)
		c.Colors = colors
	}
	return c
}

// HasColor reports whether tag is part of the colour criterion.
func (c Criteria) HasColor(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, color := range c.Colors {
		if color == tag {
			return true
		}
	}
	return false
}

// Filter returns the cards satisfying every active criterion, in source
// order. A card passes when the search text is empty or contained in any of
// its text fields (case-insensitive), the rarity is empty or equal to the
// card's, and the colour set is empty or intersects the card's colours.
func Filter(c Criteria, cards []collection.Card) []collection.Card {
	m := newMatcher(c)
	out := make([]collection.Card, 0, len(cards))
	for _, card := range cards {
		if m.match(card) {
			out = append(out, card)
		}
	}
	return out
}

type matcher struct {
	fold   cases.Caser
	needle string
	rarity string
	colors []string
}

func newMatcher(c Criteria) *matcher {
	// Casers keep state and are not safe to share; one per call.
	fold := cases.Fold()
	m := &matcher{fold: fold}
	if search := strings.TrimSpace(c.Search); search != "" {
		m.needle = fold.String(search)
	}
	if rarity := strings.TrimSpace(c.Rarity); rarity != "" {
		m.rarity = fold.String(rarity)
	}
	for _, color := range c.Colors {
		if tag := strings.ToLower(strings.TrimSpace(color)); tag != "" {
			m.colors = append(m.colors, tag)
		}
	}
	return m
}

func (m *matcher) match(card collection.Card) bool {
	return m.matchSearch(card) && m.matchRarity(card) && m.matchColors(card)
}

func (m *matcher) matchSearch(card collection.Card) bool {
	if m.needle == "" {
		return true
	}
	for _, field := range card.Fields() {
		if strings.Contains(m.fold.String(field), m.needle) {
			return true
		}
	}
	return false
}

func (m *matcher) matchRarity(card collection.Card) bool {
	if m.rarity == "" {
		return true
	}
	return m.fold.String(card.Rarity) == m.rarity
}

func (m *matcher) matchColors(card collection.Card) bool {
	if len(m.colors) == 0 {
		return true
	}
	for _, tag := range m.colors {
		if card.HasColor(tag) {
			return true
		}
	}
	return false
}
