package collection

import (
	"fmt"
	"strings"
)

// Card is a single collection entry. Cards are immutable once loaded; every
// accessor that hands cards out returns copies.
type Card struct {
	ID       int64    `json:"id" yaml:"id" toml:"id"`
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Type     string   `json:"type" yaml:"type" toml:"type"`
	Rarity   string   `json:"rarity" yaml:"rarity" toml:"rarity"`
	Quantity int      `json:"quantity" yaml:"quantity" toml:"quantity"`
	Colors   []string `json:"colors" yaml:"colors" toml:"colors"`
	Cost     float64  `json:"cmc" yaml:"cmc" toml:"cmc"`
	Set      string   `json:"set,omitempty" yaml:"set,omitempty" toml:"set,omitempty"`
}

// Fields returns the visible text of the card, one entry per field, in the
// order a reader sees them.
func (c Card) Fields() []string {
	fields := []string{c.Name, c.Type, c.Rarity}
	fields = append(fields, c.Colors...)
	if c.Set != "" {
		fields = append(fields, c.Set)
	}
	return fields
}

// HasColor reports whether the card carries the given colour tag.
func (c Card) HasColor(tag string) bool {
	tag = normalizeTag(tag)
	for _, color := range c.Colors {
		if color == tag {
			return true
		}
	}
	return false
}

// CostLabel formats the cost the way the card tiles show it.
func (c Card) CostLabel() string {
	if c.Cost == float64(int64(c.Cost)) {
		return fmt.Sprintf("{%d}", int64(c.Cost))
	}
	return fmt.Sprintf("{%.1f}", c.Cost)
}

func (c Card) clone() Card {
	if c.Colors != nil {
		colors := make([]string, len(c.Colors))
		copy(colors, c.Colors)
		c.Colors = colors
	}
	return c
}

func cloneCards(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	dup := make([]Card, len(cards))
	for i, card := range cards {
		dup[i] = card.clone()
	}
	return dup
}

// normalize validates a freshly decoded list and canonicalises colour tags.
func normalize(cards []Card) ([]Card, error) {
	seen := make(map[int64]struct{}, len(cards))
	out := make([]Card, 0, len(cards))
	for i, card := range cards {
		card.Name = strings.TrimSpace(card.Name)
		if card.Name == "" {
			return nil, fmt.Errorf("card %d (index %d): %w", card.ID, i, ErrMissingName)
		}
		if _, dup := seen[card.ID]; dup {
			return nil, fmt.Errorf("card %d (%s): %w", card.ID, card.Name, ErrDuplicateID)
		}
		if card.Quantity < 0 {
			return nil, fmt.Errorf("card %d (%s): %w", card.ID, card.Name, ErrNegativeQuantity)
		}
		seen[card.ID] = struct{}{}

		card.Type = strings.TrimSpace(card.Type)
		card.Rarity = strings.ToLower(strings.TrimSpace(card.Rarity))
		card.Set = strings.TrimSpace(card.Set)
		card.Colors = normalizeColors(card.Colors)
		out = append(out, card)
	}
	return out, nil
}

func normalizeColors(colors []string) []string {
	if len(colors) == 0 {
		return nil
	}
	out := make([]string, 0, len(colors))
	seen := make(map[string]struct{}, len(colors))
	for _, color := range colors {
		tag := normalizeTag(color)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
