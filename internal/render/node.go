package render

import (
	"strings"

	"github.com/five82/binder/internal/collection"
)

// Node is the display snapshot of one card, independent of any particular
// surface. Nodes are shared through the cache and must not be modified.
type Node struct {
	ID       int64
	Title    string
	Subtitle string
	Rarity   string
	Badge    string
	Quantity int
	Colors   []string
	Cost     string
	Set      string
}

// ColorLabel joins the colour tags, or returns "colorless".
func (n Node) ColorLabel() string {
	if len(n.Colors) == 0 {
		return "colorless"
	}
	return strings.Join(n.Colors, "/")
}

func newNode(card collection.Card) Node {
	var colors []string
	if len(card.Colors) > 0 {
		colors = make([]string, len(card.Colors))
		copy(colors, card.Colors)
	}
	return Node{
		ID:       card.ID,
		Title:    card.Name,
		Subtitle: card.Type,
		Rarity:   card.Rarity,
		Badge:    rarityBadge(card.Rarity),
		Quantity: card.Quantity,
		Colors:   colors,
		Cost:     card.CostLabel(),
		Set:      card.Set,
	}
}

func rarityBadge(rarity string) string {
	rarity = strings.TrimSpace(rarity)
	if rarity == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(rarity)[:1]))
}
