package render

import (
	"github.com/five82/binder/internal/browse"
	"github.com/five82/binder/internal/collection"
	"github.com/five82/binder/internal/state"
)

// Surface is the rendering target. The pipeline only ever writes the visible
// card set and the stats display.
type Surface interface {
	SetCards(nodes []Node)
	SetStats(stats browse.Stats)
}

// Renderer turns a page of cards into display nodes, reusing nodes built for
// earlier renders. A card's attributes only change through a reload, after
// which Reset must be called.
type Renderer struct {
	cache *Cache[int64, Node]
}

// NewRenderer returns a renderer with an empty cache.
func NewRenderer() *Renderer {
	return &Renderer{cache: NewCache[int64, Node]()}
}

// Render returns one node per card in page order. A card id appearing more
// than once is emitted only the first time, so the result never contains
// duplicates.
func (r *Renderer) Render(page []collection.Card) []Node {
	nodes := make([]Node, 0, len(page))
	seen := make(map[int64]struct{}, len(page))
	for _, card := range page {
		if _, dup := seen[card.ID]; dup {
			continue
		}
		seen[card.ID] = struct{}{}
		nodes = append(nodes, r.cache.GetOrCreate(card.ID, func() Node {
			return newNode(card)
		}))
	}
	return nodes
}

// Reset drops every cached node.
func (r *Renderer) Reset() {
	r.cache.Reset()
}

// CacheStats exposes the node cache counters.
func (r *Renderer) CacheStats() CacheStats {
	return r.cache.Stats()
}

// Refresh runs the filter/paginate pipeline for view and writes the page and
// the stats to surface. The returned result carries the clamped page number.
func Refresh(cards []collection.Card, view state.View, r *Renderer, surface Surface) browse.Result {
	res := browse.Run(cards, view.Query())
	if surface != nil {
		surface.SetCards(r.Render(res.Page))
		surface.SetStats(res.Stats)
	}
	return res
}
