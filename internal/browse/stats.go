package browse

import "github.com/five82/binder/internal/collection"

// Stats aggregates the filtered (never the paginated) set.
type Stats struct {
	TotalQuantity  int
	UniqueCount    int
	AvgCost        float64
	MarkedQuantity int
}

// Remaining is the quantity not struck out by the user.
func (s Stats) Remaining() int {
	return s.TotalQuantity - s.MarkedQuantity
}

// ComputeStats sums quantities and averages cost over unique cards. The
// average is unweighted by quantity and defined as 0 for an empty set.
func ComputeStats(cards []collection.Card) Stats {
	return ComputeStatsMarked(cards, nil)
}

// ComputeStatsMarked is ComputeStats that also totals the quantity of the
// marked cards.
func ComputeStatsMarked(cards []collection.Card, marked map[int64]bool) Stats {
	var (
		stats   Stats
		costSum float64
	)
	for _, card := range cards {
		stats.TotalQuantity += card.Quantity
		costSum += card.Cost
		if marked[card.ID] {
			stats.MarkedQuantity += card.Quantity
		}
	}
	stats.UniqueCount = len(cards)
	if stats.UniqueCount > 0 {
		stats.AvgCost = costSum / float64(stats.UniqueCount)
	}
	return stats
}
