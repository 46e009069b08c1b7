package browse

import "github.com/five82/binder/internal/collection"

// Query is everything the pipeline needs besides the cards themselves.
type Query struct {
	Criteria Criteria
	Page     int
	PageSize int
	Marked   map[int64]bool
	Grouping Grouping
}

// Result is the derived view for one pipeline run.
type Result struct {
	Filtered     []collection.Card
	Page         []collection.Card
	PageNumber   int
	TotalPages   int
	Stats        Stats
	Distribution []Bucket
}

// Empty reports whether no card survived filtering.
func (r Result) Empty() bool {
	return len(r.Filtered) == 0
}

// Run filters cards, clamps the requested page against the filtered count
// and slices out that page. Stats and distribution cover the filtered set.
func Run(cards []collection.Card, q Query) Result {
	filtered := Filter(q.Criteria, cards)
	total := TotalPages(len(filtered), q.PageSize)
	page := ClampPage(q.Page, total)
	window, _ := Paginate(filtered, page, q.PageSize)
	return Result{
		Filtered:     filtered,
		Page:         window,
		PageNumber:   page,
		TotalPages:   total,
		Stats:        ComputeStatsMarked(filtered, q.Marked),
		Distribution: Distribution(filtered, q.Grouping),
	}
}
