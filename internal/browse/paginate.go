package browse

import "github.com/five82/binder/internal/collection"

// DefaultPageSize is the number of cards shown per page.
const DefaultPageSize = 12

// TotalPages returns max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	pageSize = effectivePageSize(pageSize)
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Paginate returns the window of cards shown on page together with the total
// page count. Pages outside [1, totalPages] yield an empty window, never an
// error.
func Paginate(cards []collection.Card, page, pageSize int) ([]collection.Card, int) {
	pageSize = effectivePageSize(pageSize)
	total := TotalPages(len(cards), pageSize)
	if page < 1 || page > total {
		return []collection.Card{}, total
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(cards) {
		end = len(cards)
	}
	if start >= end {
		return []collection.Card{}, total
	}
	return cards[start:end:end], total
}

func effectivePageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	return pageSize
}
