package domain

import "math"

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize, saturating at math.MaxInt.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) slice window of the page within total items.
// Both values are always within [0, total].
func (p PaginationParams) Bounds(total int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	if p.PageSize <= 0 {
		return 0, total
	}
	start = min(p.Offset(), total)
	end = start + min(p.PageSize, total-start)
	return start, end
}
