package leaderboard

import "github.com/coupdetete/backend/internal/domain"

// Page is one slice of a totally ordered sequence.
type Page[T any] struct {
	Items   []T
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// Paginate returns items[offset:offset+limit]. limit is clamped to
// domain.MaxPageLimit and defaults to domain.DefaultPageLimit when not
// positive. An offset past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, limit, offset int) Page[T] {
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	limit = min(limit, domain.MaxPageLimit)
	offset = max(offset, 0)

	total := len(items)
	start := min(offset, total)
	end := start + min(limit, total-start)

	page := make([]T, end-start)
	copy(page, items[start:end])
	return Page[T]{
		Items:   page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: end < total,
	}
}
