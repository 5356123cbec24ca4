// Package leaderboard ranks actors by points and slices ranked lists into pages.
package leaderboard

import (
	"cmp"
	"slices"

	"github.com/coupdetete/backend/internal/domain"
)

// Rank returns 1 + the number of scores strictly greater than points.
// Ties share a rank and the next lower score skips past the tie block.
func Rank(points int, all []int) int {
	rank := 1
	for _, p := range all {
		if p > points {
			rank++
		}
	}
	return rank
}

// SortByPoints sorts entries by points, highest first. Entries with equal
// points keep their relative order.
func SortByPoints(entries []domain.ActorPoints) {
	slices.SortStableFunc(entries, func(a, b domain.ActorPoints) int {
		return cmp.Compare(b.Points, a.Points)
	})
}

// Ranks returns the competition rank of every entry of a list already
// sorted by SortByPoints.
func Ranks(sorted []domain.ActorPoints) []int {
	ranks := make([]int, len(sorted))
	for i, e := range sorted {
		if i > 0 && e.Points == sorted[i-1].Points {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}
