package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/leaderboard"
	"github.com/coupdetete/backend/internal/repo"
)

// LeaderboardService ranks users and guests together.
type LeaderboardService struct {
	users  repo.UserRepo
	guests repo.GuestRepo
	spins  repo.SpinRepo
	loc    *time.Location
	now    func() time.Time
}

// NewLeaderboardService constructs a LeaderboardService. Period windows
// start at midnight in loc.
func NewLeaderboardService(users repo.UserRepo, guests repo.GuestRepo, spins repo.SpinRepo, loc *time.Location, now func() time.Time) *LeaderboardService {
	return &LeaderboardService{users: users, guests: guests, spins: spins, loc: loc, now: now}
}

// Get returns one page of the leaderboard for period. An empty period means
// all-time. When actor is non-nil and ranked, their entry is returned as
// CurrentUser whatever page was asked for.
func (s *LeaderboardService) Get(ctx context.Context, period domain.Period, page domain.PageParams, actor *domain.Actor) (domain.Leaderboard, error) {
	if period == "" {
		period = domain.PeriodAllTime
	}
	start, bounded, err := leaderboard.StartDate(period, s.now().In(s.loc))
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("service.LeaderboardService.Get: %w", err)
	}

	var users, guests []domain.ActorPoints
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if bounded {
			users, err = s.spins.PointsSince(gctx, domain.ActorUser, start)
		} else {
			users, err = s.users.ListPoints(gctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if bounded {
			guests, err = s.spins.PointsSince(gctx, domain.ActorGuest, start)
		} else {
			guests, err = s.guests.ListPoints(gctx)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Leaderboard{}, fmt.Errorf("service.LeaderboardService.Get: %w", err)
	}

	all := make([]domain.ActorPoints, 0, len(users)+len(guests))
	all = append(all, users...)
	all = append(all, guests...)
	leaderboard.SortByPoints(all)
	ranks := leaderboard.Ranks(all)

	entries := make([]domain.LeaderboardEntry, len(all))
	for i, ap := range all {
		entries[i] = domain.LeaderboardEntry{
			Rank:       ranks[i],
			Profile:    ap.Profile,
			Points:     ap.Points,
			TotalSpins: ap.TotalSpins,
		}
	}

	p := leaderboard.Paginate(entries, page.Limit, page.Offset)
	board := domain.Leaderboard{
		Entries: p.Items,
		Period:  period,
		Total:   p.Total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.HasMore,
	}
	if actor != nil {
		for i := range entries {
			if entries[i].Profile.Actor == *actor {
				e := entries[i]
				board.CurrentUser = &e
				break
			}
		}
	}
	return board, nil
}
