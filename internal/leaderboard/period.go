package leaderboard

import (
	"fmt"
	"time"

	"github.com/coupdetete/backend/internal/domain"
)

// StartDate returns the inclusive lower bound of the period containing now,
// at midnight in now's location. ok is false for all-time, which has no bound.
//
// Weeks start on Monday. A Sunday belongs to the week that began six days before.
func StartDate(period domain.Period, now time.Time) (start time.Time, ok bool, err error) {
	y, m, d := now.Date()
	loc := now.Location()

	switch period {
	case domain.PeriodAllTime:
		return time.Time{}, false, nil
	case domain.PeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc), true, nil
	case domain.PeriodWeekly:
		back := (int(now.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
		return time.Date(y, m, d-back, 0, 0, 0, 0, loc), true, nil
	default:
		return time.Time{}, false, fmt.Errorf("%w: unknown period %q", domain.ErrValidation, period)
	}
}
