package domain

// Period scopes a leaderboard to a time window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all-time"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodAllTime
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank       int
	Profile    Profile
	Points     int
	TotalSpins int
}

// Leaderboard is one page of ranked entries plus the caller's own entry.
type Leaderboard struct {
	Entries     []LeaderboardEntry
	CurrentUser *LeaderboardEntry
	Period      Period
	Total       int
	Limit       int
	Offset      int
	HasMore     bool
}
