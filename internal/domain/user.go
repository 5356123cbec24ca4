package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the billing tier of a registered user.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// User is a registered account. Points and TotalSpins are running totals.
type User struct {
	ID          uuid.UUID
	Email       string
	Username    string
	DisplayName *string
	AvatarURL   *string
	Points      int
	TotalSpins  int
	Tier        Tier
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GuestUser is an unauthenticated player identified by a client-stored id.
type GuestUser struct {
	ID                uuid.UUID
	Username          string
	DisplayName       *string
	AvatarURL         *string
	DeviceFingerprint *string
	Points            int
	TotalSpins        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastActiveAt      time.Time
}

// Profile is the public identity shown on the leaderboard.
type Profile struct {
	Actor       Actor
	Username    string
	DisplayName *string
	AvatarURL   *string
}

// UserStats summarises a player's progress.
type UserStats struct {
	Profile     Profile
	Points      int
	TotalSpins  int
	Rank        int
	RecentSpins []Spin
}
