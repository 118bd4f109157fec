package domain

import "time"

// User represents a traveler in the system.
type User struct {
	ID        string
	Name      string
	Email     string
	EcoScore  float64
	CreatedAt time.Time
}

// LeaderboardEntry is one row of the ranked leaderboard.
type LeaderboardEntry struct {
	Rank       int
	UserID     string
	Name       string
	EcoScore   float64
	BadgeCount int
}
