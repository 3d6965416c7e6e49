package model

import "time"

// Username uniquely identifies a participant across the system.
// It is the identity supplied by the chat platform and is case-sensitive.
type Username string

// Participant is a registered quiz participant and their standing.
// JSON tags match the persisted roster layout.
type Participant struct {
	Username    Username  `json:"username"`
	DisplayName string    `json:"full_name"`
	Score       int       `json:"score"`
	JoinedAt    time.Time `json:"join_date"`
}

// NewParticipant creates a participant with defaults resolved at construction:
// an empty display name falls back to the username.
func NewParticipant(username Username, displayName string, joinedAt time.Time) Participant {
	if displayName == "" {
		displayName = string(username)
	}
	return Participant{
		Username:    username,
		DisplayName: displayName,
		Score:       0,
		JoinedAt:    joinedAt,
	}
}

// LeaderboardEntry is a participant with their 1-based rank.
type LeaderboardEntry struct {
	Rank        int
	Participant Participant
}

// RosterStats are the aggregate numbers shown alongside the leaderboard.
type RosterStats struct {
	TotalPlayers  int
	ActivePlayers int // participants with score > 0
	HighestScore  int
}
