package model

import "time"

// EventType identifies the type of event broadcast to chat clients
type EventType string

const (
	EventParticipantJoined EventType = "participant_joined"
	EventGameStarted       EventType = "game_started"
	EventRoundOpened       EventType = "round_opened"
	EventHintIssued        EventType = "hint_issued"
	EventRoundSolved       EventType = "round_solved"
	EventGameOver          EventType = "game_over"
	EventScoresReset       EventType = "scores_reset"
)

// Event is the base structure for all broadcast events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// ParticipantJoinedPayload announces a new roster member
type ParticipantJoinedPayload struct {
	Username     Username `json:"username"`
	DisplayName  string   `json:"display_name"`
	TotalPlayers int      `json:"total_players"`
}

// RoundOpenedPayload announces a fresh puzzle
type RoundOpenedPayload struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

// HintIssuedPayload carries a hint to everyone in the chat
type HintIssuedPayload struct {
	Text            string `json:"text"`
	HintsGiven      int    `json:"hints_given"`
	MaxHints        int    `json:"max_hints"`
	PotentialPoints int    `json:"potential_points"`
}

// RoundSolvedPayload announces the round winner
type RoundSolvedPayload struct {
	Winner             Username `json:"winner"`
	Answer             string   `json:"answer"`
	Points             int      `json:"points"`
	NewScore           int      `json:"new_score"`
	Rank               int      `json:"rank"`
	HintsUsed          int      `json:"hints_used"`
	PerfectScore       bool     `json:"perfect_score"`
	NextRoundInSeconds int      `json:"next_round_in_seconds"`
}

// GameOverPayload carries the final standings
type GameOverPayload struct {
	Standings []LeaderboardEntry `json:"standings"`
	Reason    string             `json:"reason"`
}
