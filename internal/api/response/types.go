package response

import (
	"time"

	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/services/auth"
)

// Participant represents a roster member in API responses
type Participant struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ParticipantFromModel converts a model.Participant
func ParticipantFromModel(p model.Participant) Participant {
	return Participant{
		Username:    string(p.Username),
		DisplayName: p.DisplayName,
		Score:       p.Score,
		JoinedAt:    p.JoinedAt,
	}
}

// AuthResponse is the response for session endpoints
type AuthResponse struct {
	Username     string `json:"username"`
	Operator     bool   `json:"operator,omitempty"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s auth.Session) AuthResponse {
	return AuthResponse{
		Username:     string(s.Username),
		Operator:     s.Operator,
		SessionToken: s.Token,
	}
}

// JoinResponse is the response for joining the game
type JoinResponse struct {
	Participant Participant `json:"participant"`
	New         bool        `json:"new"`
}

// LeaderboardEntry is one row of the scores table
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// LeaderboardEntryFromModel converts a model.LeaderboardEntry
func LeaderboardEntryFromModel(e model.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:        e.Rank,
		Username:    string(e.Participant.Username),
		DisplayName: e.Participant.DisplayName,
		Score:       e.Participant.Score,
	}
}

// ScoresResponse is the leaderboard plus aggregate stats
type ScoresResponse struct {
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	TotalPlayers  int                `json:"total_players"`
	ActivePlayers int                `json:"active_players"`
	HighestScore  int                `json:"highest_score"`
}

// Hint is the response for a hint request
type Hint struct {
	Text            string `json:"text"`
	HintsGiven      int    `json:"hints_given"`
	MaxHints        int    `json:"max_hints"`
	Remaining       int    `json:"remaining"`
	PotentialPoints int    `json:"potential_points"`
}

// HintFromModel converts a model.Hint
func HintFromModel(h model.Hint) Hint {
	return Hint{
		Text:            h.Text,
		HintsGiven:      h.HintsGiven,
		MaxHints:        h.MaxHints,
		Remaining:       h.Remaining,
		PotentialPoints: h.PotentialPoints,
	}
}

// RoundResult is the response for a winning answer
type RoundResult struct {
	Winner             string `json:"winner"`
	DisplayName        string `json:"display_name"`
	Answer             string `json:"answer"`
	Points             int    `json:"points"`
	NewScore           int    `json:"new_score"`
	Rank               int    `json:"rank"`
	HintsUsed          int    `json:"hints_used"`
	PerfectScore       bool   `json:"perfect_score"`
	NextRoundInSeconds int    `json:"next_round_in_seconds"`
}

// RoundResultFromModel converts a model.RoundResult
func RoundResultFromModel(r model.RoundResult) RoundResult {
	return RoundResult{
		Winner:             string(r.Winner),
		DisplayName:        r.DisplayName,
		Answer:             r.Answer,
		Points:             r.Points,
		NewScore:           r.NewScore,
		Rank:               r.Rank,
		HintsUsed:          r.HintsUsed,
		PerfectScore:       r.PerfectScore,
		NextRoundInSeconds: r.NextRoundInSeconds,
	}
}

// Rules describes how the game is played
type Rules struct {
	Description      string `json:"description"`
	PointsPerAnswer  int    `json:"points_per_answer"`
	HintPenalty      int    `json:"hint_penalty"`
	MaxHints         int    `json:"max_hints"`
	AdvanceDelaySecs int    `json:"advance_delay_seconds"`
	GameActive       bool   `json:"game_active"`
	PuzzleOpen       bool   `json:"puzzle_open"`
	PuzzlesRemaining int    `json:"puzzles_remaining"`
}

// GameStatus is the response for operator game controls
type GameStatus struct {
	ImageURL         string `json:"image_url,omitempty"`
	PuzzlesRemaining int    `json:"puzzles_remaining"`
}

// Standings is the response for ending a game
type Standings struct {
	Standings []LeaderboardEntry `json:"standings"`
}

// ResetChallenge is the response for the first reset step
type ResetChallenge struct {
	ConfirmToken string `json:"confirm_token"`
	Message      string `json:"message"`
}
