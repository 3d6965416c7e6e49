package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Participant:
		o.printParticipant(v)
	case JoinResult:
		o.printJoinResult(v)
	case Rules:
		o.printRules(v)
	case Scores:
		o.printScores(v)
	case Hint:
		o.printHint(v)
	case RoundResult:
		o.printRoundResult(v)
	case GameStatus:
		o.printGameStatus(v)
	case Standings:
		o.printStandings(v)
	case ResetChallenge:
		o.printResetChallenge(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Username     string `json:"username"`
	Operator     bool   `json:"operator"`
	SessionToken string `json:"session_token"`
}

// Participant response type
type Participant struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	JoinedAt    time.Time `json:"joined_at"`
}

// JoinResult response type
type JoinResult struct {
	Participant Participant `json:"participant"`
	New         bool        `json:"new"`
}

// Rules response type
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

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// Scores response type
type Scores struct {
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	TotalPlayers  int                `json:"total_players"`
	ActivePlayers int                `json:"active_players"`
	HighestScore  int                `json:"highest_score"`
}

// Hint response type
type Hint struct {
	Text            string `json:"text"`
	HintsGiven      int    `json:"hints_given"`
	MaxHints        int    `json:"max_hints"`
	Remaining       int    `json:"remaining"`
	PotentialPoints int    `json:"potential_points"`
}

// RoundResult response type
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

// GameStatus response type
type GameStatus struct {
	ImageURL         string `json:"image_url"`
	PuzzlesRemaining int    `json:"puzzles_remaining"`
}

// Standings response type
type Standings struct {
	Standings []LeaderboardEntry `json:"standings"`
}

// ResetChallenge response type
type ResetChallenge struct {
	ConfirmToken string `json:"confirm_token"`
	Message      string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	role := "participant"
	if a.Operator {
		role = "operator"
	}
	fmt.Printf("Session: %s (%s)\n", a.Username, role)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printParticipant(p Participant) {
	fmt.Printf("Participant: %s (%s)\n", p.DisplayName, p.Username)
	fmt.Printf("Score: %d\n", p.Score)
	fmt.Printf("Joined: %s\n", p.JoinedAt.Format("2006-01-02 15:04:05"))
}

func (o *Output) printJoinResult(j JoinResult) {
	if j.New {
		fmt.Printf("Welcome, %s! You are in.\n", j.Participant.DisplayName)
	} else {
		fmt.Printf("Welcome back, %s. Already on the roster.\n", j.Participant.DisplayName)
	}
	fmt.Printf("Score: %d\n", j.Participant.Score)
}

func (o *Output) printRules(r Rules) {
	fmt.Println(r.Description)
	fmt.Printf("Points per answer: %d\n", r.PointsPerAnswer)
	fmt.Printf("Hint penalty: %d\n", r.HintPenalty)
	fmt.Printf("Max hints: %d\n", r.MaxHints)
	fmt.Printf("Next round delay: %ds\n", r.AdvanceDelaySecs)
	if r.GameActive {
		fmt.Printf("Game: active, %d puzzles remaining\n", r.PuzzlesRemaining)
	} else {
		fmt.Println("Game: not running")
	}
}

func (o *Output) printScores(s Scores) {
	fmt.Printf("Leaderboard (top %d):\n", len(s.Leaderboard))
	for _, e := range s.Leaderboard {
		fmt.Printf("  %2d. %s - %d points\n", e.Rank, e.DisplayName, e.Score)
	}
	fmt.Printf("Players: %d total, %d with points\n", s.TotalPlayers, s.ActivePlayers)
	fmt.Printf("Highest score: %d\n", s.HighestScore)
}

func (o *Output) printHint(h Hint) {
	fmt.Printf("Hint %d/%d: %s\n", h.HintsGiven, h.MaxHints, h.Text)
	fmt.Printf("Hints remaining: %d\n", h.Remaining)
	fmt.Printf("Potential points: %d\n", h.PotentialPoints)
}

func (o *Output) printRoundResult(r RoundResult) {
	if r.PerfectScore {
		fmt.Printf("Correct, no hints needed! The answer was %q.\n", r.Answer)
	} else {
		fmt.Printf("Correct! The answer was %q (%d hints used).\n", r.Answer, r.HintsUsed)
	}
	fmt.Printf("Points won: %d\n", r.Points)
	fmt.Printf("New score: %d (rank %d)\n", r.NewScore, r.Rank)
	fmt.Printf("Next round in %ds\n", r.NextRoundInSeconds)
}

func (o *Output) printGameStatus(g GameStatus) {
	if g.ImageURL != "" {
		fmt.Printf("Puzzle image: %s\n", g.ImageURL)
	}
	fmt.Printf("Puzzles remaining: %d\n", g.PuzzlesRemaining)
}

func (o *Output) printStandings(s Standings) {
	fmt.Println("Final standings:")
	for _, e := range s.Standings {
		fmt.Printf("  %2d. %s - %d points\n", e.Rank, e.DisplayName, e.Score)
	}
}

func (o *Output) printResetChallenge(r ResetChallenge) {
	fmt.Println(r.Message)
	fmt.Printf("Confirm token: %s\n", r.ConfirmToken)
	fmt.Printf("Run: quizctl game reset --confirm %s\n", r.ConfirmToken)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
