package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/palaro/guessquiz/internal/api/middleware"
	"github.com/palaro/guessquiz/internal/api/request"
	"github.com/palaro/guessquiz/internal/api/response"
	"github.com/palaro/guessquiz/internal/services/catalog"
	"github.com/palaro/guessquiz/internal/services/game"
	"github.com/palaro/guessquiz/internal/services/roster"
	"github.com/palaro/guessquiz/internal/services/scoring"
	"github.com/palaro/guessquiz/internal/sse"
)

// LeaderboardSize is how many rows the scores endpoint returns
const LeaderboardSize = 10

// QuizHandler handles participant-facing endpoints
type QuizHandler struct {
	rosterService  *roster.Service
	gameController *game.Controller
	catalogService *catalog.Service
	broadcaster    *sse.Broadcaster
	advanceDelay   time.Duration
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(
	rosterService *roster.Service,
	gameController *game.Controller,
	catalogService *catalog.Service,
	broadcaster *sse.Broadcaster,
	advanceDelay time.Duration,
) *QuizHandler {
	return &QuizHandler{
		rosterService:  rosterService,
		gameController: gameController,
		catalogService: catalogService,
		broadcaster:    broadcaster,
		advanceDelay:   advanceDelay,
	}
}

// Join handles POST /api/v1/join
func (h *QuizHandler) Join(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	participant, created, err := h.rosterService.Join(r.Context(), session.Username, session.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	if created && h.broadcaster != nil {
		stats, err := h.rosterService.Stats(r.Context())
		if err == nil {
			h.broadcaster.ParticipantJoined(participant, stats.TotalPlayers)
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.JoinResponse{
		Participant: response.ParticipantFromModel(participant),
		New:         created,
	})
}

// Me handles GET /api/v1/me
func (h *QuizHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	participant, err := h.rosterService.Get(r.Context(), session.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantFromModel(participant))
}

// Rules handles GET /api/v1/rules
func (h *QuizHandler) Rules(w http.ResponseWriter, r *http.Request) {
	state := h.gameController.Snapshot()

	response.JSON(w, http.StatusOK, response.Rules{
		Description: fmt.Sprintf(
			"Guess what's in the picture! A correct answer earns %d points; each hint costs %d point. Up to %d hints per round.",
			scoring.PointsPerCorrectAnswer, scoring.HintPenalty, scoring.MaxHints),
		PointsPerAnswer:  scoring.PointsPerCorrectAnswer,
		HintPenalty:      scoring.HintPenalty,
		MaxHints:         scoring.MaxHints,
		AdvanceDelaySecs: int(h.advanceDelay.Seconds()),
		GameActive:       state.Active,
		PuzzleOpen:       state.PuzzleOpen,
		PuzzlesRemaining: state.PuzzlesRemaining,
	})
}

// Scores handles GET /api/v1/scores
func (h *QuizHandler) Scores(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rosterService.Leaderboard(r.Context(), LeaderboardSize)
	if err != nil {
		WriteError(w, err)
		return
	}
	stats, err := h.rosterService.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	leaderboard := make([]response.LeaderboardEntry, len(entries))
	for i, e := range entries {
		leaderboard[i] = response.LeaderboardEntryFromModel(e)
	}

	response.JSON(w, http.StatusOK, response.ScoresResponse{
		Leaderboard:   leaderboard,
		TotalPlayers:  stats.TotalPlayers,
		ActivePlayers: stats.ActivePlayers,
		HighestScore:  stats.HighestScore,
	})
}

// Hint handles POST /api/v1/hint
func (h *QuizHandler) Hint(w http.ResponseWriter, r *http.Request) {
	hint, err := h.gameController.RequestHint(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintFromModel(hint))
}

// Answer handles POST /api/v1/answer
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Text == "" {
		WriteError(w, NewInvalidRequestError("text is required"))
		return
	}

	result, err := h.gameController.SubmitAnswer(r.Context(), session.Username, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}
	if result == nil {
		// Wrong guess, the round continues
		response.NoContent(w)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundResultFromModel(*result))
}

// PuzzleImage handles GET /api/v1/puzzle/image
func (h *QuizHandler) PuzzleImage(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.gameController.CurrentPuzzle()
	if err != nil {
		WriteError(w, err)
		return
	}

	path, err := h.catalogService.ImagePath(puzzle.ImageRef)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.ServeFile(w, r, path)
}
