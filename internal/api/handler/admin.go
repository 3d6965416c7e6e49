package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/palaro/guessquiz/internal/api/apierr"
	"github.com/palaro/guessquiz/internal/api/request"
	"github.com/palaro/guessquiz/internal/api/response"
	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/services/game"
)

// ResetConfirmWindow is how long a reset confirmation token stays valid
const ResetConfirmWindow = 60 * time.Second

// Reset confirm actions
const (
	ResetActionConfirm = "confirm"
	ResetActionCancel  = "cancel"
)

// AdminHandler handles operator game controls
type AdminHandler struct {
	gameController *game.Controller
	clock          clock.Clock

	mu            sync.Mutex
	pendingResets map[string]time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(gameController *game.Controller, clk clock.Clock) *AdminHandler {
	return &AdminHandler{
		gameController: gameController,
		clock:          clk,
		pendingResets:  map[string]time.Time{},
	}
}

// StartGame handles POST /api/v1/admin/game/start.
// The game waits for the first puzzle; game/next opens it.
func (h *AdminHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	count, err := h.gameController.StartGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStatus{
		PuzzlesRemaining: count,
	})
}

// NextPuzzle handles POST /api/v1/admin/game/next
func (h *AdminHandler) NextPuzzle(w http.ResponseWriter, r *http.Request) {
	_, err := h.gameController.AdvancePuzzle(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	state := h.gameController.Snapshot()
	response.JSON(w, http.StatusOK, response.GameStatus{
		ImageURL:         "/api/v1/puzzle/image",
		PuzzlesRemaining: state.PuzzlesRemaining,
	})
}

// EndGame handles POST /api/v1/admin/game/end
func (h *AdminHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	standings, err := h.gameController.EndGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	entries := make([]response.LeaderboardEntry, len(standings))
	for i, e := range standings {
		entries[i] = response.LeaderboardEntryFromModel(e)
	}
	response.JSON(w, http.StatusOK, response.Standings{Standings: entries})
}

// Reset handles POST /api/v1/admin/reset.
// Resetting wipes every score, so it is a two-step operation: this
// issues a short-lived confirmation token that ResetConfirm redeems.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	token, err := generateConfirmToken()
	if err != nil {
		WriteError(w, err)
		return
	}

	h.mu.Lock()
	h.prunePendingLocked()
	h.pendingResets[token] = h.clock.Now().Add(ResetConfirmWindow)
	h.mu.Unlock()

	response.JSON(w, http.StatusOK, response.ResetChallenge{
		ConfirmToken: token,
		Message:      "This wipes all participants and scores. Confirm within 60 seconds.",
	})
}

// ResetConfirm handles POST /api/v1/admin/reset/confirm
func (h *AdminHandler) ResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req request.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Action != ResetActionConfirm && req.Action != ResetActionCancel {
		WriteError(w, NewInvalidRequestError("action must be confirm or cancel"))
		return
	}

	h.mu.Lock()
	h.prunePendingLocked()
	_, ok := h.pendingResets[req.ConfirmToken]
	delete(h.pendingResets, req.ConfirmToken)
	h.mu.Unlock()

	if !ok {
		WriteError(w, apierr.NewConfirmTokenError())
		return
	}

	if req.Action == ResetActionCancel {
		response.NoContent(w)
		return
	}

	if err := h.gameController.ResetScores(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// prunePendingLocked drops expired tokens. Caller holds the mutex.
func (h *AdminHandler) prunePendingLocked() {
	now := h.clock.Now()
	for token, deadline := range h.pendingResets {
		if now.After(deadline) {
			delete(h.pendingResets, token)
		}
	}
}

func generateConfirmToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
