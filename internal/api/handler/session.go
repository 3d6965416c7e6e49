package handler

import (
	"encoding/json"
	"net/http"

	"github.com/palaro/guessquiz/internal/api/request"
	"github.com/palaro/guessquiz/internal/api/response"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/services/auth"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// Create handles POST /api/v1/session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	session, err := h.authService.CreateSession(model.Username(req.Username), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// OperatorLogin handles POST /api/v1/session/operator
func (h *SessionHandler) OperatorLogin(w http.ResponseWriter, r *http.Request) {
	var req request.OperatorLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Passphrase == "" {
		WriteError(w, NewInvalidRequestError("passphrase is required"))
		return
	}

	session, err := h.authService.OperatorLogin(model.Username(req.Username), req.Passphrase)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}
