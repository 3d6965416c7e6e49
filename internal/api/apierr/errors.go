package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/services/catalog"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	CodeNoActiveGame        = "NO_ACTIVE_GAME"
	CodeNoActivePuzzle      = "NO_ACTIVE_PUZZLE"
	CodeHintsExhausted      = "HINTS_EXHAUSTED"
	CodeNoPuzzlesRemaining  = "NO_PUZZLES_REMAINING"
	CodeCatalogNotLoaded    = "CATALOG_NOT_LOADED"
	CodeImageNotFound       = "IMAGE_NOT_FOUND"
	CodeConfirmTokenInvalid = "CONFIRM_TOKEN_INVALID"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, "Participant not found, join the game first"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveGame, "No game is running"}}
	case errors.Is(err, model.ErrNoActivePuzzle):
		return &httpError{http.StatusConflict, APIError{CodeNoActivePuzzle, "No puzzle is open right now"}}
	case errors.Is(err, model.ErrHintsExhausted):
		return &httpError{http.StatusConflict, APIError{CodeHintsExhausted, "All hints have been given for this round"}}
	case errors.Is(err, model.ErrNoPuzzlesRemaining):
		return &httpError{http.StatusConflict, APIError{CodeNoPuzzlesRemaining, "No puzzles remaining, the game is over"}}
	case errors.Is(err, model.ErrCatalogNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCatalogNotLoaded, "Puzzle catalog is not loaded"}}
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Not authorized for this action"}}
	case errors.Is(err, catalog.ErrUnknownImage):
		return &httpError{http.StatusNotFound, APIError{CodeImageNotFound, "Image not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewConfirmTokenError creates an invalid confirm token error
func NewConfirmTokenError() error {
	return &httpError{http.StatusConflict, APIError{CodeConfirmTokenInvalid, "Confirmation token is invalid or expired"}}
}
