package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/palaro/guessquiz/internal/api/handler"
	apimiddleware "github.com/palaro/guessquiz/internal/api/middleware"
	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/middleware"
	"github.com/palaro/guessquiz/internal/services/auth"
	"github.com/palaro/guessquiz/internal/services/catalog"
	"github.com/palaro/guessquiz/internal/services/game"
	"github.com/palaro/guessquiz/internal/services/roster"
	"github.com/palaro/guessquiz/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RosterService  *roster.Service
	GameController *game.Controller
	CatalogService *catalog.Service
	Hub            *sse.Hub
	Broadcaster    *sse.Broadcaster
	Clock          clock.Clock
	AdvanceDelay   time.Duration
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	quizHandler := handler.NewQuizHandler(cfg.RosterService, cfg.GameController,
		cfg.CatalogService, cfg.Broadcaster, cfg.AdvanceDelay)
	adminHandler := handler.NewAdminHandler(cfg.GameController, cfg.Clock)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	operatorMiddleware := apimiddleware.Operator(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes (no auth required)
	api.HandleFunc("/session", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/session/operator", sessionHandler.OperatorLogin).Methods(http.MethodPost)

	// Public routes
	api.HandleFunc("/rules", quizHandler.Rules).Methods(http.MethodGet)
	api.HandleFunc("/scores", quizHandler.Scores).Methods(http.MethodGet)
	api.HandleFunc("/puzzle/image", quizHandler.PuzzleImage).Methods(http.MethodGet)
	api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Participant routes (require a session)
	api.Handle("/join", authMiddleware(http.HandlerFunc(quizHandler.Join))).Methods(http.MethodPost)
	api.Handle("/me", authMiddleware(http.HandlerFunc(quizHandler.Me))).Methods(http.MethodGet)
	api.Handle("/hint", authMiddleware(http.HandlerFunc(quizHandler.Hint))).Methods(http.MethodPost)
	api.Handle("/answer", authMiddleware(http.HandlerFunc(quizHandler.Answer))).Methods(http.MethodPost)

	// Operator routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(operatorMiddleware)
	admin.HandleFunc("/game/start", adminHandler.StartGame).Methods(http.MethodPost)
	admin.HandleFunc("/game/next", adminHandler.NextPuzzle).Methods(http.MethodPost)
	admin.HandleFunc("/game/end", adminHandler.EndGame).Methods(http.MethodPost)
	admin.HandleFunc("/reset", adminHandler.Reset).Methods(http.MethodPost)
	admin.HandleFunc("/reset/confirm", adminHandler.ResetConfirm).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
