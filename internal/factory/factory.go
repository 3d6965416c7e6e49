package factory

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/palaro/guessquiz/internal/config"
	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/dependencies/random"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/services/auth"
	"github.com/palaro/guessquiz/internal/services/catalog"
	"github.com/palaro/guessquiz/internal/services/game"
	"github.com/palaro/guessquiz/internal/services/roster"
	"github.com/palaro/guessquiz/internal/services/scoring"
	"github.com/palaro/guessquiz/internal/sse"
	"github.com/palaro/guessquiz/internal/storage"
	filestorage "github.com/palaro/guessquiz/internal/storage/file"
	"github.com/palaro/guessquiz/internal/storage/memory"
	redisstorage "github.com/palaro/guessquiz/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	Logger *slog.Logger

	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService *catalog.Service
	RosterService  *roster.Service
	ScoringService *scoring.Service
	AuthService    *auth.Service
	GameController *game.Controller

	// Event fan-out
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster

	AdvanceDelay time.Duration
}

// New creates a new application with all dependencies wired from config.
// The puzzle catalog is not loaded here; callers load it before serving.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.StorageBackend {
	case config.StorageFile:
		store = filestorage.New(cfg.RosterPath, logger)
	case config.StorageMemory:
		store = memory.New()
	case config.StorageRedis:
		client, err := redisstorage.NewClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		store = redisstorage.New(client, logger)
	default:
		return nil, fmt.Errorf("invalid storage backend %q", cfg.StorageBackend)
	}

	operators := make([]model.Username, len(cfg.Operators))
	for i, op := range cfg.Operators {
		operators[i] = model.Username(op)
	}

	return newWithDependencies(
		logger,
		store,
		clock.NewRealClock(),
		random.NewCryptoRandom(),
		operators,
		cfg.OperatorPassHash,
		cfg.AdvanceDelay,
	), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	logger *slog.Logger,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	operators []model.Username,
	operatorPassHash string,
	advanceDelay time.Duration,
) *App {
	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(logger, hub, clk)

	catalogService := catalog.NewService(logger)
	rosterService := roster.NewService(logger, store, clk)
	scoringService := scoring.NewService()
	authService := auth.NewService(logger, clk, operators, operatorPassHash)
	gameController := game.NewController(logger, catalogService, rosterService,
		scoringService, clk, rnd, broadcaster, advanceDelay)

	return &App{
		Logger:         logger,
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		CatalogService: catalogService,
		RosterService:  rosterService,
		ScoringService: scoringService,
		AuthService:    authService,
		GameController: gameController,
		Hub:            hub,
		Broadcaster:    broadcaster,
		AdvanceDelay:   advanceDelay,
	}
}
