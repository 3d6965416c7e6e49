package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/dependencies/random"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/services/catalog"
	"github.com/palaro/guessquiz/internal/services/roster"
	"github.com/palaro/guessquiz/internal/services/scoring"
)

// State is a snapshot of the controller for status endpoints.
type State struct {
	Active           bool
	PuzzleOpen       bool
	HintsGiven       int
	PuzzlesRemaining int
}

// Controller runs the quiz game loop.
//
// One mutex guards all round state, so answer submissions are
// serialised and exactly one participant can win a round. After a
// round is solved the next one opens automatically once the advance
// delay elapses; the pending advance is cancelled when an operator
// skips ahead or ends the game.
type Controller struct {
	mu sync.Mutex

	logger   *slog.Logger
	catalog  *catalog.Service
	roster   *roster.Service
	scoring  *scoring.Service
	clock    clock.Clock
	random   random.Random
	notifier Notifier

	advanceDelay time.Duration

	active         bool
	pool           []model.Puzzle
	current        *model.Puzzle
	hintsGiven     int
	solved         bool
	pendingAdvance clock.Timer
}

func NewController(
	logger *slog.Logger,
	catalogService *catalog.Service,
	rosterService *roster.Service,
	scoringService *scoring.Service,
	clk clock.Clock,
	rnd random.Random,
	notifier Notifier,
	advanceDelay time.Duration,
) *Controller {
	return &Controller{
		logger:       logger,
		catalog:      catalogService,
		roster:       rosterService,
		scoring:      scoringService,
		clock:        clk,
		random:       rnd,
		notifier:     notifier,
		advanceDelay: advanceDelay,
	}
}

// StartGame shuffles a fresh pool from the catalog and activates the
// game. No round opens yet; AdvancePuzzle opens the first one.
// Starting while a game is running restarts it.
func (c *Controller) StartGame(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pool, err := c.catalog.Pool()
	if err != nil {
		return 0, err
	}
	c.random.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	c.cancelPendingAdvanceLocked()
	c.active = true
	c.pool = pool
	c.current = nil
	c.hintsGiven = 0
	c.solved = false

	c.logger.Info("Game started", "puzzles", len(pool))
	if c.notifier != nil {
		c.notifier.GameStarted(len(pool))
	}
	return len(pool), nil
}

// AdvancePuzzle skips to the next puzzle, forfeiting the current
// round. When the pool is exhausted the game ends instead.
func (c *Controller) AdvancePuzzle(ctx context.Context) (model.Puzzle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return model.Puzzle{}, model.ErrNoActiveGame
	}
	c.cancelPendingAdvanceLocked()

	if len(c.pool) == 0 {
		c.finishLocked(ctx, "no puzzles remaining")
		return model.Puzzle{}, model.ErrNoPuzzlesRemaining
	}
	return c.openRoundLocked()
}

// RequestHint issues the next hint for the current round.
func (c *Controller) RequestHint(ctx context.Context) (model.Hint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return model.Hint{}, model.ErrNoActiveGame
	}
	if c.current == nil {
		return model.Hint{}, model.ErrNoActivePuzzle
	}
	if c.hintsGiven >= scoring.MaxHints {
		return model.Hint{}, model.ErrHintsExhausted
	}

	index := c.hintsGiven
	c.hintsGiven++

	hint := model.Hint{
		Index:           index,
		Text:            hintText(c.current.Answer(), index),
		HintsGiven:      c.hintsGiven,
		MaxHints:        scoring.MaxHints,
		Remaining:       c.scoring.HintsRemaining(c.hintsGiven),
		PotentialPoints: c.scoring.PotentialAfterNextHint(index),
	}

	c.logger.Info("Hint issued",
		"index", index,
		"hints_given", c.hintsGiven)
	if c.notifier != nil {
		c.notifier.HintIssued(hint)
	}
	return hint, nil
}

// SubmitAnswer checks a participant's guess against the current
// puzzle. A wrong guess, or any guess from a user not on the roster,
// returns a nil result and no error. The first correct guess wins the
// round, scores it, and schedules the next round; later guesses for
// the same round see ErrNoActivePuzzle.
func (c *Controller) SubmitAnswer(ctx context.Context, username model.Username, text string) (*model.RoundResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return nil, model.ErrNoActiveGame
	}
	if c.current == nil || c.solved {
		return nil, model.ErrNoActivePuzzle
	}

	// Only roster members can win; everyone else is ignored before
	// the answer is even compared, so the round stays open.
	known, err := c.roster.IsParticipant(ctx, username)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, nil
	}

	if !c.current.Matches(text) {
		return nil, nil
	}

	// Round is closed from here on even if the roster save fails: the
	// answer is out, so nobody else may win it. The advance timer is
	// scheduled for the same reason.
	c.solved = true
	points := c.scoring.Award(c.hintsGiven)
	answer := c.current.Answer()
	hintsUsed := c.hintsGiven

	c.pendingAdvance = c.clock.AfterFunc(c.advanceDelay, func() {
		c.autoAdvance()
	})

	participant, rank, err := c.roster.AwardPoints(ctx, username, points)
	if err != nil {
		return nil, err
	}

	result := model.RoundResult{
		Winner:             username,
		DisplayName:        participant.DisplayName,
		Answer:             answer,
		Points:             points,
		NewScore:           participant.Score,
		Rank:               rank,
		HintsUsed:          hintsUsed,
		PerfectScore:       hintsUsed == 0,
		NextRoundInSeconds: int(c.advanceDelay.Seconds()),
	}

	c.logger.Info("Round solved",
		"winner", username,
		"points", points,
		"hints_used", hintsUsed)
	if c.notifier != nil {
		c.notifier.RoundSolved(result)
	}

	return &result, nil
}

// EndGame stops the game unconditionally and returns the final
// standings, whether or not a game was running.
func (c *Controller) EndGame(ctx context.Context) ([]model.LeaderboardEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPendingAdvanceLocked()
	return c.finishLocked(ctx, "ended by operator"), nil
}

// ResetScores wipes the roster. The game keeps running if active.
func (c *Controller) ResetScores(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.roster.ResetAll(ctx); err != nil {
		return err
	}
	if c.notifier != nil {
		c.notifier.ScoresReset()
	}
	return nil
}

// CurrentPuzzle returns the open puzzle for image serving.
func (c *Controller) CurrentPuzzle() (model.Puzzle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return model.Puzzle{}, model.ErrNoActiveGame
	}
	if c.current == nil {
		return model.Puzzle{}, model.ErrNoActivePuzzle
	}
	return *c.current, nil
}

// Snapshot returns the controller state for status endpoints.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Active:           c.active,
		PuzzleOpen:       c.active && c.current != nil && !c.solved,
		HintsGiven:       c.hintsGiven,
		PuzzlesRemaining: len(c.pool),
	}
}

// openRoundLocked pops the next puzzle off the pool tail and resets
// the round state. Caller holds the mutex.
func (c *Controller) openRoundLocked() (model.Puzzle, error) {
	if len(c.pool) == 0 {
		return model.Puzzle{}, model.ErrNoPuzzlesRemaining
	}

	puzzle := c.pool[len(c.pool)-1]
	c.pool = c.pool[:len(c.pool)-1]
	c.current = &puzzle
	c.hintsGiven = 0
	c.solved = false

	c.logger.Info("Round opened",
		"image", puzzle.ImageRef,
		"remaining", len(c.pool))
	if c.notifier != nil {
		c.notifier.RoundOpened(puzzle)
	}
	return puzzle, nil
}

// finishLocked deactivates the game and announces the standings.
// Caller holds the mutex.
func (c *Controller) finishLocked(ctx context.Context, reason string) []model.LeaderboardEntry {
	c.active = false
	c.current = nil
	c.pool = nil
	c.hintsGiven = 0
	c.solved = false

	standings, err := c.roster.Leaderboard(ctx, 0)
	if err != nil {
		c.logger.Error("Failed to load final standings", "error", err)
		standings = []model.LeaderboardEntry{}
	}

	c.logger.Info("Game over", "reason", reason)
	if c.notifier != nil {
		c.notifier.GameOver(standings, reason)
	}
	return standings
}

// autoAdvance fires after the advance delay. The game may have been
// ended or restarted since it was scheduled, so it re-checks state
// under the mutex before opening the next round.
func (c *Controller) autoAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingAdvance = nil
	if !c.active || !c.solved {
		return
	}
	if len(c.pool) == 0 {
		c.finishLocked(context.Background(), "no puzzles remaining")
		return
	}
	if _, err := c.openRoundLocked(); err != nil {
		c.logger.Error("Failed to auto-advance round", "error", err)
	}
}

func (c *Controller) cancelPendingAdvanceLocked() {
	if c.pendingAdvance != nil {
		c.pendingAdvance.Stop()
		c.pendingAdvance = nil
	}
}
