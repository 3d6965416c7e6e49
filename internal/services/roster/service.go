package roster

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/storage"
)

// Service manages the participant roster and leaderboard.
//
// All mutations run load-mutate-save under one mutex so concurrent
// joins and awards never clobber each other's writes.
type Service struct {
	mu      sync.Mutex
	logger  *slog.Logger
	storage storage.Storage
	clock   clock.Clock
}

func NewService(logger *slog.Logger, store storage.Storage, clk clock.Clock) *Service {
	return &Service{
		logger:  logger,
		storage: store,
		clock:   clk,
	}
}

// Join registers a participant. Joining again is a no-op that
// reports the participant was already registered.
func (s *Service) Join(ctx context.Context, username model.Username, displayName string) (model.Participant, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := s.storage.LoadParticipants(ctx)
	if err != nil {
		return model.Participant{}, false, err
	}

	for _, p := range participants {
		if p.Username == username {
			return p, false, nil
		}
	}

	participant := model.NewParticipant(username, displayName, s.clock.Now())
	participants = append(participants, participant)
	if err := s.storage.SaveParticipants(ctx, participants); err != nil {
		return model.Participant{}, false, fmt.Errorf("saving roster: %w", err)
	}

	s.logger.Info("Participant joined",
		"username", username,
		"total_players", len(participants))
	return participant, true, nil
}

// Get returns a single participant.
func (s *Service) Get(ctx context.Context, username model.Username) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := s.storage.LoadParticipants(ctx)
	if err != nil {
		return model.Participant{}, err
	}
	for _, p := range participants {
		if p.Username == username {
			return p, nil
		}
	}
	return model.Participant{}, model.ErrParticipantNotFound
}

// IsParticipant reports whether the username is on the roster.
func (s *Service) IsParticipant(ctx context.Context, username model.Username) (bool, error) {
	_, err := s.Get(ctx, username)
	if err == model.ErrParticipantNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AwardPoints adds points to a participant's score and returns their
// updated record and 1-based leaderboard rank.
func (s *Service) AwardPoints(ctx context.Context, username model.Username, points int) (model.Participant, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := s.storage.LoadParticipants(ctx)
	if err != nil {
		return model.Participant{}, 0, err
	}

	idx := -1
	for i, p := range participants {
		if p.Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Participant{}, 0, model.ErrParticipantNotFound
	}

	participants[idx].Score += points
	if err := s.storage.SaveParticipants(ctx, participants); err != nil {
		return model.Participant{}, 0, fmt.Errorf("saving roster: %w", err)
	}

	return participants[idx], rankOf(participants, username), nil
}

// Leaderboard returns the top participants by score. A limit of 0
// or less returns the full standings.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := s.storage.LoadParticipants(ctx)
	if err != nil {
		return nil, err
	}

	ranked := rank(participants)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Stats returns the aggregate roster numbers.
func (s *Service) Stats(ctx context.Context) (model.RosterStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := s.storage.LoadParticipants(ctx)
	if err != nil {
		return model.RosterStats{}, err
	}

	stats := model.RosterStats{TotalPlayers: len(participants)}
	for _, p := range participants {
		if p.Score > 0 {
			stats.ActivePlayers++
		}
		if p.Score > stats.HighestScore {
			stats.HighestScore = p.Score
		}
	}
	return stats, nil
}

// ResetAll wipes the roster, scores included.
func (s *Service) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.ResetParticipants(ctx); err != nil {
		return fmt.Errorf("resetting roster: %w", err)
	}
	s.logger.Info("Roster reset, all scores cleared")
	return nil
}

// rank sorts by score descending; ties keep roster (join) order.
func rank(participants []model.Participant) []model.LeaderboardEntry {
	sorted := make([]model.Participant, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = model.LeaderboardEntry{Rank: i + 1, Participant: p}
	}
	return entries
}

func rankOf(participants []model.Participant, username model.Username) int {
	for _, e := range rank(participants) {
		if e.Participant.Username == username {
			return e.Rank
		}
	}
	return 0
}
