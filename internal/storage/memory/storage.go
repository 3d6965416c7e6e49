package memory

import (
	"context"
	"sync"

	"github.com/palaro/guessquiz/internal/model"
)

// Storage is an in-memory roster store for tests and ephemeral runs.
type Storage struct {
	mu           sync.RWMutex
	participants []model.Participant
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) LoadParticipants(ctx context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Participant, len(s.participants))
	copy(out, s.participants)
	return out, nil
}

func (s *Storage) SaveParticipants(ctx context.Context, participants []model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = make([]model.Participant, len(participants))
	copy(s.participants, participants)
	return nil
}

func (s *Storage) ResetParticipants(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = nil
	return nil
}
