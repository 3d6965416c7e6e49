package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/palaro/guessquiz/internal/model"
)

// Storage persists the roster as a single JSON value in redis.
type Storage struct {
	client *redis.Client
	logger *slog.Logger
}

func New(client *redis.Client, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		logger: logger,
	}
}

func (s *Storage) LoadParticipants(ctx context.Context) ([]model.Participant, error) {
	data, err := s.client.Get(ctx, rosterKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Participant{}, nil
		}
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	var participants []model.Participant
	if err := json.Unmarshal(data, &participants); err != nil {
		s.logger.Warn("Stored roster is corrupt, starting empty",
			"error", err)
		return []model.Participant{}, nil
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}

func (s *Storage) SaveParticipants(ctx context.Context, participants []model.Participant) error {
	data, err := json.Marshal(participants)
	if err != nil {
		return fmt.Errorf("marshalling roster: %w", err)
	}
	if err := s.client.Set(ctx, rosterKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}
	return nil
}

func (s *Storage) ResetParticipants(ctx context.Context) error {
	if err := s.client.Del(ctx, rosterKey()).Err(); err != nil {
		return fmt.Errorf("resetting roster: %w", err)
	}
	return nil
}
