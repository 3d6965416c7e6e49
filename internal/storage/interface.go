package storage

import (
	"context"

	"github.com/palaro/guessquiz/internal/model"
)

// Storage persists the participant roster.
//
// The roster is loaded and saved as a whole; callers own any
// mutual exclusion across load-mutate-save sequences.
type Storage interface {
	// LoadParticipants returns the full roster. A missing or
	// unreadable roster yields an empty slice, not an error.
	LoadParticipants(ctx context.Context) ([]model.Participant, error)
	// SaveParticipants atomically replaces the stored roster.
	SaveParticipants(ctx context.Context, participants []model.Participant) error
	// ResetParticipants removes all stored participants.
	ResetParticipants(ctx context.Context) error
}
