package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/palaro/guessquiz/internal/model"
)

// Storage persists the roster as a single JSON file.
//
// Saves go through a temp file in the same directory followed by a
// rename, so a crash mid-write never leaves a truncated roster.
type Storage struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Storage {
	return &Storage{
		path:   path,
		logger: logger,
	}
}

func (s *Storage) LoadParticipants(ctx context.Context) ([]model.Participant, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Participant{}, nil
		}
		s.logger.Warn("Failed to read roster file, starting empty",
			"path", s.path,
			"error", err)
		return []model.Participant{}, nil
	}

	var participants []model.Participant
	if err := json.Unmarshal(data, &participants); err != nil {
		s.logger.Warn("Roster file is corrupt, starting empty",
			"path", s.path,
			"error", err)
		return []model.Participant{}, nil
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}

func (s *Storage) SaveParticipants(ctx context.Context, participants []model.Participant) error {
	data, err := json.MarshalIndent(participants, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling roster: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating roster directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp roster file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp roster file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp roster file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing roster file: %w", err)
	}
	return nil
}

func (s *Storage) ResetParticipants(ctx context.Context) error {
	return s.SaveParticipants(ctx, []model.Participant{})
}
