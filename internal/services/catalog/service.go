package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/palaro/guessquiz/internal/model"
)

// ErrUnknownImage is returned when an image reference is not in the catalog
var ErrUnknownImage = errors.New("image not in catalog")

// Service holds the puzzle catalog loaded at startup.
//
// The catalog file is a JSON array of puzzles; each puzzle names an
// image file under the images directory, and the answer is derived
// from the image file name.
type Service struct {
	logger    *slog.Logger
	imagesDir string
	puzzles   []model.Puzzle
	byRef     map[string]model.Puzzle
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
		byRef:  map[string]model.Puzzle{},
	}
}

// LoadFromFile loads the catalog and verifies the images directory
// exists. Loading fails fast on a malformed catalog or a missing
// image file so misconfiguration surfaces at startup, not mid-game.
func (s *Service) LoadFromFile(catalogPath, imagesDir string) error {
	info, err := os.Stat(imagesDir)
	if err != nil {
		return fmt.Errorf("images directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("images directory: %s is not a directory", imagesDir)
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	var puzzles []model.Puzzle
	if err := json.Unmarshal(data, &puzzles); err != nil {
		return fmt.Errorf("parsing catalog: %w", err)
	}
	if len(puzzles) == 0 {
		return fmt.Errorf("catalog %s contains no puzzles", catalogPath)
	}

	byRef := make(map[string]model.Puzzle, len(puzzles))
	for _, p := range puzzles {
		if p.ImageRef == "" {
			return fmt.Errorf("catalog entry with empty image reference")
		}
		if filepath.Base(p.ImageRef) != p.ImageRef {
			return fmt.Errorf("catalog image reference %q must be a bare file name", p.ImageRef)
		}
		if _, err := os.Stat(filepath.Join(imagesDir, p.ImageRef)); err != nil {
			return fmt.Errorf("catalog image %s: %w", p.ImageRef, err)
		}
		byRef[p.ImageRef] = p
	}

	s.imagesDir = imagesDir
	s.puzzles = puzzles
	s.byRef = byRef
	s.logger.Info("Loaded puzzle catalog",
		"path", catalogPath,
		"puzzles", len(puzzles))
	return nil
}

// Loaded reports whether a catalog has been loaded.
func (s *Service) Loaded() bool {
	return len(s.puzzles) > 0
}

// Pool returns a copy of the full catalog for a game to consume.
func (s *Service) Pool() ([]model.Puzzle, error) {
	if !s.Loaded() {
		return nil, model.ErrCatalogNotLoaded
	}
	pool := make([]model.Puzzle, len(s.puzzles))
	copy(pool, s.puzzles)
	return pool, nil
}

// Size returns the number of puzzles in the catalog.
func (s *Service) Size() int {
	return len(s.puzzles)
}

// ImagePath resolves a catalog image reference to a path on disk.
// References outside the catalog are rejected, so the handler serving
// images can never be walked out of the images directory.
func (s *Service) ImagePath(ref string) (string, error) {
	if !s.Loaded() {
		return "", model.ErrCatalogNotLoaded
	}
	if _, ok := s.byRef[ref]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownImage, ref)
	}
	return filepath.Join(s.imagesDir, ref), nil
}
