package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/palaro/guessquiz/internal/dependencies/mocks"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/services/auth"
	"github.com/palaro/guessquiz/internal/storage/memory"
	"github.com/palaro/guessquiz/internal/testutil"
)

// TestAdvanceDelay is the auto-advance delay used in tests
const TestAdvanceDelay = 60 * time.Second

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies, in-memory storage, and one allow-listed operator
// ("admin" with passphrase "test-passphrase").
func NewTestApp() (*TestApp, error) {
	mockClock := mocks.NewMockClock()
	mockRandom := mocks.NewMockRandom()

	passHash, err := auth.HashPassphrase(TestOperatorPassphrase)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(
		testutil.NopLogger(),
		memory.New(),
		mockClock,
		mockRandom,
		[]model.Username{TestOperatorUsername},
		passHash,
		TestAdvanceDelay,
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}

// Test operator credentials
const (
	TestOperatorUsername   = model.Username("admin")
	TestOperatorPassphrase = "test-passphrase"
)

// LoadTestCatalog writes a catalog fixture with the given image names
// under dir and loads it.
func (t *TestApp) LoadTestCatalog(dir string, images ...string) error {
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return err
	}

	puzzles := make([]model.Puzzle, len(images))
	for i, img := range images {
		puzzles[i] = model.Puzzle{ImageRef: img}
		if err := os.WriteFile(filepath.Join(imagesDir, img), []byte("test image"), 0o644); err != nil {
			return err
		}
	}

	data, err := json.Marshal(puzzles)
	if err != nil {
		return fmt.Errorf("marshalling test catalog: %w", err)
	}
	catalogPath := filepath.Join(dir, "puzzles.json")
	if err := os.WriteFile(catalogPath, data, 0o644); err != nil {
		return err
	}

	return t.CatalogService.LoadFromFile(catalogPath, imagesDir)
}
