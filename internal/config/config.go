package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend selectors
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration, loaded from the environment.
type Config struct {
	Addr string `env:"GUESSQUIZ_ADDR" envDefault:":8080"`

	CatalogPath string `env:"GUESSQUIZ_CATALOG" envDefault:"data/puzzles.json"`
	ImagesDir   string `env:"GUESSQUIZ_IMAGES_DIR" envDefault:"data/images"`

	StorageBackend string `env:"GUESSQUIZ_STORAGE" envDefault:"file"`
	RosterPath     string `env:"GUESSQUIZ_ROSTER" envDefault:"data/roster.json"`
	RedisURL       string `env:"GUESSQUIZ_REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Operators is the allow-list of usernames permitted to run game
	// controls; OperatorPassHash is the bcrypt hash of their shared
	// passphrase.
	Operators        []string `env:"GUESSQUIZ_OPERATORS" envSeparator:","`
	OperatorPassHash string   `env:"GUESSQUIZ_OPERATOR_PASS_HASH"`

	AdvanceDelay time.Duration `env:"GUESSQUIZ_ADVANCE_DELAY" envDefault:"60s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageBackend {
	case StorageFile, StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.AdvanceDelay <= 0 {
		return fmt.Errorf("advance delay must be positive, got %s", c.AdvanceDelay)
	}
	return nil
}
