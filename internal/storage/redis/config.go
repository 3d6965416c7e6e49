package redis

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient builds a redis client from a connection URL
// (e.g. redis://localhost:6379/0).
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
