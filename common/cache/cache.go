package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
	ErrDisabled     = errors.New("cache is disabled")
)

// Cache stores opaque snapshots. Values passed to Set must implement
// encoding.BinaryMarshaler; values passed to Get must implement
// encoding.BinaryUnmarshaler.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Get(ctx context.Context, key string, value interface{}) error

	Close() error
}

type Options struct {
	DefaultTTL time.Duration

	RedisURL string

	RedisPassword string

	RedisDB int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL: 24 * time.Hour,
	}
}

// Noop is used when no cache backend is configured.
type Noop struct{}

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return ErrDisabled }

func (Noop) Get(context.Context, string, interface{}) error { return ErrNotFound }

func (Noop) Close() error { return nil }
