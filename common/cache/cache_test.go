package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); !errors.Is(err, ErrDisabled) {
		t.Errorf("Set() error = %v, want ErrDisabled", err)
	}
	if err := c.Get(ctx, "k", new(string)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	if got := DefaultOptions().DefaultTTL; got != 24*time.Hour {
		t.Errorf("DefaultTTL = %v, want 24h", got)
	}
}
