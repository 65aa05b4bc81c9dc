package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent. Callers fall back to the source
// of truth and re-populate.
var ErrMiss = errors.New("cache: key not found")

// Store is the snapshot cache the team balance layer reads through. Values
// are opaque strings; callers own serialization.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
