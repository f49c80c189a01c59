package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrCorruptState = errors.New("corrupt saved state")
)

// Store is the durable string-valued key space behind an attempt's saved
// answers and evaluations.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all entries together.
	SetMany(ctx context.Context, entries map[string]string) error
	Close() error
}
