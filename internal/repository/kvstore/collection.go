package kvstore

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Collection is one typed JSON document in a Backend.
//
// Storage failures never reach the caller: a failed read yields the default
// and a failed write is logged and dropped.
type Collection[T any] struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// NewCollection returns the collection stored under key.
func NewCollection[T any](backend Backend, key string, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{backend: backend, key: key, logger: logger}
}

// ReadOrSeed returns the stored value, or writes def and returns it when the
// key has never been written. def must not be shared with other callers.
func (c *Collection[T]) ReadOrSeed(ctx context.Context, def T) T {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		c.logger.ErrorContext(ctx, "storage read failed", "key", c.key, "err", err)
		return def
	}
	if !ok {
		c.Write(ctx, def)
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.logger.ErrorContext(ctx, "storage decode failed", "key", c.key, "err", err)
		return def
	}
	return v
}

// Write replaces the stored value wholesale.
func (c *Collection[T]) Write(ctx context.Context, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.ErrorContext(ctx, "storage encode failed", "key", c.key, "err", err)
		return
	}
	if err := c.backend.Set(ctx, c.key, raw); err != nil {
		c.logger.ErrorContext(ctx, "storage write failed", "key", c.key, "err", err)
	}
}
