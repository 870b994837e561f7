// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hoststore

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-poll/poll"
)

// MemoryHost keeps cells in process memory. Nothing survives a restart.
type MemoryHost struct {
	mu     sync.RWMutex
	cells  map[string]uint32
	closed bool
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{cells: make(map[string]uint32)}
}

// Update holds the write lock for the whole callback and applies staged
// writes only when fn succeeds
func (h *MemoryHost) Update(ctx context.Context, fn func(poll.Cells) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryCells{base: h.cells, staged: make(map[string]uint32)}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for k, v := range tx.staged {
		h.cells[k] = v
	}
	return nil
}

func (h *MemoryHost) View(ctx context.Context, fn func(poll.Cells) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&memoryCells{base: h.cells})
}

func (h *MemoryHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// staged == nil means read-only
type memoryCells struct {
	base   map[string]uint32
	staged map[string]uint32
}

func (c *memoryCells) Get(_ context.Context, key string) (uint32, bool, error) {
	if v, ok := c.staged[key]; ok {
		return v, true, nil
	}
	v, ok := c.base[key]
	return v, ok, nil
}

func (c *memoryCells) Put(_ context.Context, key string, value uint32) error {
	if c.staged == nil {
		return poll.ErrReadOnly
	}
	c.staged[key] = value
	return nil
}
