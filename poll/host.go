// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "context"

// Cells is the key-value view a host hands to one transaction
type Cells interface {
	// ok is false when the key was never written
	Get(ctx context.Context, key string) (value uint32, ok bool, err error)
	Put(ctx context.Context, key string, value uint32) error
}

// Host provides durable cells and serializes invocations against them
type Host interface {
	// Update runs fn as a single read-write transaction. Transactions that
	// touch the same cells never interleave. If fn returns an error, none of
	// its writes are committed.
	Update(ctx context.Context, fn func(Cells) error) error

	// View runs fn against a read-only snapshot. Put fails there.
	View(ctx context.Context, fn func(Cells) error) error

	Close() error
}
