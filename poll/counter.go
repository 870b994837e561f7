// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// OverflowPolicy decides what Increment does to a cell already at math.MaxUint32
type OverflowPolicy int

const (
	// OverflowFail rejects the increment with ErrOverflow
	OverflowFail OverflowPolicy = iota
	// OverflowSaturate keeps the cell at math.MaxUint32 and succeeds
	OverflowSaturate
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowFail:
		return "fail"
	case OverflowSaturate:
		return "saturate"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy accepts "fail" or "saturate"
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail":
		return OverflowFail, nil
	case "saturate":
		return OverflowSaturate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// CounterStore reads and writes vote counters through one host transaction.
// It does no locking of its own.
type CounterStore struct {
	cells  Cells
	policy OverflowPolicy
}

func NewCounterStore(cells Cells, policy OverflowPolicy) *CounterStore {
	return &CounterStore{cells: cells, policy: policy}
}

// GetOrZero returns the stored count, or 0 if the cell was never written
func (s *CounterStore) GetOrZero(ctx context.Context, key Option) (uint32, error) {
	if !key.valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	v, ok, err := s.cells.Get(ctx, key.String())
	if err != nil {
		return 0, fmt.Errorf("%w: get %s: %w", ErrStorageFailure, key, err)
	}
	if !ok {
		return 0, nil
	}
	return v, nil
}

// Set overwrites the cell
func (s *CounterStore) Set(ctx context.Context, key Option, value uint32) error {
	if !key.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	if err := s.cells.Put(ctx, key.String(), value); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrStorageFailure, key, err)
	}
	return nil
}

// Increment adds one to the cell and returns the new count
func (s *CounterStore) Increment(ctx context.Context, key Option) (uint32, error) {
	current, err := s.GetOrZero(ctx, key)
	if err != nil {
		return 0, err
	}

	if current == math.MaxUint32 {
		if s.policy == OverflowSaturate {
			return current, nil
		}
		return current, fmt.Errorf("%w: %s at %d", ErrOverflow, key, current)
	}

	next := current + 1
	if err := s.Set(ctx, key, next); err != nil {
		return 0, err
	}
	return next, nil
}
