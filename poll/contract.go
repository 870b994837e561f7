// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Entry point names accepted by Invoke
const (
	FuncVoteA      = "vote_a"
	FuncVoteB      = "vote_b"
	FuncGetResults = "get_results"
)

// Results is the ordered pair (countA, countB)
type Results struct {
	A uint32
	B uint32
}

// Total never overflows
func (r Results) Total() uint64 {
	return uint64(r.A) + uint64(r.B)
}

// Count returns the tally for one option
func (r Results) Count(o Option) uint32 {
	if o == OptionB {
		return r.B
	}
	return r.A
}

// Percentages rounds each side to a whole percent. An empty poll reads 50/50.
func (r Results) Percentages() (a, b int) {
	total := r.Total()
	if total == 0 {
		return 50, 50
	}
	a = int(math.Round(float64(r.A) / float64(total) * 100))
	b = int(math.Round(float64(r.B) / float64(total) * 100))
	return a, b
}

// Contract exposes vote_a, vote_b and get_results over a host
type Contract struct {
	host   Host
	policy OverflowPolicy
}

func NewContract(host Host, policy OverflowPolicy) *Contract {
	return &Contract{host: host, policy: policy}
}

// VoteA records one vote for OptionA
func (c *Contract) VoteA(ctx context.Context) error {
	return c.vote(ctx, OptionA)
}

// VoteB records one vote for OptionB
func (c *Contract) VoteB(ctx context.Context) error {
	return c.vote(ctx, OptionB)
}

// Vote records one vote for the given option
func (c *Contract) Vote(ctx context.Context, option Option) error {
	if !option.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownOption, option)
	}
	return c.vote(ctx, option)
}

func (c *Contract) vote(ctx context.Context, option Option) error {
	var count uint32
	err := c.host.Update(ctx, func(cells Cells) error {
		var err error
		count, err = NewCounterStore(cells, c.policy).Increment(ctx, option)
		return err
	})
	if err != nil {
		err = hostError(err)
		slog.Debug("vote rejected", "option", option.String(), "error", err)
		return err
	}

	slog.Debug("vote recorded", "option", option.String(), "count", count)
	return nil
}

// GetResults reads both tallies from one snapshot
func (c *Contract) GetResults(ctx context.Context) (Results, error) {
	var res Results
	err := c.host.View(ctx, func(cells Cells) error {
		store := NewCounterStore(cells, c.policy)

		var err error
		if res.A, err = store.GetOrZero(ctx, OptionA); err != nil {
			return err
		}
		res.B, err = store.GetOrZero(ctx, OptionB)
		return err
	})
	if err != nil {
		return Results{}, hostError(err)
	}
	return res, nil
}

// Invoke calls an entry point by name. Votes return nil; get_results returns Results.
func (c *Contract) Invoke(ctx context.Context, fn string) (any, error) {
	switch fn {
	case FuncVoteA:
		return nil, c.VoteA(ctx)
	case FuncVoteB:
		return nil, c.VoteB(ctx)
	case FuncGetResults:
		return c.GetResults(ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, fn)
}

// hostError marks failures raised by the host itself (begin, commit, driver
// errors outside Cells) as storage failures.
func hostError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrStorageFailure) || errors.Is(err, ErrOverflow) || errors.Is(err, ErrUnknownOption) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}
