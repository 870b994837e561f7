// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the two-option poll contract and the counter store it runs on.

# Cells

The contract owns exactly two cells, keyed by the Option enum:

	poll.OptionA → "OptionA"
	poll.OptionB → "OptionB"

Each cell holds a uint32 vote count. A cell that was never written reads as zero.

# Host

Durable storage and transaction serialization belong to the host platform:

	type Host interface {
		Update(ctx, func(Cells) error) error
		View(ctx, func(Cells) error) error
		Close() error
	}

Update runs the callback as one serialized read-write transaction. If the callback
returns an error nothing it wrote is committed. Drivers live in package hoststore.

# Contract

	c := poll.NewContract(host, poll.OverflowFail)
	err := c.VoteA(ctx)
	res, err := c.GetResults(ctx) // res.A, res.B

Invoke dispatches by entry-point name (vote_a, vote_b, get_results).

# Overflow

A cell at math.MaxUint32 cannot be incremented. OverflowFail returns ErrOverflow and
leaves the cell unchanged; OverflowSaturate keeps the cell at the maximum and reports
success.

# Errors

Host failures are wrapped with ErrStorageFailure:

	if errors.Is(err, poll.ErrStorageFailure) { ... }
*/
package poll
