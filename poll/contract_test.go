// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-poll/hoststore"
	"github.com/danielhkuo/quickly-poll/poll"
)

func newContract(t *testing.T) *poll.Contract {
	t.Helper()
	host := hoststore.NewMemoryHost()
	t.Cleanup(func() { host.Close() })
	return poll.NewContract(host, poll.OverflowFail)
}

func TestGetResults_FreshPoll(t *testing.T) {
	res, err := newContract(t).GetResults(context.Background())
	require.NoError(t, err)
	require.Equal(t, poll.Results{A: 0, B: 0}, res)
}

func TestScenario_TwoAOneB(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c := newContract(t)

	require.NoError(c.VoteA(ctx))
	require.NoError(c.VoteA(ctx))
	require.NoError(c.VoteB(ctx))

	res, err := c.GetResults(ctx)
	require.NoError(err)
	require.Equal(poll.Results{A: 2, B: 1}, res)
}

func TestVote_NotIdempotent(t *testing.T) {
	ctx := context.Background()
	c := newContract(t)

	require.NoError(t, c.VoteA(ctx))
	require.NoError(t, c.VoteA(ctx))

	res, err := c.GetResults(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(2), res.A)
}

func TestVote_CellsIndependent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c := newContract(t)

	for i := 0; i < 5; i++ {
		require.NoError(c.VoteA(ctx))
	}
	res, err := c.GetResults(ctx)
	require.NoError(err)
	require.Zero(res.B)

	for i := 0; i < 3; i++ {
		require.NoError(c.VoteB(ctx))
	}
	res, err = c.GetResults(ctx)
	require.NoError(err)
	require.Equal(uint32(5), res.A)
	require.Equal(uint32(3), res.B)
}

func TestVote_AnyInterleaving(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		c := newContract(t)
		var wantA, wantB uint32
		for i, n := 0, rng.Intn(60); i < n; i++ {
			if rng.Intn(2) == 0 {
				require.NoError(t, c.VoteA(ctx))
				wantA++
			} else {
				require.NoError(t, c.VoteB(ctx))
				wantB++
			}
		}

		res, err := c.GetResults(ctx)
		require.NoError(t, err)
		require.Equal(t, poll.Results{A: wantA, B: wantB}, res, "round %d", round)
	}
}

func TestVote_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := newContract(t)

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, c.VoteA(ctx))
			} else {
				assert.NoError(t, c.VoteB(ctx))
			}
		}(i)
	}
	wg.Wait()

	res, err := c.GetResults(ctx)
	require.NoError(t, err)
	require.Equal(t, poll.Results{A: voters / 2, B: voters / 2}, res)
}

func TestVote_ByOption(t *testing.T) {
	ctx := context.Background()
	c := newContract(t)

	require.NoError(t, c.Vote(ctx, poll.OptionB))
	require.ErrorIs(t, c.Vote(ctx, poll.Option(3)), poll.ErrUnknownOption)

	res, err := c.GetResults(ctx)
	require.NoError(t, err)
	require.Equal(t, poll.Results{A: 0, B: 1}, res)
}

func TestInvoke(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c := newContract(t)

	out, err := c.Invoke(ctx, poll.FuncVoteA)
	require.NoError(err)
	require.Nil(out)

	_, err = c.Invoke(ctx, poll.FuncVoteB)
	require.NoError(err)
	_, err = c.Invoke(ctx, poll.FuncVoteB)
	require.NoError(err)

	out, err = c.Invoke(ctx, poll.FuncGetResults)
	require.NoError(err)
	require.Equal(poll.Results{A: 1, B: 2}, out)

	_, err = c.Invoke(ctx, "reset")
	require.ErrorIs(err, poll.ErrUnknownFunction)
}

// seededHost wraps a memory host and can fail writes on demand
type seededHost struct {
	*hoststore.MemoryHost
	failPut bool
}

type failingCells struct {
	poll.Cells
}

func (failingCells) Put(context.Context, string, uint32) error {
	return errors.New("quota exceeded")
}

func (h *seededHost) Update(ctx context.Context, fn func(poll.Cells) error) error {
	return h.MemoryHost.Update(ctx, func(c poll.Cells) error {
		if h.failPut {
			return fn(failingCells{c})
		}
		return fn(c)
	})
}

func seed(t *testing.T, host poll.Host, a, b uint32) {
	t.Helper()
	err := host.Update(context.Background(), func(c poll.Cells) error {
		if err := c.Put(context.Background(), poll.OptionA.String(), a); err != nil {
			return err
		}
		return c.Put(context.Background(), poll.OptionB.String(), b)
	})
	require.NoError(t, err)
}

func TestVote_StorageFailureLeavesStateIntact(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	host := &seededHost{MemoryHost: hoststore.NewMemoryHost()}
	seed(t, host, 4, 2)

	host.failPut = true
	c := poll.NewContract(host, poll.OverflowFail)
	err := c.VoteA(ctx)
	require.ErrorIs(err, poll.ErrStorageFailure)

	res, err := c.GetResults(ctx)
	require.NoError(err)
	require.Equal(poll.Results{A: 4, B: 2}, res)
}

func TestVote_OverflowPolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("fail", func(t *testing.T) {
		host := hoststore.NewMemoryHost()
		seed(t, host, math.MaxUint32, 1)
		c := poll.NewContract(host, poll.OverflowFail)

		err := c.VoteA(ctx)
		require.ErrorIs(t, err, poll.ErrOverflow)

		res, err := c.GetResults(ctx)
		require.NoError(t, err)
		require.Equal(t, poll.Results{A: math.MaxUint32, B: 1}, res)

		// the other cell still accepts votes
		require.NoError(t, c.VoteB(ctx))
	})

	t.Run("saturate", func(t *testing.T) {
		host := hoststore.NewMemoryHost()
		seed(t, host, 1, math.MaxUint32)
		c := poll.NewContract(host, poll.OverflowSaturate)

		require.NoError(t, c.VoteB(ctx))

		res, err := c.GetResults(ctx)
		require.NoError(t, err)
		require.Equal(t, poll.Results{A: 1, B: math.MaxUint32}, res)
	})
}

func TestContract_CancelledContext(t *testing.T) {
	c := newContract(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.VoteA(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, poll.ErrStorageFailure)
}

func TestResults_TotalAndPercentages(t *testing.T) {
	tests := []struct {
		name         string
		res          poll.Results
		total        uint64
		wantA, wantB int
	}{
		{"empty poll", poll.Results{}, 0, 50, 50},
		{"two to one", poll.Results{A: 2, B: 1}, 3, 67, 33},
		{"unanimous", poll.Results{A: 0, B: 9}, 9, 0, 100},
		{"at max", poll.Results{A: math.MaxUint32, B: math.MaxUint32}, 2 * math.MaxUint32, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.total, tt.res.Total())
			a, b := tt.res.Percentages()
			require.Equal(t, tt.wantA, a)
			require.Equal(t, tt.wantB, b)
		})
	}
}

func TestResults_Count(t *testing.T) {
	res := poll.Results{A: 7, B: 3}

	var sum uint64
	for _, o := range poll.Options {
		sum += uint64(res.Count(o))
	}
	require.Equal(t, uint32(7), res.Count(poll.OptionA))
	require.Equal(t, uint32(3), res.Count(poll.OptionB))
	require.Equal(t, res.Total(), sum)
}
