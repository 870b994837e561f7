// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package hosttest is the conformance suite every poll.Host driver must pass.
package hosttest

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-poll/poll"
)

var errAbort = errors.New("abort")

// Run checks cell semantics, rollback and write serialization. Keys are
// unique per run so a shared database can be reused between runs.
func Run(t *testing.T, host poll.Host) {
	ns := uuid.NewString() + "/"

	t.Run("MissingCell", func(t *testing.T) { testMissingCell(t, host, ns) })
	t.Run("PutGet", func(t *testing.T) { testPutGet(t, host, ns) })
	t.Run("Rollback", func(t *testing.T) { testRollback(t, host, ns) })
	t.Run("ViewRejectsWrites", func(t *testing.T) { testViewRejectsWrites(t, host, ns) })
	t.Run("MaxValue", func(t *testing.T) { testMaxValue(t, host, ns) })
	t.Run("CancelledContext", func(t *testing.T) { testCancelledContext(t, host, ns) })
	t.Run("SerializedIncrements", func(t *testing.T) { testSerializedIncrements(t, host, ns) })
}

func read(t *testing.T, host poll.Host, key string) (uint32, bool) {
	t.Helper()
	var (
		v  uint32
		ok bool
	)
	err := host.View(context.Background(), func(c poll.Cells) error {
		var err error
		v, ok, err = c.Get(context.Background(), key)
		return err
	})
	require.NoError(t, err)
	return v, ok
}

func write(t *testing.T, host poll.Host, key string, value uint32) {
	t.Helper()
	err := host.Update(context.Background(), func(c poll.Cells) error {
		return c.Put(context.Background(), key, value)
	})
	require.NoError(t, err)
}

func testMissingCell(t *testing.T, host poll.Host, ns string) {
	require := require.New(t)

	v, ok := read(t, host, ns+"missing")
	require.False(ok)
	require.Zero(v)
}

func testPutGet(t *testing.T, host poll.Host, ns string) {
	require := require.New(t)
	ctx := context.Background()
	key := ns + "putget"

	err := host.Update(ctx, func(c poll.Cells) error {
		if err := c.Put(ctx, key, 7); err != nil {
			return err
		}
		// own writes are visible inside the transaction
		v, ok, err := c.Get(ctx, key)
		require.NoError(err)
		require.True(ok)
		require.Equal(uint32(7), v)
		return c.Put(ctx, key, 8)
	})
	require.NoError(err)

	v, ok := read(t, host, key)
	require.True(ok)
	require.Equal(uint32(8), v)

	write(t, host, key, 9)
	v, _ = read(t, host, key)
	require.Equal(uint32(9), v)
}

func testRollback(t *testing.T, host poll.Host, ns string) {
	require := require.New(t)
	ctx := context.Background()
	key := ns + "rollback"

	write(t, host, key, 1)

	err := host.Update(ctx, func(c poll.Cells) error {
		if err := c.Put(ctx, key, 100); err != nil {
			return err
		}
		if err := c.Put(ctx, ns+"rollback-new", 5); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(err, errAbort)

	v, ok := read(t, host, key)
	require.True(ok)
	require.Equal(uint32(1), v)

	_, ok = read(t, host, ns+"rollback-new")
	require.False(ok)
}

func testViewRejectsWrites(t *testing.T, host poll.Host, ns string) {
	require := require.New(t)
	ctx := context.Background()
	key := ns + "view"

	err := host.View(ctx, func(c poll.Cells) error {
		return c.Put(ctx, key, 1)
	})
	require.Error(err)

	_, ok := read(t, host, key)
	require.False(ok)
}

func testMaxValue(t *testing.T, host poll.Host, ns string) {
	require := require.New(t)
	key := ns + "max"

	write(t, host, key, math.MaxUint32)
	v, ok := read(t, host, key)
	require.True(ok)
	require.Equal(uint32(math.MaxUint32), v)
}

func testCancelledContext(t *testing.T, host poll.Host, ns string) {
	require := require.New(t)
	key := ns + "cancelled"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := host.Update(ctx, func(c poll.Cells) error {
		return c.Put(ctx, key, 1)
	})
	require.Error(err)

	_, ok := read(t, host, key)
	require.False(ok)
}

func testSerializedIncrements(t *testing.T, host poll.Host, ns string) {
	const (
		workers = 8
		perWork = 10
	)
	key := ns + "counter"

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWork)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWork; j++ {
				errs <- host.Update(context.Background(), func(c poll.Cells) error {
					v, _, err := c.Get(context.Background(), key)
					if err != nil {
						return err
					}
					return c.Put(context.Background(), key, v+1)
				})
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	v, _ := read(t, host, key)
	require.Equal(t, uint32(workers*perWork), v)
}
