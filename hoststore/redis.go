// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hoststore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/danielhkuo/quickly-poll/poll"
)

const (
	redisKeyPrefix     = "quickly-poll:"
	redisMaxTxAttempts = 1000
)

// RedisHost keeps cells as Redis strings. Update is an optimistic
// WATCH/MULTI/EXEC transaction: every key read is watched and the whole
// callback is retried when another client changed one of them.
type RedisHost struct {
	client *redis.Client
	prefix string
}

// NewRedisHost uses an existing client. Keys are namespaced with prefix.
func NewRedisHost(client *redis.Client, prefix string) *RedisHost {
	return &RedisHost{client: client, prefix: prefix}
}

// ConnectRedis accepts either a redis:// URL or a bare host:port
func ConnectRedis(ctx context.Context, dsn string) (*RedisHost, error) {
	var opts *redis.Options
	if strings.Contains(dsn, "://") {
		var err error
		opts, err = redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
	} else {
		opts = &redis.Options{Addr: dsn}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return NewRedisHost(client, redisKeyPrefix), nil
}

func (h *RedisHost) Update(ctx context.Context, fn func(poll.Cells) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for attempt := 1; attempt <= redisMaxTxAttempts; attempt++ {
		err := h.client.Watch(ctx, func(tx *redis.Tx) error {
			cells := &redisCells{tx: tx, prefix: h.prefix, staged: make(map[string]uint32)}
			if err := fn(cells); err != nil {
				return err
			}
			if len(cells.staged) == 0 {
				return nil
			}

			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for key, value := range cells.staged {
					pipe.Set(ctx, key, value, 0)
				}
				return nil
			})
			return err
		})

		if errors.Is(err, redis.TxFailedErr) {
			slog.Debug("redis transaction conflict, retrying", "attempt", attempt)
			continue
		}
		return err
	}
	return ErrTxConflict
}

// View reads without MULTI; the two cells of a result may come from
// different moments when votes are landing concurrently.
func (h *RedisHost) View(ctx context.Context, fn func(poll.Cells) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&redisCells{client: h.client, prefix: h.prefix})
}

func (h *RedisHost) Close() error {
	return h.client.Close()
}

// Exactly one of tx and client is set. staged == nil means read-only.
type redisCells struct {
	tx     *redis.Tx
	client *redis.Client
	prefix string
	staged map[string]uint32
}

func (c *redisCells) Get(ctx context.Context, key string) (uint32, bool, error) {
	fullKey := c.prefix + key
	if v, ok := c.staged[fullKey]; ok {
		return v, true, nil
	}

	var cmd *redis.StringCmd
	if c.tx != nil {
		if err := c.tx.Watch(ctx, fullKey).Err(); err != nil {
			return 0, false, err
		}
		cmd = c.tx.Get(ctx, fullKey)
	} else {
		cmd = c.client.Get(ctx, fullKey)
	}

	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	v, err := cmd.Uint64()
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", ErrCorruptCell, key, err)
	}
	if v > math.MaxUint32 {
		return 0, false, fmt.Errorf("%w: %s = %d", ErrCorruptCell, key, v)
	}
	return uint32(v), true, nil
}

func (c *redisCells) Put(_ context.Context, key string, value uint32) error {
	if c.staged == nil {
		return poll.ErrReadOnly
	}
	c.staged[c.prefix+key] = value
	return nil
}
