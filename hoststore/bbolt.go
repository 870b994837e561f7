// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hoststore

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/danielhkuo/quickly-poll/poll"
)

const (
	cellsBucketName = "cells"
	boltOpenTimeout = time.Second
)

// BoltHost keeps cells in a bbolt file. bbolt allows one writer at a time,
// which serializes every Update.
type BoltHost struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file and its cells bucket
func OpenBolt(path string) (*BoltHost, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(cellsBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cells bucket: %w", err)
	}

	return &BoltHost{db: db}, nil
}

func (h *BoltHost) Update(ctx context.Context, fn func(poll.Cells) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.db.Update(func(tx *bolt.Tx) error {
		if err := fn(&boltCells{bucket: tx.Bucket([]byte(cellsBucketName))}); err != nil {
			return err
		}
		// returning an error rolls the transaction back
		return ctx.Err()
	})
}

func (h *BoltHost) View(ctx context.Context, fn func(poll.Cells) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.db.View(func(tx *bolt.Tx) error {
		return fn(&boltCells{bucket: tx.Bucket([]byte(cellsBucketName)), readOnly: true})
	})
}

func (h *BoltHost) Close() error {
	return h.db.Close()
}

type boltCells struct {
	bucket   *bolt.Bucket
	readOnly bool
}

func (c *boltCells) Get(_ context.Context, key string) (uint32, bool, error) {
	v := c.bucket.Get([]byte(key))
	if v == nil {
		return 0, false, nil
	}
	if len(v) != 4 {
		return 0, false, fmt.Errorf("%w: %s has %d bytes", ErrCorruptCell, key, len(v))
	}
	return binary.BigEndian.Uint32(v), true, nil
}

func (c *boltCells) Put(_ context.Context, key string, value uint32) error {
	if c.readOnly {
		return poll.ErrReadOnly
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, value)
	return c.bucket.Put([]byte(key), buf)
}
