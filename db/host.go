// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-poll/poll"
)

// Dialect constants
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Host runs contract transactions against the cell table
type Host struct {
	db      *sql.DB
	dialect string
}

// NewHost wraps an open connection. The schema must already exist.
// For SQLite the caller must limit the pool to one connection and open
// with _txlock=immediate so that transactions are serialized.
func NewHost(db *sql.DB, dialect string) *Host {
	return &Host{db: db, dialect: dialect}
}

// Update runs fn in a transaction that excludes every other writer
func (h *Host) Update(ctx context.Context, fn func(poll.Cells) error) error {
	return h.run(ctx, false, fn)
}

// View runs fn in a transaction that rejects writes
func (h *Host) View(ctx context.Context, fn func(poll.Cells) error) error {
	return h.run(ctx, true, fn)
}

func (h *Host) Close() error {
	return h.db.Close()
}

func (h *Host) run(ctx context.Context, readOnly bool, fn func(poll.Cells) error) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Postgres runs READ COMMITTED by default; take the table lock so two
	// read-modify-write transactions cannot both read the same value.
	if !readOnly && h.dialect == DialectPostgres {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE cell IN EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock cell table: %w", err)
		}
	}

	if err := fn(&cells{tx: tx, readOnly: readOnly}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type cells struct {
	tx       *sql.Tx
	readOnly bool
}

func (c *cells) Get(ctx context.Context, key string) (uint32, bool, error) {
	var value int64
	err := c.tx.QueryRowContext(ctx, `
		SELECT value FROM cell WHERE key = $1
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query cell: %w", err)
	}
	return uint32(value), true, nil
}

func (c *cells) Put(ctx context.Context, key string, value uint32) error {
	if c.readOnly {
		return poll.ErrReadOnly
	}

	_, err := c.tx.ExecContext(ctx, `
		INSERT INTO cell (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, int64(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert cell: %w", err)
	}
	return nil
}
