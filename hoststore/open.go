// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hoststore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/poll"
)

// Store kinds
const (
	KindMemory   = "memory"
	KindBolt     = "bbolt"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
	KindRedis    = "redis"
)

// Kinds lists every supported store kind
var Kinds = []string{KindMemory, KindBolt, KindSQLite, KindPostgres, KindRedis}

// Open connects to the host of the given kind. dsn is a file path for
// bbolt and sqlite, a connection URL for postgres and redis, and ignored
// for memory.
func Open(ctx context.Context, kind, dsn string) (poll.Host, error) {
	if kind != KindMemory && dsn == "" {
		return nil, fmt.Errorf("%w for %s", ErrDSNRequired, kind)
	}

	var (
		host poll.Host
		err  error
	)
	switch kind {
	case KindMemory:
		host = NewMemoryHost()
	case KindBolt:
		host, err = OpenBolt(dsn)
	case KindSQLite:
		host, err = openSQL(ctx, "sqlite", db.DialectSQLite, dsn)
	case KindPostgres:
		host, err = openSQL(ctx, "postgres", db.DialectPostgres, dsn)
	case KindRedis:
		host, err = ConnectRedis(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("host store ready", "kind", kind)
	return host, nil
}

// Other processes may hold the same SQLite file (pollctl next to the
// server). Writers take the lock at BEGIN and wait for it instead of
// failing with SQLITE_BUSY.
const sqliteLockParams = "_pragma=busy_timeout(5000)&_txlock=immediate"

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqliteLockParams
	}
	return path + "?" + sqliteLockParams
}

func openSQL(ctx context.Context, driver, dialect, dsn string) (*db.Host, error) {
	if dialect == db.DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// One connection serializes SQLite transactions inside this process
	if dialect == db.DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return db.NewHost(conn, dialect), nil
}
