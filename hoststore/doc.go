// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hoststore provides the host platforms a poll contract can run on.

# Opening a Host

	host, err := hoststore.Open(ctx, hoststore.KindSQLite, "quickly-poll.db")
	if err != nil {
		log.Fatal(err)
	}
	defer host.Close()

# Kinds

  - memory: process memory, lost on restart (tests, demos)
  - bbolt: single file via go.etcd.io/bbolt
  - sqlite: single file via modernc.org/sqlite (default)
  - postgres: PostgreSQL via github.com/lib/pq
  - redis: Redis via github.com/go-redis/redis/v8

# Serialization

Every kind guarantees that two concurrent Update calls never both read the
same old value of a cell:

  - memory: sync.RWMutex held for the whole transaction
  - bbolt: single writer transaction
  - sqlite: connection pool of one; BEGIN IMMEDIATE with a busy timeout
    across processes sharing the file
  - postgres: LOCK TABLE cell IN EXCLUSIVE MODE
  - redis: WATCH on every key read, retried on conflict

The shared conformance suite in hoststore/hosttest checks these guarantees
against each driver.
*/
package hoststore
