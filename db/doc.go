// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores poll cells in PostgreSQL or SQLite.

# Schema Creation

CreateSchema initializes the cell table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

	cell (
	    key        TEXT PRIMARY KEY,   -- "OptionA" or "OptionB"
	    value      BIGINT NOT NULL,    -- 0 .. 4294967295
	    updated_at TIMESTAMP NOT NULL
	)

Rows are created by the first vote for an option and never deleted.

# Host

Host implements poll.Host on top of *sql.DB:

	host := db.NewHost(conn, db.DialectPostgres)
	contract := poll.NewContract(host, poll.OverflowFail)

Writers are serialized differently per dialect:

  - postgres: each Update takes LOCK TABLE cell IN EXCLUSIVE MODE
  - sqlite: the pool is limited to one connection, and hoststore.Open adds
    _txlock=immediate and busy_timeout so other processes on the same file wait

Queries use $N placeholders, which both lib/pq and modernc.org/sqlite accept.
*/
package db
