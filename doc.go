// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Poll API server.

Quickly Poll is a two-option poll: every call to vote_a or vote_b adds one
to that option's counter, and get_results reads both counters. There are no
accounts and no limit on how often anyone votes.

# Starting the Server

With no configuration the server keeps its counters in quickly-poll.db
(SQLite) in the working directory:

	go run .

Or pick a store with flags:

	go run . -p 3318 -s postgres -d "postgres://..."
	go run . -s redis -d redis://localhost:6379/0

A .env file in the working directory is loaded before flags are parsed.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - STORE_KIND (-s): memory, bbolt, sqlite, postgres, redis (default: sqlite)
  - DATABASE_URL (-d): file path or connection URL for the store
  - OVERFLOW_POLICY (-overflow): fail or saturate (default: fail)
  - LOG_LEVEL (-log-level), LOG_FORMAT (-log-format)

# Architecture

  - poll: Contract and counter store
  - hoststore: Host drivers (memory, bbolt, sqlite, postgres, redis)
  - db: SQL schema and SQL host
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Response types
  - cliparse: Configuration parsing

The pollctl command in cmd/pollctl drives the same contract from a terminal.

See package documentation for each component.
*/
package main
