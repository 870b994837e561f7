// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadEnvFile reads a .env file first so its values act as environment
defaults. Variables already set in the environment win.

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreKind: memory, bbolt, sqlite, postgres or redis (default: sqlite)
  - DSN: file path or connection URL for the store
  - OverflowPolicy: fail or saturate (default: fail)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)

# CLI Flags

	-p            Server port
	-s            Store kind
	-d            Store DSN
	-overflow     Overflow policy
	-log-level    Log level
	-log-format   Log format

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	STORE_KIND      → -s
	DATABASE_URL    → -d
	OVERFLOW_POLICY → -overflow
	LOG_LEVEL       → -log-level
	LOG_FORMAT      → -log-format

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - the store kind is unknown
  - postgres or redis is chosen without a DSN
  - the overflow policy, log level or log format is unknown

sqlite and bbolt default to quickly-poll.db and quickly-poll.bolt in the
working directory.
*/
package cliparse
