// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-poll/hoststore"
	"github.com/danielhkuo/quickly-poll/poll"
)

const (
	DefaultPort       = 3318
	DefaultSQLitePath = "quickly-poll.db"
	DefaultBoltPath   = "quickly-poll.bolt"
)

type Config struct {
	Port           int
	StoreKind      string
	DSN            string
	OverflowPolicy poll.OverflowPolicy
	LogLevel       slog.Level
	LogFormat      string
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var policy, level string

	fs := flag.NewFlagSet("quickly-poll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreKind, "s", "", "Store kind (memory, bbolt, sqlite, postgres, redis)")
	fs.StringVar(&cfg.DSN, "d", "", "Store DSN: file path or connection URL")
	fs.StringVar(&policy, "overflow", "", "Overflow policy (fail or saturate)")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if err := ResolveStore(&cfg.StoreKind, &cfg.DSN); err != nil {
		return Config{}, err
	}

	if policy == "" {
		policy = envOr("OVERFLOW_POLICY", "fail")
	}
	p, err := poll.ParseOverflowPolicy(policy)
	if err != nil {
		return Config{}, err
	}
	cfg.OverflowPolicy = p

	if level == "" {
		level = envOr("LOG_LEVEL", "info")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", level)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = envOr("LOG_FORMAT", "text")
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ResolveStore applies STORE_KIND and DATABASE_URL fallbacks and per-kind
// defaults to an empty kind or DSN, then validates the pair
func ResolveStore(kind, dsn *string) error {
	if *kind == "" {
		*kind = envOr("STORE_KIND", hoststore.KindSQLite)
	}
	*kind = strings.ToLower(*kind)
	if !slices.Contains(hoststore.Kinds, *kind) {
		return fmt.Errorf("%w: %q", hoststore.ErrUnknownKind, *kind)
	}

	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		switch *kind {
		case hoststore.KindSQLite:
			*dsn = DefaultSQLitePath
		case hoststore.KindBolt:
			*dsn = DefaultBoltPath
		case hoststore.KindPostgres, hoststore.KindRedis:
			return fmt.Errorf("%w for %s (use -d or DATABASE_URL env)", hoststore.ErrDSNRequired, *kind)
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
