// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hoststore

import "errors"

var (
	ErrUnknownKind = errors.New("unknown store kind")
	ErrDSNRequired = errors.New("store DSN required")
	ErrCorruptCell = errors.New("corrupt cell value")
	ErrTxConflict  = errors.New("transaction kept conflicting")
	ErrHostClosed  = errors.New("host closed")
)
