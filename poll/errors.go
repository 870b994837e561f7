// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "errors"

var (
	ErrStorageFailure  = errors.New("storage failure")
	ErrOverflow        = errors.New("counter overflow")
	ErrUnknownFunction = errors.New("unknown contract function")
	ErrUnknownOption   = errors.New("unknown option")
	ErrUnknownPolicy   = errors.New("unknown overflow policy")
	ErrReadOnly        = errors.New("write in read-only transaction")
)
