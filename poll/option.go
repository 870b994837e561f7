// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"strings"
)

// Option identifies one of the two cells. The set is closed.
type Option int

const (
	OptionA Option = iota
	OptionB
)

// Options lists every cell in tally order
var Options = [...]Option{OptionA, OptionB}

// String returns the persisted cell key
func (o Option) String() string {
	switch o {
	case OptionA:
		return "OptionA"
	case OptionB:
		return "OptionB"
	default:
		return fmt.Sprintf("Option(%d)", int(o))
	}
}

func (o Option) valid() bool {
	return o == OptionA || o == OptionB
}

// ParseOption accepts "a", "b", "OptionA" or "OptionB" in any case
func ParseOption(s string) (Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "optiona":
		return OptionA, nil
	case "b", "optionb":
		return OptionB, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOption, s)
}
