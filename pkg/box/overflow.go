package box

import (
	"strings"

	"github.com/arthur-debert/nestbox/pkg/errors"
)

// OverflowPolicy decides what happens to a content line wider than its box
type OverflowPolicy int

const (
	// OverflowClamp draws the walls immediately after the content. Columns no
	// longer line up for that line, but every line is still written.
	OverflowClamp OverflowPolicy = iota
	// OverflowError rejects the line: nothing is written and the write fails
	// with a LAYOUT_OVERFLOW error.
	OverflowError
)

// String returns the policy name used in configuration
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowClamp:
		return "clamp"
	case OverflowError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy parses a configuration value
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(s) {
	case "clamp", "":
		return OverflowClamp, nil
	case "error", "fail":
		return OverflowError, nil
	default:
		return OverflowClamp, errors.Newf(errors.ErrConfigInvalid, "unknown overflow policy: %s", s).
			WithDetail("overflow", s)
	}
}
