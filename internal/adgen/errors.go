package adgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a caller-supplied value the generator
// cannot accept.
type InvalidArgumentError struct {
	Arg       string
	Value     string
	Reason    string
	Supported []string
}

func (e *InvalidArgumentError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s", e.Arg)
	if e.Value != "" {
		fmt.Fprintf(&sb, " %q", e.Value)
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if len(e.Supported) > 0 {
		sb.WriteString(": supported values: ")
		sb.WriteString(strings.Join(e.Supported, ", "))
	}
	return sb.String()
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

func unsupportedAdType(s string) error {
	return &InvalidArgumentError{
		Arg:       "ad_type",
		Value:     s,
		Reason:    "unsupported ad type",
		Supported: adTypeNames(),
	}
}
