package formula

import (
	"errors"
	"fmt"
)

// Side names used in errors.
const (
	SideReagents = "reagents"
	SideProducts = "products"
	SideEquation = "equation"
)

// SyntaxError reports text that does not match the formula grammar.
type SyntaxError struct {
	// Side is SideReagents, SideProducts or SideEquation.
	Side string

	// Input is the offending text as given.
	Input string

	// Reason is a short human-readable cause.
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s formula %q: %s", e.Side, e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid %s formula %q", e.Side, e.Input)
}

// IsSyntaxError returns true if err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
