package balance

import (
	"errors"
	"fmt"
)

// Kind categorizes a failed Solve.
type Kind string

const (
	// KindInvalidFormulaSyntax indicates a side does not match the formula grammar.
	KindInvalidFormulaSyntax Kind = "INVALID_FORMULA_SYNTAX"

	// KindUnbalancedElements indicates an element appears on only one side.
	KindUnbalancedElements Kind = "UNBALANCED_ELEMENTS"

	// KindNoSolution indicates the readout column was zero after reduction.
	KindNoSolution Kind = "NO_SOLUTION"

	// KindIndeterminate indicates a coefficient vector was read out but it
	// does not balance the equation, which happens when the system admits
	// more than one independent balancing.
	KindIndeterminate Kind = "INDETERMINATE"

	// KindInvalidScale indicates a scale factor below 1.
	KindInvalidScale Kind = "INVALID_SCALE"

	// KindInternal indicates a broken internal contract rather than bad input.
	KindInternal Kind = "INTERNAL"
)

// Error is the tagged failure returned by Solve.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// IsKind returns true if err is an *Error of kind k. Uses errors.As to handle
// wrapped errors.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
