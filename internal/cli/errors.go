package cli

import (
	"github.com/roach88/stoich/internal/balance"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeBadArgs     = "E002" // Invalid arguments or flags
	ErrCodeLoadFailed  = "E004" // Batch file failed to load
	ErrCodeNotFound    = "E005" // Path or record not found
	ErrCodeStoreFailed = "E007" // History database error

	// Balancing errors
	ErrCodeFormulaSyntax      = "E101" // Side does not match the grammar
	ErrCodeUnbalancedElements = "E102" // Element on one side only
	ErrCodeNoSolution         = "E103" // Readout column is zero
	ErrCodeIndeterminate      = "E104" // Readout does not conserve elements
	ErrCodeInvalidScale       = "E105" // Factor below 1
	ErrCodeInternal           = "E199" // Broken internal contract

	// Batch errors
	ErrCodeBatchFailed = "E201" // One or more cases did not pass
)

// MapKindToErrorCode maps a balance failure kind to an error code.
func MapKindToErrorCode(kind balance.Kind) string {
	switch kind {
	case balance.KindInvalidFormulaSyntax:
		return ErrCodeFormulaSyntax
	case balance.KindUnbalancedElements:
		return ErrCodeUnbalancedElements
	case balance.KindNoSolution:
		return ErrCodeNoSolution
	case balance.KindIndeterminate:
		return ErrCodeIndeterminate
	case balance.KindInvalidScale:
		return ErrCodeInvalidScale
	case balance.KindInternal:
		return ErrCodeInternal
	default:
		return ErrCodeGeneric
	}
}
