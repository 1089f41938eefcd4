package matrix

import "errors"

// Every message is prefixed with "matrix:" so it can be grepped in logs.
// Callers match these with errors.Is.
var (
	// ErrBadShape is returned when a matrix would have no rows or no columns.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrRaggedRows is returned when input rows differ in length.
	ErrRaggedRows = errors.New("matrix: rows have different lengths")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrZeroDivisor is returned by DivRow when the chosen entry is zero.
	ErrZeroDivisor = errors.New("matrix: division by zero entry")
)
