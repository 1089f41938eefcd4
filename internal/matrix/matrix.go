package matrix

import (
	"fmt"
	"math/big"
	"strings"
)

// Matrix is a dense numRows x numCols grid of exact rationals, stored row-major.
// Rows are kept as separate slices so that SwapRows is a slice swap.
type Matrix struct {
	cells   [][]*big.Rat
	numRows int
	numCols int
}

// New creates a matrix from integer rows. All rows must have the same, non-zero
// length and there must be at least one row.
func New(rows [][]int64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("matrix.New: %d row(s): %w", len(rows), ErrBadShape)
	}
	numCols := len(rows[0])
	m := &Matrix{
		cells:   make([][]*big.Rat, len(rows)),
		numRows: len(rows),
		numCols: numCols,
	}
	for i, row := range rows {
		if len(row) != numCols {
			return nil, fmt.Errorf(
				"matrix.New: row %d has %d column(s), expected %d: %w",
				i, len(row), numCols, ErrRaggedRows,
			)
		}
		m.cells[i] = make([]*big.Rat, numCols)
		for j, v := range row {
			m.cells[i][j] = new(big.Rat).SetInt64(v)
		}
	}
	return m, nil
}

// NewZero returns a numRows x numCols matrix filled with 0.
func NewZero(numRows, numCols int) (*Matrix, error) {
	if numRows <= 0 || numCols <= 0 {
		return nil, fmt.Errorf("matrix.NewZero: %dx%d: %w", numRows, numCols, ErrBadShape)
	}
	rows := make([][]int64, numRows)
	for i := range rows {
		rows[i] = make([]int64, numCols)
	}
	return New(rows)
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.numRows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.numCols }

// At returns a copy of the value at (row, col).
func (m *Matrix) At(row, col int) (*big.Rat, error) {
	if err := m.check(row, col); err != nil {
		return nil, err
	}
	return new(big.Rat).Set(m.cells[row][col]), nil
}

// Set stores a copy of v at (row, col).
func (m *Matrix) Set(row, col int, v *big.Rat) error {
	if err := m.check(row, col); err != nil {
		return err
	}
	m.cells[row][col] = new(big.Rat).Set(v)
	return nil
}

// Row returns a copy of one row.
func (m *Matrix) Row(row int) ([]*big.Rat, error) {
	if err := m.check(row, 0); err != nil {
		return nil, err
	}
	out := make([]*big.Rat, m.numCols)
	for j, v := range m.cells[row] {
		out[j] = new(big.Rat).Set(v)
	}
	return out, nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		cells:   make([][]*big.Rat, m.numRows),
		numRows: m.numRows,
		numCols: m.numCols,
	}
	for i, row := range m.cells {
		c.cells[i] = make([]*big.Rat, m.numCols)
		for j, v := range row {
			c.cells[i][j] = new(big.Rat).Set(v)
		}
	}
	return c
}

// Equals reports whether both matrices have the same shape and values.
func (m *Matrix) Equals(other *Matrix) bool {
	if other == nil || m.numRows != other.numRows || m.numCols != other.numCols {
		return false
	}
	for i := range m.cells {
		for j := range m.cells[i] {
			if m.cells[i][j].Cmp(other.cells[i][j]) != 0 {
				return false
			}
		}
	}
	return true
}

// String renders the matrix one row per line with every value right-aligned
// in a five character field.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.cells {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%5s", v.RatString())
		}
	}
	return sb.String()
}

func (m *Matrix) check(row, col int) error {
	if row < 0 || row >= m.numRows || col < 0 || col >= m.numCols {
		return fmt.Errorf("matrix: (%d, %d) in %dx%d: %w", row, col, m.numRows, m.numCols, ErrOutOfRange)
	}
	return nil
}
