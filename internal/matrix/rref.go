package matrix

import "math/big"

// ToRREF reduces m to Reduced Row Echelon Form in place.
//
// For each diagonal index i the row holding the first strictly positive entry
// of column i (searching from row i down) is scaled so the entry becomes 1 and
// moved to row i. If the scan passed over a negative diagonal cell, row i is
// negated before the swap. Every other row is then cleared in column i.
// Columns with no positive candidate keep no pivot. Diagonal indices beyond the
// last column are skipped.
func (m *Matrix) ToRREF() {
	for i := 0; i < m.numRows && i < m.numCols; i++ {
		m.one(i)
		m.zero(i)
	}
	m.canonicalZeros()
}

// one makes (target, target) a unit pivot when column target has a positive
// entry at or below the diagonal. The sign flip applies to the target row,
// not the candidate, and decides the signs the readout column ends up with.
func (m *Matrix) one(target int) {
	row, col := target, target
	for i := row; i < m.numRows; i++ {
		if m.cells[i][col].Sign() <= 0 {
			continue
		}
		m.divRow(i, col)
		if m.cells[row][col].Sign() < 0 {
			m.negateRow(row)
		}
		if i != row {
			m.swapRows(i, row)
		}
		return
	}
}

// zero clears column target in every row except target. A zero diagonal cell
// means the column has no pivot and is left alone.
func (m *Matrix) zero(target int) {
	row, col := target, target
	pivot := m.cells[row][col]
	if pivot.Sign() == 0 {
		return
	}
	for i := 0; i < m.numRows; i++ {
		if i == row || m.cells[i][col].Sign() == 0 {
			continue
		}
		factor := new(big.Rat).Quo(m.cells[i][col], pivot)
		m.subRows(i, row, factor)
	}
}

// canonicalZeros replaces every zero cell with a fresh 0/1 value so that zero
// has a single representation no matter which operations produced it.
func (m *Matrix) canonicalZeros() {
	for _, row := range m.cells {
		for j, v := range row {
			if v.Sign() == 0 {
				row[j] = new(big.Rat)
			}
		}
	}
}

// DivRow divides the entries of row from col onward by the entry at
// (row, col). Entries left of col are untouched.
func (m *Matrix) DivRow(row, col int) error {
	if err := m.check(row, col); err != nil {
		return err
	}
	if m.cells[row][col].Sign() == 0 {
		return ErrZeroDivisor
	}
	m.divRow(row, col)
	return nil
}

// NegateRow flips the sign of every entry of row.
func (m *Matrix) NegateRow(row int) error {
	if err := m.check(row, 0); err != nil {
		return err
	}
	m.negateRow(row)
	return nil
}

// SwapRows exchanges rows a and b.
func (m *Matrix) SwapRows(a, b int) error {
	if err := m.check(a, 0); err != nil {
		return err
	}
	if err := m.check(b, 0); err != nil {
		return err
	}
	m.swapRows(a, b)
	return nil
}

// SubRows subtracts factor times row b from row a.
func (m *Matrix) SubRows(a, b int, factor *big.Rat) error {
	if err := m.check(a, 0); err != nil {
		return err
	}
	if err := m.check(b, 0); err != nil {
		return err
	}
	m.subRows(a, b, factor)
	return nil
}

func (m *Matrix) divRow(row, col int) {
	inv := new(big.Rat).Inv(m.cells[row][col])
	for j := col; j < m.numCols; j++ {
		m.cells[row][j] = new(big.Rat).Mul(m.cells[row][j], inv)
	}
}

func (m *Matrix) negateRow(row int) {
	for j, v := range m.cells[row] {
		m.cells[row][j] = new(big.Rat).Neg(v)
	}
}

func (m *Matrix) swapRows(a, b int) {
	m.cells[a], m.cells[b] = m.cells[b], m.cells[a]
}

func (m *Matrix) subRows(a, b int, factor *big.Rat) {
	f := new(big.Rat).Set(factor)
	tmp := new(big.Rat)
	for j := range m.cells[a] {
		tmp.Mul(f, m.cells[b][j])
		m.cells[a][j] = new(big.Rat).Sub(m.cells[a][j], tmp)
	}
}
