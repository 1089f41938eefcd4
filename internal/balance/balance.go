// Package balance solves chemical equations for their minimal integer
// coefficients and renders the balanced result.
//
// Balance reduces the stoichiometry system (see package stoich) to RREF and
// reads the coefficients off the second-to-last column, the column of the
// final product molecule. That molecule is the free variable and is fixed at
// 1; every other coefficient is the magnitude of its row's entry in that
// column. Multiplying by the least common multiple of the denominators gives
// the minimal integer vector.
//
// The readout assumes a one-dimensional null space whose pivots sit on the
// diagonal. Only an all-zero readout column is detected as NoSolutionError by
// Balance; Solve additionally verifies conservation before answering.
package balance

import (
	"fmt"
	"math/big"

	"github.com/roach88/stoich/internal/formula"
	"github.com/roach88/stoich/internal/matrix"
	"github.com/roach88/stoich/internal/stoich"
)

// NoSolutionError reports an RREF whose readout column is zero in the first
// row, leaving nothing to scale against the free variable.
type NoSolutionError struct {
	Column int
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("impossible: readout column %d is zero after reduction", e.Column)
}

// Result is the outcome of Balance.
type Result struct {
	// System is the stoichiometry system. Its matrix has been reduced to RREF.
	System *stoich.System

	// Coefficients holds one positive integer per collected row plus the free
	// molecule's, in molecule order (reagents, then products).
	Coefficients []*big.Int
}

// Matrix returns the reduced matrix.
func (r *Result) Matrix() *matrix.Matrix { return r.System.Matrix }

// Balance builds, reduces and reads out the coefficient vector of eq.
func Balance(eq *formula.Equation) (*Result, error) {
	sys, err := stoich.Build(eq)
	if err != nil {
		return nil, err
	}

	sys.Matrix.ToRREF()

	coefs, err := readCoefficients(sys.Matrix)
	if err != nil {
		return nil, err
	}
	return &Result{System: sys, Coefficients: coefs}, nil
}

// readCoefficients collects |m[i][cols-2]| for rows until the first zero,
// appends 1 for the free variable and clears denominators.
func readCoefficients(m *matrix.Matrix) ([]*big.Int, error) {
	col := m.Cols() - 2
	if col < 0 {
		return nil, &NoSolutionError{Column: col}
	}

	var values []*big.Rat
	for i := 0; i < m.Rows(); i++ {
		v, err := m.At(i, col)
		if err != nil {
			return nil, err
		}
		if v.Sign() == 0 {
			break
		}
		values = append(values, v.Abs(v))
	}
	if len(values) == 0 {
		return nil, &NoSolutionError{Column: col}
	}
	values = append(values, big.NewRat(1, 1))

	lcm := LCMDenominators(values)
	scale := new(big.Rat).SetInt(lcm)

	coefs := make([]*big.Int, len(values))
	for i, v := range values {
		scaled := new(big.Rat).Mul(v, scale)
		// Every denominator divides lcm, so scaled is an integer.
		coefs[i] = new(big.Int).Set(scaled.Num())
	}
	return coefs, nil
}

// LCMDenominators returns the least common multiple of the denominators of
// values. The result is 1 for an empty slice.
func LCMDenominators(values []*big.Rat) *big.Int {
	lcm := big.NewInt(1)
	gcd := new(big.Int)
	for _, v := range values {
		d := v.Denom()
		gcd.GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, gcd))
	}
	return lcm
}

// Conserves reports whether coefs balance every element of eq. A vector whose
// length differs from the molecule count never conserves.
func Conserves(eq *formula.Equation, coefs []*big.Int) bool {
	if eq == nil || len(coefs) != len(eq.Reagents)+len(eq.Products) {
		return false
	}
	for _, symbol := range elements(eq) {
		left := sideTotal(eq.Reagents, coefs[:len(eq.Reagents)], symbol)
		right := sideTotal(eq.Products, coefs[len(eq.Reagents):], symbol)
		if left.Cmp(right) != 0 {
			return false
		}
	}
	return true
}

func sideTotal(ms []formula.Molecule, coefs []*big.Int, symbol string) *big.Int {
	total := new(big.Int)
	term := new(big.Int)
	for i, m := range ms {
		term.Mul(coefs[i], big.NewInt(m.Count(symbol)))
		total.Add(total, term)
	}
	return total
}

func elements(eq *formula.Equation) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range eq.Molecules() {
		for _, s := range m.Elements() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
