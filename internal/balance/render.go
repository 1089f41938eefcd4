package balance

import (
	"math/big"
	"strings"

	"github.com/roach88/stoich/internal/formula"
)

// Render formats both sides of eq as "<coef> <molecule>" terms joined by
// " + ", with every coefficient multiplied by scale. It does no validation:
// coefs must hold one entry per molecule and scale should be positive.
func Render(eq *formula.Equation, coefs []*big.Int, scale int64) (reagents, products string) {
	n := len(eq.Reagents)
	return renderSide(eq.Reagents, coefs[:n], scale), renderSide(eq.Products, coefs[n:], scale)
}

func renderSide(ms []formula.Molecule, coefs []*big.Int, scale int64) string {
	k := big.NewInt(scale)
	terms := make([]string, len(ms))
	for i, m := range ms {
		c := new(big.Int).Mul(coefs[i], k)
		terms[i] = c.String() + " " + m.Text
	}
	return strings.Join(terms, " + ")
}

// Scale returns coefs multiplied by k as new values.
func Scale(coefs []*big.Int, k int64) []*big.Int {
	out := make([]*big.Int, len(coefs))
	mul := big.NewInt(k)
	for i, c := range coefs {
		out[i] = new(big.Int).Mul(c, mul)
	}
	return out
}
