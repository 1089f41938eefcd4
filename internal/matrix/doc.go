// Package matrix provides an exact rational matrix and its reduction to
// Reduced Row Echelon Form (RREF).
//
// Every cell is a *big.Rat, so arithmetic never leaves the rationals and
// math/big keeps each fraction in lowest terms after every operation.
//
// # Pivot rule
//
// ToRREF walks the diagonal. For diagonal index i it looks in column i, from
// row i downward, for the first strictly positive entry. Negative entries are
// never chosen as pivots. A column with no positive entry keeps no pivot and
// elimination for that index only runs if the diagonal cell happens to be
// non-zero. The sign behaviour this produces is what lets callers read a
// null-space vector directly off the second-to-last column.
//
// Matrices are mutable and not safe for concurrent use. Each caller owns its
// own instance.
package matrix
