// Package formula parses chemical formula text into molecules and equations.
//
// A side of an equation is a list of molecules joined by '+'. A molecule is
// an optional multiplier followed by one or more element groups, and an
// element group is an uppercase letter, an optional lowercase letter and an
// optional atom count:
//
//	side     := molecule ('+' molecule)*
//	molecule := digit* group+
//	group    := [A-Z] [a-z]? digit*
//
// Spaces are tolerated anywhere and removed before matching. Multipliers are
// discarded: coefficients are what the balancer solves for.
package formula

import "strings"

// ElementCount is one element group of a molecule, e.g. "O3" in "Na2CO3".
type ElementCount struct {
	Symbol string `json:"symbol"`
	Count  int64  `json:"count"`
}

// Molecule is a parsed molecule. Groups keep source order, so a symbol can
// appear more than once (CH3COOH has two C groups).
type Molecule struct {
	// Text is the molecule as written, without spaces or multiplier.
	Text   string         `json:"text"`
	Groups []ElementCount `json:"groups"`
}

// Count returns the total number of atoms of symbol in the molecule.
func (m Molecule) Count(symbol string) int64 {
	var n int64
	for _, g := range m.Groups {
		if g.Symbol == symbol {
			n += g.Count
		}
	}
	return n
}

// Elements returns the distinct element symbols in first-appearance order.
func (m Molecule) Elements() []string {
	seen := make(map[string]bool, len(m.Groups))
	var out []string
	for _, g := range m.Groups {
		if !seen[g.Symbol] {
			seen[g.Symbol] = true
			out = append(out, g.Symbol)
		}
	}
	return out
}

func (m Molecule) String() string { return m.Text }

// Equation is an unbalanced chemical equation. Both sides are non-empty when
// produced by Parse or ParsePair.
type Equation struct {
	Reagents []Molecule `json:"reagents"`
	Products []Molecule `json:"products"`
}

// Molecules returns reagents followed by products.
func (e *Equation) Molecules() []Molecule {
	out := make([]Molecule, 0, len(e.Reagents)+len(e.Products))
	out = append(out, e.Reagents...)
	return append(out, e.Products...)
}

// String renders the equation with the canonical separator and no
// coefficients.
func (e *Equation) String() string {
	return joinMolecules(e.Reagents) + " " + Separator + " " + joinMolecules(e.Products)
}

func joinMolecules(ms []Molecule) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.Text
	}
	return strings.Join(parts, " + ")
}
