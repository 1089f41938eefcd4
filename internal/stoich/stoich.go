// Package stoich builds the element-conservation linear system of a chemical
// equation.
//
// Each distinct element contributes one row. Reagent molecules contribute
// their atom counts, product molecules the negated counts, and a trailing
// constant column is always zero because the system is homogeneous:
//
//	sum(reagent coef * atoms) - sum(product coef * atoms) = 0
package stoich

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/stoich/internal/formula"
	"github.com/roach88/stoich/internal/matrix"
)

// System is the stoichiometry matrix together with its row and column layout.
type System struct {
	// Matrix has one row per element and Reagents+Products+1 columns.
	Matrix *matrix.Matrix

	// Elements names each matrix row, in first-discovery order over the
	// reagent molecules.
	Elements []string

	// Reagents and Products are the molecule counts of each side.
	Reagents int
	Products int
}

// UnbalancedElementsError reports elements that occur on only one side.
type UnbalancedElementsError struct {
	// ReagentsOnly lists elements found among reagents but not products.
	ReagentsOnly []string

	// ProductsOnly lists elements found among products but not reagents.
	ProductsOnly []string
}

func (e *UnbalancedElementsError) Error() string {
	var parts []string
	if len(e.ReagentsOnly) > 0 {
		parts = append(parts, "only in reagents: "+strings.Join(e.ReagentsOnly, ", "))
	}
	if len(e.ProductsOnly) > 0 {
		parts = append(parts, "only in products: "+strings.Join(e.ProductsOnly, ", "))
	}
	return "element exists on only one side (" + strings.Join(parts, "; ") + ")"
}

// IsUnbalancedElements returns true if err is or wraps an
// *UnbalancedElementsError.
func IsUnbalancedElements(err error) bool {
	var ue *UnbalancedElementsError
	return errors.As(err, &ue)
}

// Build creates the linear system for eq. The element sets of both sides are
// compared before any matrix is allocated.
func Build(eq *formula.Equation) (*System, error) {
	if eq == nil || len(eq.Reagents) == 0 || len(eq.Products) == 0 {
		return nil, fmt.Errorf("stoich.Build: equation must have reagents and products")
	}

	reagentOrder, reagentRows := sideCounts(eq.Reagents)
	productOrder, productRows := sideCounts(eq.Products)

	if err := checkElements(reagentOrder, reagentRows, productOrder, productRows); err != nil {
		return nil, err
	}

	numCols := len(eq.Reagents) + len(eq.Products) + 1
	rows := make([][]int64, 0, len(reagentOrder))
	for _, symbol := range reagentOrder {
		row := make([]int64, 0, numCols)
		row = append(row, reagentRows[symbol]...)
		for _, n := range productRows[symbol] {
			row = append(row, -n)
		}
		row = append(row, 0)
		rows = append(rows, row)
	}

	m, err := matrix.New(rows)
	if err != nil {
		return nil, fmt.Errorf("stoich.Build: %w", err)
	}

	return &System{
		Matrix:   m,
		Elements: reagentOrder,
		Reagents: len(eq.Reagents),
		Products: len(eq.Products),
	}, nil
}

// sideCounts tallies, for every element on one side, its atom count in each
// molecule. order records first discovery.
func sideCounts(molecules []formula.Molecule) (order []string, counts map[string][]int64) {
	counts = make(map[string][]int64)
	for i, m := range molecules {
		for _, g := range m.Groups {
			if _, ok := counts[g.Symbol]; !ok {
				counts[g.Symbol] = make([]int64, len(molecules))
				order = append(order, g.Symbol)
			}
			counts[g.Symbol][i] += g.Count
		}
	}
	return order, counts
}

func checkElements(rOrder []string, rCounts map[string][]int64, pOrder []string, pCounts map[string][]int64) error {
	uerr := &UnbalancedElementsError{}
	for _, s := range rOrder {
		if _, ok := pCounts[s]; !ok {
			uerr.ReagentsOnly = append(uerr.ReagentsOnly, s)
		}
	}
	for _, s := range pOrder {
		if _, ok := rCounts[s]; !ok {
			uerr.ProductsOnly = append(uerr.ProductsOnly, s)
		}
	}
	if len(uerr.ReagentsOnly) == 0 && len(uerr.ProductsOnly) == 0 {
		return nil
	}
	sort.Strings(uerr.ReagentsOnly)
	sort.Strings(uerr.ProductsOnly)
	return uerr
}
