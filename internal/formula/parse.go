package formula

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Separator is the canonical token between the two sides of a combined
// equation string.
const Separator = ">>>"

// Separators lists every token accepted between sides, in lookup order.
var Separators = []string{Separator, "->", "→", "="}

var (
	moleculePattern = `\d*(?:[A-Z][a-z]?\d*)+`
	sideRegex       = regexp.MustCompile(`^` + moleculePattern + `(?:\+` + moleculePattern + `)*$`)
	groupRegex      = regexp.MustCompile(`([A-Z][a-z]?)(\d*)`)
)

// IsValid reports whether side matches the formula grammar once spaces are
// removed.
func IsValid(side string) bool {
	return sideRegex.MatchString(stripSpaces(side))
}

// Parse parses a combined equation "reagents >>> products". Any token in
// Separators is accepted, but exactly one separator must be present.
func Parse(formula string) (*Equation, error) {
	reagents, products, err := Split(formula)
	if err != nil {
		return nil, err
	}
	return ParsePair(reagents, products)
}

// Split cuts a combined equation at its separator without parsing either
// side. The first token in Separators that occurs is used, and it must occur
// exactly once.
func Split(formula string) (reagents, products string, err error) {
	for _, sep := range Separators {
		n := strings.Count(formula, sep)
		if n == 0 {
			continue
		}
		if n > 1 {
			return "", "", &SyntaxError{
				Side:   SideEquation,
				Input:  formula,
				Reason: fmt.Sprintf("separator %q appears %d times", sep, n),
			}
		}
		reagents, products, _ = strings.Cut(formula, sep)
		return reagents, products, nil
	}
	return "", "", &SyntaxError{
		Side:   SideEquation,
		Input:  formula,
		Reason: fmt.Sprintf("missing separator (one of %s)", strings.Join(Separators, " ")),
	}
}

// ParsePair parses pre-split reagent and product sides.
func ParsePair(reagents, products string) (*Equation, error) {
	r, err := parseSide(SideReagents, reagents)
	if err != nil {
		return nil, err
	}
	p, err := parseSide(SideProducts, products)
	if err != nil {
		return nil, err
	}
	return &Equation{Reagents: r, Products: p}, nil
}

// ParseSide parses one side of an equation into molecules.
func ParseSide(side string) ([]Molecule, error) {
	return parseSide(SideReagents, side)
}

func parseSide(name, side string) ([]Molecule, error) {
	compact := stripSpaces(side)
	if !sideRegex.MatchString(compact) {
		return nil, &SyntaxError{Side: name, Input: side}
	}

	parts := strings.Split(compact, "+")
	molecules := make([]Molecule, 0, len(parts))
	for _, part := range parts {
		m, err := parseMolecule(part)
		if err != nil {
			return nil, &SyntaxError{Side: name, Input: side, Reason: err.Error()}
		}
		molecules = append(molecules, m)
	}
	return molecules, nil
}

// parseMolecule parses one grammar-checked molecule. The leading multiplier is
// dropped. The total count of each element must fit in an int64.
func parseMolecule(text string) (Molecule, error) {
	text = strings.TrimLeftFunc(text, unicode.IsDigit)
	m := Molecule{Text: text}
	totals := make(map[string]int64)
	for _, match := range groupRegex.FindAllStringSubmatch(text, -1) {
		count := int64(1)
		if match[2] != "" {
			n, err := strconv.ParseInt(match[2], 10, 64)
			if err != nil {
				return Molecule{}, fmt.Errorf("atom count %q of %s: %w", match[2], match[1], err)
			}
			count = n
		}
		if count > math.MaxInt64-totals[match[1]] {
			return Molecule{}, fmt.Errorf("atom count of %s overflows", match[1])
		}
		totals[match[1]] += count
		m.Groups = append(m.Groups, ElementCount{Symbol: match[1], Count: count})
	}
	return m, nil
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
