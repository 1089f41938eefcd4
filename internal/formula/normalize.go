package formula

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds typographic variants of formula text into the ASCII
// grammar: subscript and superscript digits, full-width letters and
// non-breaking spaces all map to their plain forms under NFKC. Tabs and line
// breaks become spaces.
//
// Normalize is opt-in. IsValid and the parsers only accept the plain grammar.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r', '\v', '\f':
			return ' '
		}
		return r
	}, s)
}
