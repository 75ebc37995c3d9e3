// Package guess evaluates free-text guesses against player names.
//
// Everything in this package is pure: the same input and the same target or
// roster always produce the same verdict.
package guess

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips diacritics and punctuation, and collapses
// whitespace. "  JOÃO  Vitor " and "joao vitor" normalize to the same string.
func Normalize(s string) string {
	// Transformers keep state, so the chain is built per call.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return ' '
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// Tokens splits a normalized string into words.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}
