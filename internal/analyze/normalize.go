package analyze

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, so that
// "diagnóstico" becomes "diagnostico" and "ñ" becomes "n".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims, strips accent marks and question/exclamation
// punctuation, and collapses repeated whitespace to single spaces.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case '¿', '¡', '?', '!':
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
