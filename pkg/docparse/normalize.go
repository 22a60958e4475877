// Package docparse extracts vehicle and date information from the raw text of
// scanned fleet documents (CRLV, tachograph certificates, insurance policies,
// inspection reports). All functions are pure and never return errors: a text
// that yields nothing produces empty results, not failures.
package docparse

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text and strips diacritics so that patterns like
// "válido até" and "VALIDO ATE" match the same way.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
