// Package geo resolves free-text country names to ISO-3166 alpha-2
// codes for map-based rollups. Inputs come from candidate-supplied
// forms, so casing, whitespace and accents are all over the place.
package geo

import (
	"strings"
	"unicode"

	"github.com/biter777/countries"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases covers spellings the countries dictionary does not accept.
var aliases = map[string]string{
	"usa":            "US",
	"u.s.":           "US",
	"u.s.a.":         "US",
	"united states":  "US",
	"america":        "US",
	"uk":             "GB",
	"u.k.":           "GB",
	"england":        "GB",
	"great britain":  "GB",
	"uae":            "AE",
	"south korea":    "KR",
	"north korea":    "KP",
	"russia":         "RU",
	"ivory coast":    "CI",
	"cote d'ivoire":  "CI",
	"czech republic": "CZ",
	"holland":        "NL",
}

// Resolve maps a free-text country name to its alpha-2 code. The
// second return is false when the input cannot be resolved; callers
// treat that as a skip signal, never as an error.
func Resolve(name string) (string, bool) {
	cleaned := clean(name)
	if cleaned == "" {
		return "", false
	}
	if code, ok := aliases[cleaned]; ok {
		return code, true
	}
	c := countries.ByName(cleaned)
	if c == countries.Unknown {
		return "", false
	}
	return c.Alpha2(), true
}

// clean lowercases, trims and strips diacritics so "Perú " and "peru"
// hit the same dictionary entry.
func clean(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
