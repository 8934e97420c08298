package search

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"github.com/xrash/smetrics"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks via NFD decomposition; ASCII-safe
// transliteration of anything left is handled by unaccent.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func unaccent(s string) string {
	return strings.ToLower(unidecode.Unidecode(stripMarks(s)))
}

// Similarity blends Jaro-Winkler with a normalized edit distance over
// unaccented lowercase forms; 1.0 is identical.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	a, b = unaccent(a), unaccent(b)

	jw := smetrics.JaroWinkler(a, b, 0.7, 4)

	den := len(a)
	if len(b) > den {
		den = len(b)
	}
	lev := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(den)

	return 0.7*jw + 0.3*lev
}
