package text

import (
	"regexp"

	"github.com/agnivade/levenshtein"
)

// Distance is the edit distance between two canonical strings.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

var (
	numbered = regexp.MustCompile(`^([0-9]+)(st|nd|rd|th)$`)
	routish  = regexp.MustCompile(`^(?:\w+ )?(?:highway|hwy|route|rt) ([0-9]+) ?\w*$`)

	drivethroughEN = regexp.MustCompile(`(?i)drive.?(in|through|thru)$`)
	drivethroughDE = regexp.MustCompile(`(?i)durchfahrt$`)
)

// IsNumbered reports the ordinal of a numbered street (1st, 11th, ...)
// when the first token carries one; empty otherwise.
func IsNumbered(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	m := numbered.FindStringSubmatch(tokens[0].Token)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsRoutish reports the route number of names like "rt 1" or
// "us route 50 east"; empty when the name is not route shaped.
func IsRoutish(tokens []Token) string {
	m := routish.FindStringSubmatch(TokenizedString(tokens))
	if m == nil {
		return ""
	}
	return m[1]
}

// IsDrivethrough flags names that describe a drive-through rather than
// a thoroughfare.
func IsDrivethrough(display, country string) bool {
	if country == "DE" && drivethroughDE.MatchString(display) {
		return true
	}
	return drivethroughEN.MatchString(display)
}
