package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	wordBoundary = regexp.MustCompile("[\\s\\x{2000}-\\x{206F}\\x{2E00}-\\x{2E7F}\\\\!#$%&()\"*+,\\-./:;<=>?@\\[\\]^_{|}~]+")

	cardinalAbbrev = regexp.MustCompile(`(?i)(.*\s)?(n\.w\.|nw|n\.e\.|ne|s\.w\.|sw|s\.e\.|se)(\s.*)?$`)
)

// English words kept lowercase inside a title.
var minorEN = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true,
	"but": true, "by": true, "en": true, "for": true, "from": true,
	"how": true, "if": true, "in": true, "neither": true, "nor": true,
	"of": true, "on": true, "only": true, "onto": true, "out": true,
	"or": true, "per": true, "so": true, "than": true, "that": true,
	"the": true, "to": true, "until": true, "up": true, "upon": true,
	"v": true, "v.": true, "versus": true, "vs": true, "vs.": true,
	"via": true, "when": true, "with": true, "without": true, "yet": true,
}

var upperEN = map[string]string{"us": "US", "dc": "DC"}

var minorDE = map[string]bool{"du": true}

// Titlecase renders display text with locale aware casing rules.
func Titlecase(text, country string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = spaceRun.ReplaceAllString(text, " ")

	var out strings.Builder
	first := true
	for len(text) > 0 {
		loc := wordBoundary.FindStringIndex(text)
		if loc == nil {
			out.WriteString(capitalize(text, country, first))
			break
		}
		word := text[:loc[0]]
		out.WriteString(capitalize(word, country, first))
		out.WriteString(text[loc[0]:loc[1]])
		text = text[loc[1]:]
		if word != "" {
			first = false
		}
	}

	result := out.String()
	if country == "US" || country == "CA" {
		result = normalizeCardinals(result)
	}
	return result
}

func capitalize(word, country string, first bool) string {
	if word == "" {
		return word
	}
	if !first {
		switch country {
		case "US", "CA":
			if minorEN[word] {
				return word
			}
			if up, ok := upperEN[word]; ok {
				return up
			}
		case "DE":
			if minorDE[word] {
				return word
			}
		}
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}

// normalizeCardinals uppercases a trailing-style compass abbreviation
// and strips its periods: "main st ne" -> "Main St NE".
func normalizeCardinals(text string) string {
	m := cardinalAbbrev.FindStringSubmatchIndex(text)
	if m == nil {
		return text
	}
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}
	cardinal := strings.ReplaceAll(strings.ToUpper(group(2)), ".", "")
	return group(1) + cardinal + group(3)
}
