// Package linker decides whether two sets of street-name synonyms refer
// to the same thoroughfare.
//
// Geometric proximity must be determined by the caller; candidates are
// expected in most-proximal-first order. Strict mode refuses matches
// across differing Cardinal or Way tokens (North Main St never matches
// South Main St, Main St never matches Main Av). Default mode keeps the
// Cardinal refusal but allows a cardinaled primary to match a proximal
// non-cardinaled candidate exactly.
package linker

import (
	"fmt"
	"math"

	"github.com/street-conflate/internal/text"
	"github.com/street-conflate/internal/types"
)

// Link pairs a candidate id with its name set for one linker call.
type Link struct {
	ID       int64
	MaxScore float64
	Names    *types.Names
}

// NewLink builds a Link with a zero running score.
func NewLink(id int64, names *types.Names) Link {
	return Link{ID: id, Names: names}
}

// Result is the winning candidate id and its score in (70, 100].
type Result struct {
	ID    int64
	Score float64
}

// Match compares the primary against every candidate name pair and
// returns the best candidate above the 70 threshold, or nil.
//
// Candidate ids must be distinct; id 0 is reserved for the primary.
func Match(primary Link, potentials []Link, strict bool) (*Result, error) {
	seen := make(map[int64]bool, len(potentials))
	for _, potential := range potentials {
		if potential.ID == 0 {
			return nil, fmt.Errorf("candidate id 0 is reserved for the primary")
		}
		if seen[potential.ID] {
			return nil, fmt.Errorf("duplicate candidate id %d", potential.ID)
		}
		seen[potential.ID] = true
	}

	for _, name := range primary.Names.Names {
		tokenized := name.TokenizedString()
		tokenless := name.TokenlessString()

		for pi := range potentials {
			potential := &potentials[pi]

			for _, potentialName := range potential.Names.Names {
				// exact matches always win, before any proximity
				// ordered short circuit
				potentialTokenized := potentialName.TokenizedString()
				if tokenized == potentialTokenized {
					return &Result{ID: potential.ID, Score: 100.0}, nil
				}

				potentialTokenless := potentialName.TokenlessString()

				if skip := gateTypes(&name, &potentialName, strict); skip {
					continue
				}

				if !strict &&
					name.HasType(text.TokenCardinal) &&
					!potentialName.HasType(text.TokenCardinal) &&
					name.RemoveTypeString(text.TokenCardinal) == potentialTokenized {
					// N Main St matches a proximal plain Main St exactly
					return &Result{ID: potential.ID, Score: 100.0}, nil
				}

				// 1st never matches 11th, rt 1 never matches rt 2
				if numbered := text.IsNumbered(name.Tokenized); numbered != text.IsNumbered(potentialName.Tokenized) && numbered != "" {
					continue
				}
				if routish := text.IsRoutish(name.Tokenized); routish != text.IsRoutish(potentialName.Tokenized) && routish != "" {
					continue
				}

				dist := pairDistance(&name, &potentialName, tokenized, tokenless, potentialTokenized, potentialTokenless)

				score := 100.0 - ((2.0*dist)/float64(len(potentialTokenized)+len(tokenized)))*100.0

				// abbreviation tolerant subset matches override scores
				// just below the threshold (ntra => nuestra)
				if score <= 70.0 &&
					len(tokenized) >= 2 && len(potentialTokenized) >= 2 &&
					len(potentialTokenless) >= 1 &&
					subsetMatch(name.Tokenized, potentialName.Tokenized) {
					score = 70.01
				}

				if score > potential.MaxScore {
					potential.MaxScore = score
				}
			}
		}
	}

	var best *Link
	for pi := range potentials {
		if best == nil || potentials[pi].MaxScore > best.MaxScore {
			best = &potentials[pi]
		}
	}
	if best == nil || best.MaxScore <= 70.0 {
		return nil, nil
	}
	return &Result{ID: best.ID, Score: math.Round(best.MaxScore*100) / 100}, nil
}

// gateTypes reports whether a name pair must be skipped because of
// conflicting classified tokens. The Cardinal gate applies in both
// modes; the Way gate only under strict.
func gateTypes(name, potential *types.Name, strict bool) bool {
	for _, tk := range name.Tokenized {
		switch tk.Type {
		case text.TokenCardinal:
			if potential.HasType(text.TokenCardinal) && !potential.ContainsToken(tk.Token) {
				return true
			}
		case text.TokenWay:
			if strict && potential.HasType(text.TokenWay) && !potential.ContainsToken(tk.Token) {
				return true
			}
		}
	}
	return false
}

// pairDistance weights the edit distance toward the tokenless forms
// when both sides have one; with neither, a token bag overlap stands in
// for names that are all classified tokens.
func pairDistance(name, potentialName *types.Name, tokenized, tokenless, potentialTokenized, potentialTokenless string) float64 {
	switch {
	case len(tokenless) > 0 && len(potentialTokenless) > 0:
		return 0.25*float64(text.Distance(tokenized, potentialTokenized)) +
			0.75*float64(text.Distance(tokenless, potentialTokenless))
	case len(tokenless) > 0 || len(potentialTokenless) > 0:
		return float64(text.Distance(tokenized, potentialTokenized))
	}

	ntoks := tokenStrings(potentialName.Tokenized)
	ntoksLen := float64(len(ntoks))

	// duplicated tokens must each consume a unique counterpart:
	// saint street => st st does not overlap main st twice
	match := 0
	for _, atok := range tokenStrings(name.Tokenized) {
		for i, ntok := range ntoks {
			if ntok == atok {
				ntoks = append(ntoks[:i], ntoks[i+1:]...)
				match++
				break
			}
		}
	}

	if overlap := float64(match) / ntoksLen; overlap > 0.66 {
		return overlap
	}
	return float64(text.Distance(tokenized, potentialTokenized))
}

func tokenStrings(tokens []text.Token) []string {
	out := make([]string, len(tokens))
	for i, tk := range tokens {
		out[i] = tk.Token
	}
	return out
}

// subsetMatch checks every token of the smaller list against the
// larger: an exact hit consumes the matched token, otherwise an
// in-order character subsequence sharing a first letter may consume the
// larger list through its position.
func subsetMatch(a, b []text.Token) bool {
	atoks := tokenStrings(a)
	btoks := tokenStrings(b)
	if len(btoks) > len(atoks) {
		return checkSubstring(atoks, btoks)
	}
	return checkSubstring(btoks, atoks)
}

func checkSubstring(smaller, larger []string) bool {
	for _, word := range smaller {
		found := false
		for i, candidate := range larger {
			if candidate == word {
				larger = append(larger[:i], larger[i+1:]...)
				found = true
				break
			}
		}
		if found || len(larger) == 0 {
			continue
		}

		matched, remaining := isAbbrev(word, larger)
		if !matched {
			return false
		}
		larger = remaining
	}
	return true
}

// isAbbrev scans the list for a token sharing the word's first
// character where one of the two is an in-order character subsequence
// of the other; on a hit the list is consumed through that position.
func isAbbrev(word string, list []string) (bool, []string) {
	wr := []rune(word)
	for i, candidate := range list {
		cr := []rune(candidate)
		if len(wr) == 0 || len(cr) == 0 || wr[0] != cr[0] {
			continue
		}
		if patternMatch(cr, wr) || patternMatch(wr, cr) {
			return true, list[i+1:]
		}
	}
	return false, list
}

// patternMatch reports whether pattern's characters appear in order
// within full; ie. "ntra" within "nuestra".
func patternMatch(pattern, full []rune) bool {
	fi := 0
outer:
	for _, p := range pattern {
		for fi < len(full) {
			f := full[fi]
			fi++
			if f == p {
				continue outer
			}
		}
		return false
	}
	return true
}
