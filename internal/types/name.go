package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/street-conflate/internal/text"
)

// Source records which feature class contributed a name synonym.
type Source string

const (
	SourceAddress   Source = "Address"
	SourceNetwork   Source = "Network"
	SourceGenerated Source = "Generated"
)

// Name is one street-name synonym with its canonical token sequence.
type Name struct {
	Display   string       `json:"display"`
	Priority  int          `json:"priority"`
	Source    Source       `json:"source,omitempty"`
	Tokenized []text.Token `json:"tokenized"`
	Freq      int64        `json:"freq"`
}

// NewName tokenizes the display text under the given context. Address
// sourced synonyms are deprioritized and generated synonyms boosted so
// network names win display ties.
func NewName(display string, priority int, source Source, ctx *Context) Name {
	switch source {
	case SourceAddress:
		priority--
	case SourceGenerated:
		priority++
	}

	return Name{
		Display:   strings.Join(strings.Fields(display), " "),
		Priority:  priority,
		Source:    source,
		Tokenized: ctx.Tokens.Process(display, ctx.Country),
		Freq:      1,
	}
}

// TokenizedString joins the canonical tokens with spaces.
func (n *Name) TokenizedString() string {
	return text.TokenizedString(n.Tokenized)
}

// TokenlessString joins only the unclassified tokens.
func (n *Name) TokenlessString() string {
	return text.TokenlessString(n.Tokenized)
}

// HasType reports whether any token carries the given type.
func (n *Name) HasType(tt text.TokenType) bool {
	for _, tk := range n.Tokenized {
		if tk.Type == tt {
			return true
		}
	}
	return false
}

// ContainsToken reports whether the canonical token string is present.
func (n *Name) ContainsToken(token string) bool {
	for _, tk := range n.Tokenized {
		if tk.Token == token {
			return true
		}
	}
	return false
}

// RemoveTypeString joins the tokens left after dropping every token of
// the given type.
func (n *Name) RemoveTypeString(tt text.TokenType) string {
	var b strings.Builder
	for _, tk := range n.Tokenized {
		if tk.Type == tt {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tk.Token)
	}
	return b.String()
}

// InputName is the upstream street property shape; other fields are
// dropped on decode. Richer records are decoded whole by NamesFromValue.
type InputName struct {
	Display  string `json:"display"`
	Priority int    `json:"priority"`
}

// Names is an ordered bag of name synonyms.
type Names struct {
	Names []Name `json:"names"`
}

// NewNames normalizes a freshly built list: empty synonyms are dropped,
// the list is priority ordered and tokenized duplicates removed.
func NewNames(names []Name) *Names {
	ns := &Names{Names: names}
	ns.Empty()
	ns.Sort()
	ns.Dedupe()
	return ns
}

// NamesFromValue accepts every upstream street shape: a plain string, a
// list of {display, priority} objects, or fully tokenized name records.
func NamesFromValue(value json.RawMessage, source Source, ctx *Context) (*Names, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("street property required")
	}

	var names []Name

	var display string
	if err := json.Unmarshal(value, &display); err == nil {
		if strings.TrimSpace(display) == "" {
			return nil, fmt.Errorf("street name may not be blank")
		}
		names = append(names, NewName(display, 0, source, ctx))
		return NewNames(names), nil
	}

	var full []Name
	if err := json.Unmarshal(value, &full); err == nil && len(full) > 0 && full[0].Tokenized != nil {
		for i := range full {
			if full[i].Freq == 0 {
				full[i].Freq = 1
			}
		}
		return NewNames(full), nil
	}

	var input []InputName
	if err := json.Unmarshal(value, &input); err != nil {
		return nil, fmt.Errorf("street property must be a string or a list of names: %w", err)
	}
	for _, in := range input {
		if strings.TrimSpace(in.Display) == "" {
			continue
		}
		names = append(names, NewName(in.Display, in.Priority, source, ctx))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("street name may not be blank")
	}
	return NewNames(names), nil
}

// Concat appends the other bag.
func (ns *Names) Concat(other *Names) {
	ns.Names = append(ns.Names, other.Names...)
}

// Empty drops entries whose tokenized sequence is empty.
func (ns *Names) Empty() {
	kept := ns.Names[:0]
	for _, name := range ns.Names {
		if len(name.Tokenized) > 0 {
			kept = append(kept, name)
		}
	}
	ns.Names = kept
}

// Sort orders by priority descending, display ascending on ties.
func (ns *Names) Sort() {
	sort.SliceStable(ns.Names, func(i, j int) bool {
		if ns.Names[i].Priority != ns.Names[j].Priority {
			return ns.Names[i].Priority > ns.Names[j].Priority
		}
		return ns.Names[i].Display < ns.Names[j].Display
	})
}

// Dedupe removes later entries whose tokenized sequence was already
// kept. Call after Sort so the highest priority synonym survives.
func (ns *Names) Dedupe() {
	seen := make(map[string]bool, len(ns.Names))
	kept := ns.Names[:0]
	for _, name := range ns.Names {
		key := name.TokenizedString()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, name)
	}
	ns.Names = kept
}

// HasDiff reports whether other carries a tokenized sequence absent
// from this bag.
func (ns *Names) HasDiff(other *Names) bool {
	have := make(map[string]bool, len(ns.Names))
	for _, name := range ns.Names {
		have[name.TokenizedString()] = true
	}
	for _, name := range other.Names {
		if !have[name.TokenizedString()] {
			return true
		}
	}
	return false
}
