package text

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dictFS embed.FS

// tokenGroup is one dictionary entry: a set of surface forms mapping to
// a canonical token. Groups with regex=true hold a single pattern whose
// replacement may reference capture groups ($1).
type tokenGroup struct {
	Match     []string `yaml:"match"`
	Canonical string   `yaml:"canonical"`
	Type      string   `yaml:"type"`
	Regex     bool     `yaml:"regex"`
}

type dictFile struct {
	Tokens []tokenGroup `yaml:"tokens"`
}

// Languages lists the embedded dictionary languages.
func Languages() []string {
	entries, _ := dictFS.ReadDir("data")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(langs)
	return langs
}

func loadDict(language string) (*dictFile, error) {
	raw, err := dictFS.ReadFile("data/" + language + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown language %q (have %s)", language, strings.Join(Languages(), ", "))
	}

	var dict dictFile
	if err := yaml.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", language, err)
	}
	return &dict, nil
}

func parseTokenType(s string) (TokenType, error) {
	switch s {
	case "":
		return TokenNone, nil
	case "way":
		return TokenWay, nil
	case "cardinal":
		return TokenCardinal, nil
	case "determiner":
		return TokenDeterminer, nil
	case "number":
		return TokenNumber, nil
	default:
		return TokenNone, fmt.Errorf("unknown token type %q", s)
	}
}
