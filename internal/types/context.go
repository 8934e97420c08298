package types

import (
	"strings"

	"github.com/street-conflate/internal/text"
)

// Context carries the per-run country, region and synonym tables. It is
// built once at pipeline entry, never mutated, and shared by reference.
type Context struct {
	Country string
	Region  string
	Tokens  *text.Tokens
}

// InputContext is the wire/config form of a Context.
type InputContext struct {
	Country   string   `json:"country" yaml:"country"`
	Region    string   `json:"region,omitempty" yaml:"region,omitempty"`
	Languages []string `json:"languages" yaml:"languages"`
}

// NewContext normalizes the codes to uppercase.
func NewContext(country, region string, tokens *text.Tokens) *Context {
	if tokens == nil {
		tokens = text.NewTokens(nil, nil)
	}
	return &Context{
		Country: strings.ToUpper(country),
		Region:  strings.ToUpper(region),
		Tokens:  tokens,
	}
}

// BuildContext generates the synonym tables for the configured
// languages. Unknown language codes fail here, before any feature is
// processed.
func BuildContext(input InputContext) (*Context, error) {
	tokens, err := text.Generate(input.Languages)
	if err != nil {
		return nil, err
	}
	return NewContext(input.Country, input.Region, tokens), nil
}

// RegionCode returns the ISO 3166-2 style code, e.g. US-WV.
func (c *Context) RegionCode() string {
	if c.Region == "" {
		return ""
	}
	return c.Country + "-" + c.Region
}

var regionNames = map[string]string{
	"US-AL": "Alabama", "US-AK": "Alaska", "US-AZ": "Arizona",
	"US-AR": "Arkansas", "US-CA": "California", "US-CO": "Colorado",
	"US-CT": "Connecticut", "US-DE": "Delaware", "US-FL": "Florida",
	"US-GA": "Georgia", "US-HI": "Hawaii", "US-ID": "Idaho",
	"US-IL": "Illinois", "US-IN": "Indiana", "US-IA": "Iowa",
	"US-KS": "Kansas", "US-KY": "Kentucky", "US-LA": "Louisiana",
	"US-ME": "Maine", "US-MD": "Maryland", "US-MA": "Massachusetts",
	"US-MI": "Michigan", "US-MN": "Minnesota", "US-MS": "Mississippi",
	"US-MO": "Missouri", "US-MT": "Montana", "US-NE": "Nebraska",
	"US-NV": "Nevada", "US-NH": "New Hampshire", "US-NJ": "New Jersey",
	"US-NM": "New Mexico", "US-NY": "New York", "US-NC": "North Carolina",
	"US-ND": "North Dakota", "US-OH": "Ohio", "US-OK": "Oklahoma",
	"US-OR": "Oregon", "US-PA": "Pennsylvania", "US-RI": "Rhode Island",
	"US-SC": "South Carolina", "US-SD": "South Dakota", "US-TN": "Tennessee",
	"US-TX": "Texas", "US-UT": "Utah", "US-VT": "Vermont",
	"US-VA": "Virginia", "US-WA": "Washington", "US-WV": "West Virginia",
	"US-WI": "Wisconsin", "US-WY": "Wyoming",
	"US-DC": "District of Columbia", "US-AS": "American Samoa",
	"US-GU": "Guam", "US-MP": "Northern Mariana Islands",
	"US-PR": "Puerto Rico", "US-UM": "United States Minor Outlying Islands",
	"US-VI": "Virgin Islands",
}

// RegionName resolves the human readable region name, empty when the
// code is unknown.
func (c *Context) RegionName() string {
	return regionNames[c.RegionCode()]
}
