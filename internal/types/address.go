package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Address is a single address point feature.
type Address struct {
	ID          *int64
	Version     int64
	Number      string
	Names       *Names
	Source      string
	Output      bool
	Interpolate bool
	Props       map[string]interface{}
	Geom        orb.Point
}

// AddressFromFeature validates and normalizes one GeoJSON address
// feature. Errors reject the single feature, never the stream.
func AddressFromFeature(feat *geojson.Feature, ctx *Context) (*Address, error) {
	if feat == nil || feat.Properties == nil {
		return nil, fmt.Errorf("feature has no properties")
	}

	number, err := propNumber(feat.Properties)
	if err != nil {
		return nil, err
	}

	point, ok := feat.Geometry.(orb.Point)
	if !ok {
		return nil, fmt.Errorf("addresses must have Point geometry")
	}
	if point.Lon() < -180 || point.Lon() > 180 {
		return nil, fmt.Errorf("geometry exceeds +/-180deg coord bounds")
	}
	if point.Lat() < -85 || point.Lat() > 85 {
		return nil, fmt.Errorf("geometry exceeds +/-85deg coord bounds")
	}

	street, ok := feat.Properties["street"]
	if !ok {
		return nil, fmt.Errorf("street property required")
	}
	raw, err := json.Marshal(street)
	if err != nil {
		return nil, fmt.Errorf("street property: %w", err)
	}
	names, err := NamesFromValue(raw, SourceAddress, ctx)
	if err != nil {
		return nil, err
	}
	if len(names.Names) == 0 {
		return nil, fmt.Errorf("feature has no valid non-whitespace name")
	}

	addr := &Address{
		ID:          featureID(feat.ID),
		Version:     propInt(feat.Properties, "version", 0),
		Number:      number,
		Names:       names,
		Source:      propString(feat.Properties, "source"),
		Output:      propBool(feat.Properties, "output", true),
		Interpolate: propBool(feat.Properties, "interpolate", true),
		Props:       residualProps(feat.Properties),
		Geom:        point,
	}

	if err := addr.std(); err != nil {
		return nil, err
	}
	return addr, nil
}

var (
	halfSuffix = regexp.MustCompile(`\s1/2$`)
	unitSpace  = regexp.MustCompile(`^([0-9]+)\s([a-z])$`)

	supportedNumbers = []*regexp.Regexp{
		regexp.MustCompile(`^\d+[a-z]?$`),
		regexp.MustCompile(`^(\d+)-(\d+)[a-z]?$`),
		regexp.MustCompile(`^(\d+)([nsew])(\d+)[a-z]?$`),
		regexp.MustCompile(`^([nesw])(\d+)([nesw]\d+)?$`),
		regexp.MustCompile(`^\d+(к\d+)?(с\d+)?$`),
	}
)

// NormalizeNumber lowercases and normalizes an address number,
// rejecting unsupported formats.
func NormalizeNumber(number string) (string, error) {
	number = strings.ToLower(number)

	// 1/2 numbers are not supported; drop the suffix
	number = halfSuffix.ReplaceAllString(number, "")

	// '123 b' => '123b'
	number = unitSpace.ReplaceAllString(number, "$1$2")

	supported := false
	for _, re := range supportedNumbers {
		if re.MatchString(number) {
			supported = true
			break
		}
	}
	if !supported {
		return "", fmt.Errorf("number is not a supported address/unit type")
	}
	if len(number) > 10 {
		return "", fmt.Errorf("number should not exceed 10 chars")
	}
	return number, nil
}

func (a *Address) std() error {
	number, err := NormalizeNumber(a.Number)
	if err != nil {
		return err
	}
	a.Number = number
	return nil
}

func featureID(id interface{}) *int64 {
	switch v := id.(type) {
	case float64:
		n := int64(v)
		return &n
	case int64:
		return &v
	case int:
		n := int64(v)
		return &n
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return &n
		}
	}
	return nil
}

func propNumber(props map[string]interface{}) (string, error) {
	switch v := props["number"].(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", fmt.Errorf("number property required")
	default:
		return "", fmt.Errorf("number property must be string or numeric")
	}
}

func propString(props map[string]interface{}, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func propBool(props map[string]interface{}, key string, def bool) bool {
	if b, ok := props[key].(bool); ok {
		return b
	}
	return def
}

func propInt(props map[string]interface{}, key string, def int64) int64 {
	switch v := props[key].(type) {
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	}
	return def
}

// residualProps keeps the free-form property bag minus the fields
// lifted onto the struct.
func residualProps(props map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		switch k {
		case "number", "version", "output", "interpolate":
			continue
		}
		out[k] = v
	}
	return out
}
