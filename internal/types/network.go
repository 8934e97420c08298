package types

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/street-conflate/internal/text"
)

// Network is a street-network segment feature.
type Network struct {
	ID     *int64
	Names  *Names
	Source string
	Props  map[string]interface{}
	Geom   orb.MultiLineString
}

// NetworkFromFeature validates and normalizes one GeoJSON network
// feature.
func NetworkFromFeature(feat *geojson.Feature, ctx *Context) (*Network, error) {
	if feat == nil || feat.Properties == nil {
		return nil, fmt.Errorf("feature has no properties")
	}

	var geom orb.MultiLineString
	switch g := feat.Geometry.(type) {
	case orb.LineString:
		geom = orb.MultiLineString{g}
	case orb.MultiLineString:
		geom = g
	default:
		return nil, fmt.Errorf("network must have (Multi)LineString geometry")
	}

	street, ok := feat.Properties["street"]
	if !ok {
		return nil, fmt.Errorf("street property required")
	}
	raw, err := json.Marshal(street)
	if err != nil {
		return nil, fmt.Errorf("street property: %w", err)
	}
	names, err := NamesFromValue(raw, SourceNetwork, ctx)
	if err != nil {
		return nil, err
	}
	if len(names.Names) == 0 {
		return nil, fmt.Errorf("feature has no valid non-whitespace name")
	}

	// several synonyms need one clear display winner
	if len(names.Names) > 1 && names.Names[0].Priority == names.Names[1].Priority {
		return nil, fmt.Errorf("1 network synonym must have greater priority")
	}

	for _, name := range names.Names {
		if text.IsDrivethrough(name.Display, ctx.Country) {
			return nil, fmt.Errorf("network is drivethrough like")
		}
	}

	return &Network{
		ID:     featureID(feat.ID),
		Names:  names,
		Source: propString(feat.Properties, "source"),
		Props:  residualProps(feat.Properties),
		Geom:   geom,
	}, nil
}
