package types

import (
	"testing"

	"github.com/paulmach/orb/geojson"
)

func TestNetworkFromFeature(t *testing.T) {
	ctx := testContext(t)

	raw := []byte(`{
		"type": "Feature",
		"properties": {
			"id": 6052094,
			"street": [{"display": "Poremba Court Southwest", "priority": 0}]
		},
		"geometry": {
			"type": "LineString",
			"coordinates": [[-77.008941, 38.859243], [-77.008447, 38.859], [-77.0081173, 38.8588497]]
		}
	}`)
	feat, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		t.Fatal(err)
	}

	net, err := NetworkFromFeature(feat, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(net.Geom) != 1 || len(net.Geom[0]) != 3 {
		t.Errorf("geom = %+v", net.Geom)
	}
	name := net.Names.Names[0]
	if name.Source != SourceNetwork || name.Priority != 0 {
		t.Errorf("name = %+v", name)
	}
	if got := name.TokenizedString(); got != "poremba ct sw" {
		t.Errorf("tokenized = %q", got)
	}
}

func TestNetworkPriorityTie(t *testing.T) {
	ctx := testContext(t)

	raw := []byte(`{
		"type": "Feature",
		"properties": {
			"street": [{"display": "Main St", "priority": -1}, {"display": "E Main St", "priority": -1}]
		},
		"geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}
	}`)
	feat, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NetworkFromFeature(feat, ctx); err == nil {
		t.Error("tied synonym priorities must be rejected")
	}
}

func TestNetworkDrivethrough(t *testing.T) {
	ctx := testContext(t)

	raw := []byte(`{
		"type": "Feature",
		"properties": {"street": "Burger Drive Thru"},
		"geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}
	}`)
	feat, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NetworkFromFeature(feat, ctx); err == nil {
		t.Error("drivethrough names must be rejected")
	}
}

func TestNetworkGeometry(t *testing.T) {
	ctx := testContext(t)

	raw := []byte(`{
		"type": "Feature",
		"properties": {"street": "Main St"},
		"geometry": {"type": "Point", "coordinates": [0, 0]}
	}`)
	feat, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NetworkFromFeature(feat, ctx); err == nil {
		t.Error("point geometry must be rejected for networks")
	}
}
