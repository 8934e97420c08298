package conflate

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"

	"github.com/street-conflate/internal/text"
	"github.com/street-conflate/internal/types"
)

func testContext(t *testing.T) *types.Context {
	t.Helper()
	tokens, err := text.Generate([]string{"en"})
	if err != nil {
		t.Fatal(err)
	}
	return types.NewContext("us", "", tokens)
}

func addr(t *testing.T, ctx *types.Context, id int64, number string, displays ...string) *types.Address {
	t.Helper()
	names := make([]types.Name, 0, len(displays))
	for _, display := range displays {
		names = append(names, types.NewName(display, 0, types.SourceAddress, ctx))
	}
	a := &types.Address{
		Number:      number,
		Names:       types.NewNames(names),
		Output:      true,
		Interpolate: true,
		Props:       map[string]interface{}{},
		Geom:        orb.Point{0, 0},
	}
	if id > 0 {
		a.ID = &id
	}
	return a
}

func TestDecideCreate(t *testing.T) {
	ctx := testContext(t)

	incoming := addr(t, ctx, 0, "100", "Main Street")

	// nothing nearby
	action, result, err := Decide(incoming, nil)
	if err != nil {
		t.Fatal(err)
	}
	if action != ActionCreate || result != incoming {
		t.Errorf("action = %q", action)
	}

	// nearby but no name match
	action, _, err = Decide(incoming, []*types.Address{addr(t, ctx, 1, "100", "Elm Avenue")})
	if err != nil {
		t.Fatal(err)
	}
	if action != ActionCreate {
		t.Errorf("action = %q, want create", action)
	}
}

func TestDecideNoop(t *testing.T) {
	ctx := testContext(t)

	incoming := addr(t, ctx, 0, "100", "Main St")
	persistent := addr(t, ctx, 7, "100", "Main Street")

	action, result, err := Decide(incoming, []*types.Address{persistent})
	if err != nil {
		t.Fatal(err)
	}
	if action != ActionNone {
		t.Errorf("action = %q, want none", action)
	}
	if result != persistent {
		t.Error("noop should hand back the persistent record")
	}
}

func TestDecideModify(t *testing.T) {
	ctx := testContext(t)

	incoming := addr(t, ctx, 0, "100", "Main Street", "State Highway 1")
	persistent := addr(t, ctx, 7, "100", "Main Street")
	persistent.Version = 4

	action, result, err := Decide(incoming, []*types.Address{persistent})
	if err != nil {
		t.Fatal(err)
	}
	if action != ActionModify {
		t.Fatalf("action = %q, want modify", action)
	}
	if result.ID == nil || *result.ID != 7 || result.Version != 4 {
		t.Errorf("modify must keep the persistent id/version: %+v", result)
	}
	if len(result.Names.Names) != 2 {
		t.Errorf("names = %+v", result.Names.Names)
	}
}

func TestDecideStrict(t *testing.T) {
	ctx := testContext(t)

	// conflation matches in strict mode: a way-type change is a new
	// address, not a modification
	incoming := addr(t, ctx, 0, "100", "Main Street")
	persistent := addr(t, ctx, 7, "100", "Main Avenue")

	action, _, err := Decide(incoming, []*types.Address{persistent})
	if err != nil {
		t.Fatal(err)
	}
	if action != ActionCreate {
		t.Errorf("action = %q, want create", action)
	}
}

func TestFeatureOutput(t *testing.T) {
	ctx := testContext(t)

	a := addr(t, ctx, 9, "100", "Main Street")
	a.Version = 2
	a.Source = "city"
	a.Names.Names = append(a.Names.Names, types.NewName("Old Kings Road", 0, types.SourceGenerated, ctx))

	feat := Feature(a, ActionModify, false)
	raw, err := json.Marshal(feat)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["action"] != "modify" {
		t.Errorf("action = %v", decoded["action"])
	}
	if decoded["version"] != float64(2) {
		t.Errorf("version = %v", decoded["version"])
	}
	props := decoded["properties"].(map[string]interface{})
	street := props["street"].([]interface{})
	if len(street) != 1 {
		t.Errorf("generated synonyms must be filtered: %v", street)
	}
	if props["number"] != "100" || props["source"] != "city" {
		t.Errorf("props = %v", props)
	}
	geom := decoded["geometry"].(map[string]interface{})
	if geom["type"] != "Point" {
		t.Errorf("geometry = %v", geom)
	}

	created := Feature(a, ActionCreate, false)
	if created.Version != nil {
		t.Error("create features must not carry a version")
	}
	if created.Action != ActionCreate {
		t.Errorf("action = %q", created.Action)
	}
}
