package consensus

import (
	"context"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/street-conflate/internal/stream"
	"github.com/street-conflate/internal/text"
	"github.com/street-conflate/internal/types"
)

type fakeStore struct {
	bySource map[string][]*types.Address
}

func (f *fakeStore) NearbyAddresses(_ context.Context, number string, _ orb.Point, _ float64, source string) ([]*types.Address, error) {
	var out []*types.Address
	for _, a := range f.bySource[source] {
		if a.Number == number {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestConsensusRun(t *testing.T) {
	tokens, err := text.Generate([]string{"en"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := types.NewContext("us", "", tokens)

	mk := func(id int64, number, display string, lon, lat float64) *types.Address {
		return &types.Address{
			ID:     &id,
			Number: number,
			Names:  types.NewNames([]types.Name{types.NewName(display, 0, types.SourceAddress, ctx)}),
			Geom:   orb.Point{lon, lat},
			Props:  map[string]interface{}{},
		}
	}

	store := &fakeStore{bySource: map[string][]*types.Address{
		// a and b agree within meters, c is ~500m off, d has no match
		"a": {mk(1, "100", "Main Street", -77.00000, 38.90000)},
		"b": {mk(2, "100", "Main St", -77.00001, 38.90001)},
		"c": {mk(3, "100", "Main Street", -77.00500, 38.90200)},
		"d": {mk(4, "100", "Elm Avenue", -77.00002, 38.90002)},
	}}

	testSet := stream.NewAddrStream(stream.NewGeoStream(strings.NewReader(
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[-77.0,38.9]},"properties":{"number":"100","street":"Main Street"}}`,
	)), ctx, nil, zap.NewNop())

	results, err := Run(context.Background(), store, testSet, Options{
		Sources:   []string{"a", "b", "c", "d"},
		Threshold: 25,
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if results["a"].HitCount != 1 || results["a"].AgreementCount != 1 {
		t.Errorf("a = %+v", results["a"])
	}
	if results["b"].AgreementCount != 1 {
		t.Errorf("b = %+v", results["b"])
	}
	if results["c"].HitCount != 1 || results["c"].AgreementCount != 0 {
		t.Errorf("c = %+v", results["c"])
	}
	// d's name never matches: no hit, no agreement
	if results["d"].HitCount != 0 || results["d"].AgreementCount != 0 {
		t.Errorf("d = %+v", results["d"])
	}
}
