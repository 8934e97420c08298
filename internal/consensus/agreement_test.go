package consensus

import (
	"testing"

	"github.com/paulmach/orb"
)

func pt(lon, lat float64) *orb.Point {
	p := orb.Point{lon, lat}
	return &p
}

func TestAgreementTowns(t *testing.T) {
	sources := []string{
		"Fitchburg", "Framingham", "Marlborough",
		"Northbridge", "Southborough", "Westborough",
	}

	agreement := NewAgreement(sources, 16093) // 10 miles

	agreement.ProcessPoints(map[string]*orb.Point{
		"Fitchburg":    pt(-71.8027778, 42.5833333),
		"Framingham":   pt(-71.4166667, 42.2791667),
		"Marlborough":  pt(-71.5527778, 42.3458333),
		"Northbridge":  pt(-71.6500000, 42.1513889),
		"Southborough": pt(-71.5250000, 42.3055556),
		"Westborough":  pt(-71.6166667, 42.2694444),
	})

	results := agreement.Results()
	if got := results["Fitchburg"].AgreementCount; got != 0 {
		t.Errorf("Fitchburg agreement = %d, want 0", got)
	}
	for _, source := range sources[1:] {
		if got := results[source].AgreementCount; got != 1 {
			t.Errorf("%s agreement = %d, want 1", source, got)
		}
	}
}

func TestAgreementBadSource(t *testing.T) {
	sources := []string{"source1", "source2", "source3"}
	agreement := NewAgreement(sources, 25)

	agreement.ProcessPoints(map[string]*orb.Point{
		"source1": pt(-77.0013365, 38.8959637),
		"source2": pt(-77.0013338, 38.8959407),
		"source3": pt(-77.0013311, 38.8955170),
	})
	agreement.ProcessPoints(map[string]*orb.Point{
		"source1": pt(-77.0033025, 38.8971410),
		"source2": pt(-77.0032677, 38.8971390),
		"source3": pt(-77.0038872, 38.8970513),
	})

	results := agreement.Results()
	if results["source1"].AgreementCount != 2 ||
		results["source2"].AgreementCount != 2 ||
		results["source3"].AgreementCount != 0 {
		t.Errorf("got %+v %+v %+v", results["source1"], results["source2"], results["source3"])
	}
}

func TestAgreementNoAgreement(t *testing.T) {
	sources := []string{"source1", "source2", "source3"}
	agreement := NewAgreement(sources, 25)

	agreement.ProcessPoints(map[string]*orb.Point{
		"source1": pt(-76.9732081, 38.9168672),
		"source2": pt(-76.9733476, 38.9163518),
		"source3": pt(-76.9731089, 38.9175434),
	})
	agreement.ProcessPoints(map[string]*orb.Point{
		"source1": pt(-76.9717141, 38.9309358),
		"source2": pt(-76.9710302, 38.9312738),
		"source3": pt(-76.9720950, 38.9308064),
	})

	for source, result := range agreement.Results() {
		if result.AgreementCount != 0 {
			t.Errorf("%s agreement = %d, want 0", source, result.AgreementCount)
		}
	}
}

func TestAgreementMisses(t *testing.T) {
	sources := []string{"source1", "source2", "source3"}
	agreement := NewAgreement(sources, 25)

	agreement.ProcessPoints(map[string]*orb.Point{
		"source1": pt(-76.9732081, 38.9168672),
		"source2": pt(-76.9733476, 38.9163518),
		"source3": nil,
	})
	agreement.ProcessPoints(map[string]*orb.Point{
		"source1": nil,
		"source2": pt(-76.9710302, 38.9312738),
		"source3": pt(-76.9720950, 38.9308064),
	})

	results := agreement.Results()
	cases := []struct {
		source    string
		agreement uint32
		hits      uint32
	}{
		{"source1", 0, 1},
		{"source2", 0, 2},
		{"source3", 0, 1},
	}
	for _, tc := range cases {
		if got := results[tc.source]; got.AgreementCount != tc.agreement || got.HitCount != tc.hits {
			t.Errorf("%s = %+v, want {%d %d}", tc.source, got, tc.agreement, tc.hits)
		}
	}
}

func TestAgreementInvariants(t *testing.T) {
	sources := []string{"a", "b", "c", "d"}
	agreement := NewAgreement(sources, 50)

	samples := []map[string]*orb.Point{
		{"a": pt(0, 0), "b": pt(0.0001, 0), "c": pt(0.0001, 0.0001), "d": nil},
		{"a": pt(0, 0), "b": nil, "c": nil, "d": nil},
		{"a": pt(1, 1), "b": pt(1.00005, 1), "c": pt(1, 1.00005), "d": pt(2, 2)},
	}
	for _, sample := range samples {
		agreement.ProcessPoints(sample)
	}

	if agreement.SampleCount() != 3 {
		t.Fatalf("sample count = %d", agreement.SampleCount())
	}
	for source, result := range agreement.Results() {
		if result.HitCount > agreement.SampleCount() {
			t.Errorf("%s: hit count %d exceeds samples", source, result.HitCount)
		}
		if result.AgreementCount > result.HitCount {
			t.Errorf("%s: agreement %d exceeds hits %d", source, result.AgreementCount, result.HitCount)
		}
	}
}

func TestHaversine(t *testing.T) {
	// one degree of longitude on the equator
	d := haversine(orb.Point{0, 0}, orb.Point{1, 0})
	if d < 111000 || d > 111400 {
		t.Errorf("equator degree = %f m", d)
	}
	if haversine(orb.Point{10, 10}, orb.Point{10, 10}) != 0 {
		t.Error("identical points must be 0 m apart")
	}
}

func TestSingleLinkageOrder(t *testing.T) {
	// three points on a line: 0-1 close, 2 far
	condensed := []float64{1, 10, 9} // d(0,1)=1 d(0,2)=10 d(1,2)=9
	steps := singleLinkage(condensed, 3)

	if len(steps) != 2 {
		t.Fatalf("got %d steps", len(steps))
	}
	if steps[0].dissimilarity != 1 || steps[1].dissimilarity != 9 {
		t.Errorf("steps = %+v", steps)
	}
	// first merge joins observations 0 and 1; second joins cluster 3
	// with observation 2
	if steps[0].cluster1 != 0 || steps[0].cluster2 != 1 {
		t.Errorf("first step = %+v", steps[0])
	}
	if steps[1].cluster1 != 2 || steps[1].cluster2 != 3 {
		t.Errorf("second step = %+v", steps[1])
	}
}
