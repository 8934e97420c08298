package types

import "testing"

func TestNewContext(t *testing.T) {
	ctx := NewContext("us", "wv", nil)
	if ctx.Country != "US" || ctx.Region != "WV" {
		t.Errorf("got %q %q", ctx.Country, ctx.Region)
	}
	if ctx.RegionCode() != "US-WV" {
		t.Errorf("region code = %q", ctx.RegionCode())
	}
	if ctx.RegionName() != "West Virginia" {
		t.Errorf("region name = %q", ctx.RegionName())
	}

	ctx = NewContext("us", "", nil)
	if ctx.RegionCode() != "" || ctx.RegionName() != "" {
		t.Error("empty region should yield empty code and name")
	}
}

func TestBuildContext(t *testing.T) {
	ctx, err := BuildContext(InputContext{Country: "us", Languages: []string{"en"}})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Country != "US" {
		t.Errorf("country = %q", ctx.Country)
	}

	if _, err := BuildContext(InputContext{Country: "us", Languages: []string{"zz"}}); err == nil {
		t.Error("unknown language must fail context construction")
	}
}
