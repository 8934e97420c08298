package text

import "testing"

func TestTitlecaseUS(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Väike-Sõjamäe", "Väike-Sõjamäe"},
		{"Väike-sõjamäe", "Väike-Sõjamäe"},
		{"väike-sõjamäe", "Väike-Sõjamäe"},
		{"väike sõjamäe", "Väike Sõjamäe"},
		{"väike  sõjamäe", "Väike Sõjamäe"},
		{"VäikeSõjamäe", "Väikesõjamäe"},
		{"abra CAda -bra", "Abra Cada -Bra"},
		{"abra-CAda-bra", "Abra-Cada-Bra"},
		{"our lady of whatever", "Our Lady of Whatever"},
		{"our lady OF whatever", "Our Lady of Whatever"},
		{"St Martin's Neck Road", "St Martin's Neck Road"},
		{"MT. MOOSILAUKE HWY", "Mt. Moosilauke Hwy"},
		{"mt. moosilauke hwy", "Mt. Moosilauke Hwy"},
		{"some  miscellaneous rd (what happens to parentheses?)", "Some Miscellaneous Rd (What Happens to Parentheses?)"},
		{"main st NE", "Main St NE"},
		{"main St NW", "Main St NW"},
		{"SW Main St.", "SW Main St."},
		{"Main S.E. St", "Main SE St"},
		{"main st ne", "Main St NE"},
		{"nE. Main St", "Ne. Main St"},
		{"washington dc", "Washington DC"},
	}

	for _, tc := range cases {
		if got := Titlecase(tc.in, "US"); got != tc.want {
			t.Errorf("Titlecase(%q, US) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitlecaseDE(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" hast Du recht", "Hast du Recht"},
		// minor words keep their case only when not leading
		{"du hast recht", "Du Hast Recht"},
	}

	for _, tc := range cases {
		if got := Titlecase(tc.in, "DE"); got != tc.want {
			t.Errorf("Titlecase(%q, DE) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitlecaseOtherCountry(t *testing.T) {
	// no locale rules outside US/CA/DE
	if got := Titlecase("rue de la paix", "FR"); got != "Rue De La Paix" {
		t.Errorf("got %q", got)
	}
	if got := Titlecase("main st ne", "FR"); got != "Main St Ne" {
		t.Errorf("cardinal normalizer should be US/CA only, got %q", got)
	}
}
