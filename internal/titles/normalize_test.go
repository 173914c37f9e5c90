package titles

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"uppercase", "JUNO", "juno"},
		{"leading the", "THE BUCKET LIST", "bucket list"},
		{"mixed case no article", "Bucket List", "bucket list"},
		{"hyphen separator", "bucket-list", "bucket list"},
		{"apostrophe dropped", "CHARLIE WILSON'S WAR", "charlie wilsons war"},
		{"trailing year", "Juno (2007)", "juno"},
		{"year with padding", "  Hanna (2011)  ", "hanna"},
		{"colon subtitle", "Juno: A Film", "juno a film"},
		{"leading an", "An Education", "education"},
		{"leading a", "A Quiet Place", "quiet place"},
		{"article needs trailing space", "Aeon", "aeon"},
		{"article alone survives", "The", "the"},
		{"underscores and dots", "the_bucket.list", "bucket list"},
		{"collapsed whitespace", "bucket   list", "bucket list"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"year mid-title kept", "2001 A Space Odyssey", "2001 a space odyssey"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeEquivalentForms(t *testing.T) {
	variants := []string{"THE BUCKET LIST", "Bucket List", "bucket-list", "The Bucket List (2007)"}
	want := Normalize(variants[0])
	for _, v := range variants[1:] {
		if got := Normalize(v); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"THE BUCKET LIST",
		"Juno (2007)",
		"Charlie Wilson's War",
		"Aeon",
		"hanna",
		"",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
