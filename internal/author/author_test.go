package author

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"space form", "Isaac Asimov", "ASIMOV, Isaac"},
		{"lower space form", "isaac asimov", "ASIMOV, Isaac"},
		{"comma form kept", "ASIMOV, Isaac", "ASIMOV, Isaac"},
		{"comma form recased", "asimov, isaac", "ASIMOV, Isaac"},
		{"particle last name", "Jean de la Fontaine", "LA FONTAINE, Jean de"},
		{"accented", "Émile Zola", "ZOLA, Émile"},
		{"single token", "voltaire", "Voltaire"},
		{"collective", "Various Authors", "Collectif"},
		{"anonymous", "anonymous", "Anonyme"},
		{"anthology", "Anthology", "Anthologie"},
		{"unknown marker", "unknown author", "Unknown Author"},
		{"empty", "", "Unknown Author"},
		{"whitespace only", "   ", "Unknown Author"},
		{"forbidden chars", "John? Smith", "SMITH, John"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Canonicalize(tc.in)
			if got != tc.want {
				t.Fatalf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := Canonicalize(got); again != got {
				t.Fatalf("not idempotent: Canonicalize(%q) = %q", got, again)
			}
		})
	}
}

func TestIsCanonical(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"ASIMOV, Isaac", true},
		{"LA FONTAINE, Jean de", true},
		{"Voltaire", true},
		{"Collectif", true},
		{"Unknown Author", true},
		{"Asimov, Isaac", false},
		{"VERNE, jules", false},
		{"Isaac Asimov", false},
		{"__OUTLIER__ Foo", false},
		{"A, B, C", false},
		{"NO COMMA HERE", false},
		{",", false},
	}
	for _, tc := range cases {
		if got := IsCanonical(tc.name); got != tc.want {
			t.Errorf("IsCanonical(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOutlierMarking(t *testing.T) {
	marked := MarkOutlier("99 Ebooks Pack")
	if marked != "__OUTLIER__ 99 Ebooks Pack" {
		t.Fatalf("marked = %q", marked)
	}
	if !IsOutlier(marked) {
		t.Fatal("marked name should be an outlier")
	}
	if IsOutlier("99 Ebooks Pack") {
		t.Fatal("plain name should not be an outlier")
	}
}

func TestKey(t *testing.T) {
	pairs := [][2]string{
		{"VERNE, Jules", "verne, jules"},
		{"ZOLA, Émile", "ZOLA, Emile"},
		{"DOE,  John", "doe, john"},
	}
	for _, p := range pairs {
		if Key(p[0]) != Key(p[1]) {
			t.Errorf("Key(%q) = %q, Key(%q) = %q; want equal", p[0], Key(p[0]), p[1], Key(p[1]))
		}
	}
	if Key("VERNE, Jules") == Key("ZOLA, Émile") {
		t.Fatal("distinct names must not share a key")
	}
}
