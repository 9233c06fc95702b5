package identity

import (
	"reflect"
	"testing"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		name string
		want Pair
		ok   bool
	}{
		{"ASIMOV, Isaac", Pair{Left: "asimov", Right: "isaac"}, true},
		{"ZOLA, Émile", Pair{Left: "zola", Right: "emile"}, true},
		{"Collectif", Pair{}, false},
		{"Isaac Asimov", Pair{}, false},
		{"A, B, C", Pair{}, false},
		{", Isaac", Pair{}, false},
	}
	for _, tc := range cases {
		got, ok := SplitName(tc.name)
		if ok != tc.ok || got != tc.want {
			t.Errorf("SplitName(%q) = %+v, %v; want %+v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFindReversedPairs(t *testing.T) {
	names := []string{
		"VERNE, Jules",
		"ASIMOV, Isaac",
		"Isaac, ASIMOV",
		"ZOLA, Émile",
	}
	got := FindReversedPairs(names)
	want := []ReversedPair{{A: "ASIMOV, Isaac", B: "Isaac, ASIMOV"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pairs = %+v, want %+v", got, want)
	}
}

func TestFindReversedPairsNone(t *testing.T) {
	if got := FindReversedPairs([]string{"VERNE, Jules", "ZOLA, Émile"}); len(got) != 0 {
		t.Fatalf("expected no pairs, got %+v", got)
	}
}

func TestFindReversedPairsIgnoresPalindrome(t *testing.T) {
	// A name whose transposition is itself must not pair with itself.
	if got := FindReversedPairs([]string{"Sand, Sand"}); len(got) != 0 {
		t.Fatalf("expected no pairs, got %+v", got)
	}
}

func TestDuplicateGroups(t *testing.T) {
	names := []string{"VERNE, Jules", "verne, jules", "VERNE,  Jules", "ZOLA, Émile"}
	groups := DuplicateGroups(names)
	if len(groups) != 1 {
		t.Fatalf("groups = %+v", groups)
	}
	for _, members := range groups {
		if len(members) != 3 {
			t.Fatalf("members = %v", members)
		}
	}
}
