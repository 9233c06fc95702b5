package hints

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		name      string
		stem      string
		parentDir string
		want      Hint
	}{
		{
			name: "author dash title",
			stem: "Isaac Asimov - Foundation",
			want: Hint{Title: "Foundation", Author: "Isaac Asimov", Source: SourceFilename},
		},
		{
			name: "title dash author",
			stem: "Foundation - Isaac Asimov",
			want: Hint{Title: "Foundation", Author: "Isaac Asimov", Source: SourceFilename},
		},
		{
			name: "bracket prefix",
			stem: "[Jules Verne]_Vingt mille lieues",
			want: Hint{Title: "Vingt mille lieues", Author: "Jules Verne", Source: SourceFilename},
		},
		{
			name: "paren suffix",
			stem: "Foundation (Isaac Asimov)",
			want: Hint{Title: "Foundation", Author: "Isaac Asimov", Source: SourceFilename},
		},
		{
			name: "by separator",
			stem: "Foundation by Isaac Asimov",
			want: Hint{Title: "Foundation", Author: "Isaac Asimov", Source: SourceFilename},
		},
		{
			name:      "parent directory fallback",
			stem:      "Foundation",
			parentDir: "Isaac Asimov",
			want:      Hint{Title: "Foundation", Author: "Isaac Asimov", Source: SourceParentDir},
		},
		{
			name:      "series parent rejected",
			stem:      "Foundation",
			parentDir: "Tome 2",
			want:      Hint{},
		},
		{
			name: "no match",
			stem: "foundation",
			want: Hint{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.stem, tc.parentDir)
			if got != tc.want {
				t.Fatalf("Extract(%q, %q) = %+v, want %+v", tc.stem, tc.parentDir, got, tc.want)
			}
		})
	}
}

func TestLooksLikeAuthor(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Verne, Jules", true},
		{"Isaac Asimov", true},
		{"Jean de la Fontaine", true},
		{"Foundation", false},
		{"tome 2", false},
		{"The Complete Works Of William Shakespeare", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := LooksLikeAuthor(tc.in); got != tc.want {
			t.Errorf("LooksLikeAuthor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
