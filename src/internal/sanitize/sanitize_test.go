package sanitize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"portfolio/src/internal/citation"
)

func TestCleanString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  \tHello\x00World\n  ", 0, "HelloWorld"},
		{"Deep\n   Work", 0, "Deep Work"},
		{"abcdef", 3, "abc"},
		{"ab cd", 3, "ab"},
		{"日本語テキスト", 3, "日本語"},
	}
	for _, tc := range cases {
		if got := CleanString(tc.in, tc.max); got != tc.want {
			t.Fatalf("CleanString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestCleanURL(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"not a url":                "",
		"ftp://x/y":                "",
		"javascript:alert(1)":      "",
		" https://doi.org/10.1/x ": "https://doi.org/10.1/x",
		"HTTP://example.com/a":     "http://example.com/a",
	}
	for in, want := range cases {
		if got := CleanURL(in); got != want {
			t.Fatalf("CleanURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanPublication(t *testing.T) {
	p := citation.Publication{
		Key: " k ", Type: " Article ", Title: " Deep\nWork ", Authors: citation.Authors{" A. Smith ", "\x07", "B. Lee"},
		Year: " 2021 ", URL: "javascript:void(0)", DOI: " 10.1/x ",
	}
	CleanPublication(&p)
	want := citation.Publication{
		Key: "k", Type: "article", Title: "Deep Work", Authors: citation.Authors{"A. Smith", "B. Lee"},
		Year: "2021", DOI: "10.1/x",
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("CleanPublication (-want +got):\n%s", diff)
	}
	CleanPublication(nil)
}
