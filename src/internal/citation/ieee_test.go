package citation

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat_Scenarios(t *testing.T) {
	cases := []struct {
		name string
		pub  Publication
		want []Fragment
	}{
		{
			name: "article",
			pub: Publication{
				Authors: Authors{"A. Smith", "B. Lee"}, Title: "Deep Work", Type: "article",
				Journal: "J. CS", Volume: "12", Pages: "1-9", Month: "mar", Year: "2021",
			},
			want: []Fragment{
				{Kind: Text, Text: `A. Smith, B. Lee, "`},
				{Kind: Strong, Text: "Deep Work"},
				{Kind: Text, Text: `," `},
				{Kind: Emphasis, Text: "J. CS"},
				{Kind: Text, Text: ", vol. 12, pp. 1-9, Mar. 2021."},
			},
		},
		{
			name: "conference minimal",
			pub:  Publication{Title: "Edge Cases", Type: "inproceedings", Year: "2020"},
			want: []Fragment{
				{Kind: Text, Text: `"`},
				{Kind: Strong, Text: "Edge Cases"},
				{Kind: Text, Text: `," , 2020.`},
			},
		},
		{
			name: "book chapter with doi",
			pub: Publication{
				Title: "Chapter One", Type: "inbook", BookTitle: "Handbook", Publisher: "Acme Press",
				Year: "2019", DOI: "10.1/xyz", URL: "http://doi.org/10.1/xyz",
			},
			want: []Fragment{
				{Kind: Text, Text: `"`},
				{Kind: Strong, Text: "Chapter One"},
				{Kind: Text, Text: `," in `},
				{Kind: Emphasis, Text: "Handbook"},
				{Kind: Text, Text: ", Acme Press, 2019, doi: "},
				{Kind: Link, Text: "10.1/xyz", Href: "http://doi.org/10.1/xyz"},
				{Kind: Text, Text: "."},
			},
		},
		{
			name: "conference full",
			pub: Publication{
				Authors: Authors{"C. Wu"}, Title: "Fast Nets", Type: "inproceedings",
				BookTitle: "Proc. ICML", Year: "2022", Pages: "10-20",
			},
			want: []Fragment{
				{Kind: Text, Text: `C. Wu, "`},
				{Kind: Strong, Text: "Fast Nets"},
				{Kind: Text, Text: `," in `},
				{Kind: Emphasis, Text: "Proc. ICML"},
				{Kind: Text, Text: ", 2022, pp. 10-20."},
			},
		},
		{
			name: "doi without url is plain text",
			pub:  Publication{Title: "T", Type: "misc", DOI: "10.9/abc"},
			want: []Fragment{
				{Kind: Text, Text: `"`},
				{Kind: Strong, Text: "T"},
				{Kind: Text, Text: `," , doi: 10.9/abc.`},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.pub)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("fragments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_ArticleOrder(t *testing.T) {
	p := Publication{Title: "T", Type: "article", Journal: "J", Volume: "1", Number: "2", Pages: "3-4", Month: "dec", Year: "1999"}
	got, err := Format(p)
	if err != nil {
		t.Fatal(err)
	}
	s := PlainText(got)
	want := `"T," J, vol. 1, no. 2, pp. 3-4, Dec. 1999.`
	if s != want {
		t.Fatalf("got %q want %q", s, want)
	}
}

func TestFormat_ArticleYearOnly(t *testing.T) {
	got, _ := Format(Publication{Title: "T", Type: "article", Journal: "J", Year: "2001"})
	if s := PlainText(got); !strings.HasSuffix(s, "J, 2001.") {
		t.Fatalf("unexpected: %q", s)
	}
	// month without year is dropped
	got, _ = Format(Publication{Title: "T", Type: "article", Month: "jan"})
	if s := PlainText(got); strings.Contains(s, "Jan") {
		t.Fatalf("month rendered without year: %q", s)
	}
}

func TestFormat_NoAuthorsNoLeadingSeparator(t *testing.T) {
	for _, typ := range []string{"article", "inproceedings", "inbook", "other", ""} {
		got, err := Format(Publication{Title: "X", Type: typ})
		if err != nil {
			t.Fatal(err)
		}
		s := PlainText(got)
		if !strings.HasPrefix(s, `"X`) {
			t.Fatalf("%s: stray prefix in %q", typ, s)
		}
	}
}

func TestFormat_NoDOI(t *testing.T) {
	got, _ := Format(Publication{Title: "X", Type: "article", Journal: "J", URL: "https://x"})
	if s := PlainText(got); strings.Contains(s, "doi:") {
		t.Fatalf("doi clause without DOI: %q", s)
	}
	for _, f := range got {
		if f.Kind == Link {
			t.Fatalf("unexpected link fragment %+v", f)
		}
	}
}

func TestFormat_NoEmptyPlaceholders(t *testing.T) {
	p := Publication{Title: "X", Type: "article", Volume: " ", Number: "", Pages: "\t"}
	got, _ := Format(p)
	s := PlainText(got)
	for _, bad := range []string{"vol. ", "no. ", "pp. ", ", ,"} {
		if strings.Contains(s, bad) {
			t.Fatalf("placeholder %q in %q", bad, s)
		}
	}
}

func TestFormat_SingleTrailingPeriod(t *testing.T) {
	pubs := []Publication{
		{Title: "A", Type: "article"},
		{Title: "A", Type: "article", Pages: "1-2."},
		{Title: "A", Type: "inbook", Publisher: "P", DOI: "10.1/x.", URL: "u"},
		{Title: "A", Type: "unknown"},
	}
	for _, p := range pubs {
		got, err := Format(p)
		if err != nil {
			t.Fatal(err)
		}
		s := PlainText(got)
		if !strings.HasSuffix(s, ".") || strings.HasSuffix(s, "..") {
			t.Fatalf("bad terminal punctuation: %q", s)
		}
	}
}

func TestFormat_UnknownTypeSkipsClause(t *testing.T) {
	got, _ := Format(Publication{Title: "X", Type: "thesis", Journal: "J", BookTitle: "B", Year: "2020"})
	if s := PlainText(got); s != `"X," .` {
		t.Fatalf("got %q", s)
	}
}

func TestFormat_TypeIgnoresCase(t *testing.T) {
	want := `"T," J, 2001.`
	for _, typ := range []string{"article", "Article", " ARTICLE "} {
		got, err := Format(Publication{Title: "T", Type: typ, Journal: "J", Year: "2001"})
		if err != nil {
			t.Fatal(err)
		}
		if s := PlainText(got); s != want {
			t.Fatalf("%q: got %q want %q", typ, s, want)
		}
	}
}

func TestFormat_InvalidRecord(t *testing.T) {
	for _, title := range []string{"", "   "} {
		_, err := Format(Publication{Key: "k1", Title: title, Type: "article"})
		if !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("want ErrInvalidRecord, got %v", err)
		}
		if !strings.Contains(err.Error(), "k1") {
			t.Fatalf("error should name key: %v", err)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	cases := map[string]string{
		"JAN": "Jan.", "Jan": "Jan.", "jan": "Jan.",
		"may": "May", "Sep": "Sep.", "DEC": "Dec.",
		"Q1": "Q1", "September": "September",
	}
	for in, want := range cases {
		if got := Abbreviate(in); got != want {
			t.Fatalf("Abbreviate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormat_UnknownMonthPassThrough(t *testing.T) {
	got, _ := Format(Publication{Title: "X", Type: "article", Month: "Q1", Year: "2024"})
	if s := PlainText(got); !strings.HasSuffix(s, ", Q1 2024.") {
		t.Fatalf("got %q", s)
	}
}

func TestFormat_DeterministicConcurrent(t *testing.T) {
	p := Publication{Authors: Authors{"A"}, Title: "T", Type: "article", Journal: "J", Month: "feb", Year: "2020", DOI: "d", URL: "u"}
	first, _ := Format(p)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := Format(p)
			if diff := cmp.Diff(first, got); diff != "" {
				t.Errorf("non-deterministic output:\n%s", diff)
			}
		}()
	}
	wg.Wait()
}
