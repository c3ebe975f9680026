package bibtex

import (
	"fmt"
	"regexp"
	"strings"

	"portfolio/src/internal/citation"
)

var fieldOrder = []string{"author", "title", "journal", "booktitle", "publisher", "volume", "number", "pages", "month", "year", "doi", "url"}

// Marshal writes pubs as BibTeX records in input order. Records lacking a
// key get one derived from the first author, year and title.
func Marshal(pubs []citation.Publication) string {
	var b strings.Builder
	seen := map[string]bool{}
	for _, p := range pubs {
		base := strings.TrimSpace(p.Key)
		if base == "" {
			base = keyFor(p)
		}
		key := base
		for n := 2; seen[key]; n++ {
			key = fmt.Sprintf("%s-%d", base, n)
		}
		seen[key] = true
		b.WriteString(marshalRecord(key, p))
	}
	return b.String()
}

func marshalRecord(key string, p citation.Publication) string {
	typ := strings.ToLower(strings.TrimSpace(p.Type))
	if typ == "" {
		typ = "misc"
	}
	fields := map[string]string{
		"author":    strings.Join(p.Authors, " and "),
		"title":     p.Title,
		"journal":   p.Journal,
		"booktitle": p.BookTitle,
		"publisher": p.Publisher,
		"volume":    p.Volume,
		"number":    p.Number,
		"pages":     p.Pages,
		"month":     p.Month,
		"year":      p.Year.String(),
		"doi":       p.DOI,
		"url":       p.URL,
	}
	var lines []string
	for _, k := range fieldOrder {
		if v := strings.TrimSpace(fields[k]); v != "" {
			lines = append(lines, fmt.Sprintf("  %s = {%s}", k, escape(v)))
		}
	}
	return fmt.Sprintf("@%s{%s,\n%s\n}\n\n", typ, key, strings.Join(lines, ",\n"))
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return strings.TrimSpace(s)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// keyFor builds a citation key like "smith2021deep".
func keyFor(p citation.Publication) string {
	var fam string
	if len(p.Authors) > 0 {
		parts := strings.Fields(p.Authors[0])
		if len(parts) > 0 {
			fam = parts[len(parts)-1]
		}
	}
	var word string
	for _, w := range strings.Fields(p.Title) {
		if len(w) > 3 {
			word = w
			break
		}
	}
	key := nonAlnum.ReplaceAllString(strings.ToLower(fam+p.Year.String()+word), "")
	if key == "" {
		return "pub"
	}
	return key
}
