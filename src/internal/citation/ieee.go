// Package citation formats portfolio publication records as IEEE-style
// references. Output is a sequence of fragments; see package render for
// turning them into markup.
package citation

import (
	"strings"
)

var monthAbbrev = map[string]string{
	"jan": "Jan.",
	"feb": "Feb.",
	"mar": "Mar.",
	"apr": "Apr.",
	"may": "May",
	"jun": "Jun.",
	"jul": "Jul.",
	"aug": "Aug.",
	"sep": "Sep.",
	"oct": "Oct.",
	"nov": "Nov.",
	"dec": "Dec.",
}

// Abbreviate returns the IEEE abbreviation for a three-letter month name,
// ignoring case. Unknown values are returned unchanged.
func Abbreviate(month string) string {
	m := strings.TrimSpace(month)
	if a, ok := monthAbbrev[strings.ToLower(m)]; ok {
		return a
	}
	return m
}

// Format builds the IEEE citation for p. Records without a title are
// rejected with ErrInvalidRecord; every other missing field is omitted.
func Format(p Publication) ([]Fragment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var fs fragments

	if len(p.Authors) > 0 {
		fs.text(strings.Join(p.Authors, ", ") + ", ")
	}
	fs.text(`"`)
	fs.add(Strong, strings.TrimSpace(p.Title))
	fs.text(`," `)

	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case TypeArticle:
		article(&fs, p)
	case TypeInProceedings:
		venue(&fs, p.BookTitle)
		clause(&fs, "", p.Year.String())
		clause(&fs, "pp. ", p.Pages)
	case TypeInBook:
		venue(&fs, p.BookTitle)
		clause(&fs, "", p.Publisher)
		clause(&fs, "", p.Year.String())
		clause(&fs, "pp. ", p.Pages)
	}

	if doi := strings.TrimSpace(p.DOI); doi != "" {
		fs.text(", doi: ")
		if u := strings.TrimSpace(p.URL); u != "" {
			fs.link(doi, u)
		} else {
			fs.text(doi)
		}
	}

	if !fs.endsWith(".") {
		fs.text(".")
	}
	return fs, nil
}

func article(fs *fragments, p Publication) {
	if j := strings.TrimSpace(p.Journal); j != "" {
		fs.add(Emphasis, j)
	}
	clause(fs, "vol. ", p.Volume)
	clause(fs, "no. ", p.Number)
	clause(fs, "pp. ", p.Pages)
	year := strings.TrimSpace(p.Year.String())
	month := strings.TrimSpace(p.Month)
	switch {
	case year != "" && month != "":
		fs.text(", " + Abbreviate(month) + " " + year)
	case year != "":
		fs.text(", " + year)
	}
}

func venue(fs *fragments, booktitle string) {
	if b := strings.TrimSpace(booktitle); b != "" {
		fs.text("in ")
		fs.add(Emphasis, b)
	}
}

// clause appends ", <label><value>" when value is present.
func clause(fs *fragments, label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		fs.text(", " + label + v)
	}
}
