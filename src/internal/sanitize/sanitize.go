// Package sanitize normalizes publication fields read from untrusted data
// files before they reach the citation formatter.
package sanitize

import (
	"net/url"
	"strings"
	"unicode"

	"portfolio/src/internal/citation"
)

// CleanString drops control characters, folds runs of whitespace (including
// newlines) to one space and truncates to max runes when max > 0.
func CleanString(s string, max int) string {
	var b strings.Builder
	n := 0
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if space && b.Len() > 0 {
			if max > 0 && n+1 >= max {
				break
			}
			b.WriteByte(' ')
			n++
		}
		space = false
		if max > 0 && n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if s := strings.ToLower(u.Scheme); s != "http" && s != "https" {
		return ""
	}
	return u.String()
}

// CleanPublication sanitizes every field of p in place.
func CleanPublication(p *citation.Publication) {
	if p == nil {
		return
	}
	p.Key = CleanString(p.Key, 128)
	p.Type = strings.ToLower(CleanString(p.Type, 32))
	p.Title = CleanString(p.Title, 1024)
	p.Journal = CleanString(p.Journal, 512)
	p.Volume = CleanString(p.Volume, 64)
	p.Number = CleanString(p.Number, 64)
	p.Pages = CleanString(p.Pages, 64)
	p.Month = CleanString(p.Month, 32)
	p.Year = citation.Year(CleanString(p.Year.String(), 16))
	p.BookTitle = CleanString(p.BookTitle, 512)
	p.Publisher = CleanString(p.Publisher, 512)
	p.DOI = CleanString(p.DOI, 256)
	p.URL = CleanURL(p.URL)
	var authors citation.Authors
	for _, a := range p.Authors {
		if a = CleanString(a, 256); a != "" {
			authors = append(authors, a)
		}
	}
	p.Authors = authors
}
