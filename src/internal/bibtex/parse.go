// Package bibtex reads and writes publication lists as BibTeX.
package bibtex

import (
	"fmt"
	"strings"

	"portfolio/src/internal/citation"
)

// Record is one raw @type{key, field = value, ...} entry.
type Record struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Parse reads every record in s and maps it to a publication.
func Parse(s string) ([]citation.Publication, error) {
	recs, err := ParseRecords(s)
	if err != nil {
		return nil, err
	}
	out := make([]citation.Publication, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Publication())
	}
	return out, nil
}

// ParseRecords reads raw records. @comment, @preamble and @string blocks
// are skipped; % starts a line comment between records and fields.
func ParseRecords(s string) ([]Record, error) {
	sc := &scanner{src: s}
	var recs []Record
	for {
		sc.skipSpace()
		if sc.eof() {
			return recs, nil
		}
		if sc.peek() != '@' {
			sc.pos++
			continue
		}
		sc.pos++
		sc.skipSpace()
		typ := strings.ToLower(sc.ident())
		afterType := sc.pos
		sc.skipSpace()
		if typ == "comment" && (sc.eof() || (sc.peek() != '{' && sc.peek() != '(')) {
			// bare @comment runs to the end of its line
			sc.pos = afterType
			for !sc.eof() && sc.peek() != '\n' {
				sc.pos++
			}
			continue
		}
		if sc.eof() || (sc.peek() != '{' && sc.peek() != '(') {
			return nil, sc.errorf("expected '{' after @%s", typ)
		}
		switch typ {
		case "comment", "preamble", "string":
			if err := sc.skipGroup(); err != nil {
				return nil, err
			}
			continue
		}
		sc.pos++
		r, err := sc.record(typ)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
}

type scanner struct {
	src string
	pos int
}

func (sc *scanner) eof() bool  { return sc.pos >= len(sc.src) }
func (sc *scanner) peek() byte { return sc.src[sc.pos] }

func (sc *scanner) errorf(format string, args ...any) error {
	line := 1 + strings.Count(sc.src[:min(sc.pos, len(sc.src))], "\n")
	return fmt.Errorf("invalid bib at line %d: %s", line, fmt.Sprintf(format, args...))
}

func (sc *scanner) skipSpace() {
	for !sc.eof() {
		switch c := sc.peek(); {
		case c == '%':
			for !sc.eof() && sc.peek() != '\n' {
				sc.pos++
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *scanner) ident() string {
	start := sc.pos
	for !sc.eof() {
		c := sc.peek()
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '_' || c == '-' {
			sc.pos++
			continue
		}
		break
	}
	return sc.src[start:sc.pos]
}

// skipGroup consumes a balanced {...} or (...) block starting at the opener.
func (sc *scanner) skipGroup() error {
	open := sc.peek()
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}
	depth := 0
	for !sc.eof() {
		c := sc.peek()
		sc.pos++
		switch c {
		case '\\':
			sc.pos++
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return sc.errorf("unterminated block")
}

func (sc *scanner) record(typ string) (Record, error) {
	sc.skipSpace()
	start := sc.pos
	for !sc.eof() && !strings.ContainsRune(",})", rune(sc.peek())) {
		sc.pos++
	}
	if sc.eof() {
		return Record{}, sc.errorf("unterminated key in @%s", typ)
	}
	r := Record{Type: typ, Key: strings.TrimSpace(sc.src[start:sc.pos]), Fields: map[string]string{}}
	if sc.peek() != ',' {
		// @misc{key} has no fields
		sc.pos++
		return r, nil
	}
	sc.pos++
	for {
		sc.skipSpace()
		if sc.eof() {
			return Record{}, sc.errorf("unexpected EOF in %s", r.Key)
		}
		if c := sc.peek(); c == '}' || c == ')' {
			sc.pos++
			return r, nil
		}
		name := strings.ToLower(sc.ident())
		if name == "" {
			return Record{}, sc.errorf("expected field name in %s", r.Key)
		}
		sc.skipSpace()
		if sc.eof() || sc.peek() != '=' {
			return Record{}, sc.errorf("expected '=' after %s", name)
		}
		sc.pos++
		sc.skipSpace()
		val, err := sc.value()
		if err != nil {
			return Record{}, err
		}
		r.Fields[name] = val
		sc.skipSpace()
		if !sc.eof() && sc.peek() == ',' {
			sc.pos++
		}
	}
}

// value reads a brace-delimited, quoted, or bare field value. Parts joined
// with # are concatenated.
func (sc *scanner) value() (string, error) {
	var b strings.Builder
	for {
		if sc.eof() {
			return "", sc.errorf("unexpected EOF in value")
		}
		switch sc.peek() {
		case '{':
			start := sc.pos + 1
			if err := sc.skipGroup(); err != nil {
				return "", err
			}
			b.WriteString(sc.src[start : sc.pos-1])
		case '"':
			sc.pos++
			start := sc.pos
			depth := 0
			for !sc.eof() {
				c := sc.peek()
				if c == '\\' {
					sc.pos += 2
					continue
				}
				if c == '{' {
					depth++
				} else if c == '}' {
					depth--
				} else if c == '"' && depth == 0 {
					break
				}
				sc.pos++
			}
			if sc.eof() {
				return "", sc.errorf("unterminated quoted value")
			}
			b.WriteString(sc.src[start:sc.pos])
			sc.pos++
		default:
			start := sc.pos
			for !sc.eof() && !strings.ContainsRune(",}) \t\r\n#", rune(sc.peek())) {
				sc.pos++
			}
			b.WriteString(sc.src[start:sc.pos])
		}
		sc.skipSpace()
		if sc.eof() || sc.peek() != '#' {
			return unescape(b.String()), nil
		}
		sc.pos++
		sc.skipSpace()
	}
}

// unescape drops grouping braces, keeps escaped ones, and folds whitespace.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '}') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if c == '{' || c == '}' {
			continue
		}
		b.WriteByte(c)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Publication maps the record's fields onto a citation record.
func (r Record) Publication() citation.Publication {
	f := r.Fields
	p := citation.Publication{
		Key:       r.Key,
		Type:      r.Type,
		Title:     f["title"],
		Journal:   firstNonEmpty(f["journal"], f["journaltitle"]),
		Volume:    f["volume"],
		Number:    firstNonEmpty(f["number"], f["issue"]),
		Pages:     strings.ReplaceAll(f["pages"], "--", "-"),
		Month:     f["month"],
		Year:      citation.Year(f["year"]),
		BookTitle: f["booktitle"],
		Publisher: f["publisher"],
		DOI:       f["doi"],
		URL:       f["url"],
	}
	if a := strings.TrimSpace(f["author"]); a != "" {
		p.Authors = splitAuthors(a)
	}
	if p.URL == "" && p.DOI != "" {
		p.URL = "https://doi.org/" + p.DOI
	}
	return p
}

// splitAuthors splits an "A and B" list and turns "Family, Given" into
// "Given Family".
func splitAuthors(s string) citation.Authors {
	var out citation.Authors
	for _, part := range strings.Split(s, " and ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.Index(part, ","); i >= 0 {
			fam := strings.TrimSpace(part[:i])
			giv := strings.TrimSpace(part[i+1:])
			if giv != "" {
				part = giv + " " + fam
			} else {
				part = fam
			}
		}
		out = append(out, part)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
