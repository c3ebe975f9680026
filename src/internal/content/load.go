package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio/src/internal/bibtex"
	"portfolio/src/internal/httpx"
	"portfolio/src/internal/sanitize"
)

// Format is the on-disk encoding of a data document.
type Format string

const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	BibTeX Format = "bib"
)

var client httpx.Doer = httpx.DefaultClient

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// FormatFor picks a format from a file name or URL path.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	case ".bib":
		return BibTeX
	default:
		return JSON
	}
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load reads the document at source, a file path or an http(s) URL.
func Load(ctx context.Context, source string) (*Document, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("no data source given")
	}
	if IsURL(source) {
		body, ctype, err := httpx.Get(ctx, client, source, "application/json, application/yaml;q=0.9, */*;q=0.5")
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		f := FormatFor(urlPath(source))
		if strings.Contains(strings.ToLower(ctype), "yaml") {
			f = YAML
		}
		doc, err := Decode(bytes.NewReader(body), f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return doc, nil
	}
	fh, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	doc, err := Decode(fh, FormatFor(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return doc, nil
}

func urlPath(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	return path.Base(raw)
}

// Decode parses a document and checks its required sections. BibTeX input
// carries only publications and skips the section check.
func Decode(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc *Document
	switch f {
	case BibTeX:
		pubs, err := bibtex.Parse(string(data))
		if err != nil {
			return nil, err
		}
		doc = &Document{Publications: pubs}
		doc.clean()
		return doc, nil
	case YAML:
		doc, err = decodeYAML(data)
	case JSON, "":
		doc, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.clean()
	return doc, nil
}

func (d *Document) clean() {
	for i := range d.Publications {
		sanitize.CleanPublication(&d.Publications[i])
	}
}

func decodeJSON(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	doc := &Document{present: map[string]bool{}}
	for k, v := range top {
		if !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			doc.present[k] = true
		}
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}

func decodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	doc := &Document{present: map[string]bool{}}
	if len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid YAML: document must be a mapping")
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i+1].Tag != "!!null" {
			doc.present[top.Content[i].Value] = true
		}
	}
	if err := top.Decode(doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return doc, nil
}
