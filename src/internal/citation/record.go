package citation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRecord reports a publication that cannot be cited at all.
var ErrInvalidRecord = errors.New("invalid publication record")

// Publication types with a type-specific clause.
const (
	TypeArticle       = "article"
	TypeInProceedings = "inproceedings"
	TypeInBook        = "inbook"
)

// Publication is one entry of the portfolio "publications" list.
type Publication struct {
	Key       string  `json:"key,omitempty" yaml:"key,omitempty"`
	Authors   Authors `json:"authors,omitempty" yaml:"authors,omitempty"`
	Title     string  `json:"title" yaml:"title"`
	Type      string  `json:"type" yaml:"type"`
	Journal   string  `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume    string  `json:"volume,omitempty" yaml:"volume,omitempty"`
	Number    string  `json:"number,omitempty" yaml:"number,omitempty"`
	Pages     string  `json:"pages,omitempty" yaml:"pages,omitempty"`
	Month     string  `json:"month,omitempty" yaml:"month,omitempty"`
	Year      Year    `json:"year,omitempty" yaml:"year,omitempty"`
	BookTitle string  `json:"booktitle,omitempty" yaml:"booktitle,omitempty"`
	Publisher string  `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	DOI       string  `json:"DOI,omitempty" yaml:"DOI,omitempty"`
	URL       string  `json:"url,omitempty" yaml:"url,omitempty"`
}

// Validate checks the fields a citation cannot be built without.
func (p Publication) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		if k := strings.TrimSpace(p.Key); k != "" {
			return fmt.Errorf("%w: %s: title is required", ErrInvalidRecord, k)
		}
		return fmt.Errorf("%w: title is required", ErrInvalidRecord)
	}
	return nil
}

// Year is a publication year as written in the source document. Data files
// carry it both as a string ("2021") and as a bare number (2021).
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: expected string or number, got %s", string(data))
	}
	*y = Year(n.String())
	return nil
}

func (y *Year) UnmarshalYAML(value *yaml.Node) error {
	if value == nil || value.Tag == "!!null" {
		*y = ""
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("year: expected scalar at line %d", value.Line)
	}
	*y = Year(strings.TrimSpace(value.Value))
	return nil
}

func (y Year) String() string { return string(y) }

// Authors is an ordered author list. It unmarshals from a single string
// (one author) or a sequence of strings; blank names are dropped.
type Authors []string

func (a *Authors) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = compact([]string{s})
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("authors: %w", err)
	}
	*a = compact(list)
	return nil
}

func (a *Authors) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*a = nil
			return nil
		}
		*a = compact([]string{value.Value})
		return nil
	case yaml.SequenceNode:
		var out []string
		for _, n := range value.Content {
			if n.Kind == yaml.ScalarNode {
				out = append(out, n.Value)
			}
		}
		*a = compact(out)
		return nil
	default:
		return fmt.Errorf("authors: expected string or sequence at line %d", value.Line)
	}
}

func compact(vals []string) Authors {
	var out Authors
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
