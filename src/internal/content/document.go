// Package content loads the portfolio data document.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio/src/internal/citation"
)

// ErrMissingSection reports a required top-level key absent from the document.
var ErrMissingSection = errors.New("missing required field")

// RequiredSections must be present in every portfolio document.
var RequiredSections = []string{"profile", "projects", "publications", "contact"}

// Document is the portfolio data file.
type Document struct {
	Profile             *Profile     `json:"profile,omitempty" yaml:"profile,omitempty"`
	Projects            []Project    `json:"projects,omitempty" yaml:"projects,omitempty"`
	Courses             []Course     `json:"courses,omitempty" yaml:"courses,omitempty"`
	Publications        Publications `json:"publications,omitempty" yaml:"publications,omitempty"`
	Awards              []Award      `json:"awards,omitempty" yaml:"awards,omitempty"`
	CommunityActivities []Activity   `json:"communityActivities,omitempty" yaml:"communityActivities,omitempty"`
	Contact             *Contact     `json:"contact,omitempty" yaml:"contact,omitempty"`

	present map[string]bool
}

type Profile struct {
	Name               string   `json:"name" yaml:"name"`
	Title              string   `json:"title" yaml:"title"`
	Bio                string   `json:"bio,omitempty" yaml:"bio,omitempty"`
	Interests          string   `json:"interests,omitempty" yaml:"interests,omitempty"`
	Office             Office   `json:"office" yaml:"office"`
	AcademicBackground []string `json:"academicBackground,omitempty" yaml:"academicBackground,omitempty"`
	Scopus             string   `json:"scopus,omitempty" yaml:"scopus,omitempty"`
	Scholar            string   `json:"scholar,omitempty" yaml:"scholar,omitempty"`
	Sinta              string   `json:"sinta,omitempty" yaml:"sinta,omitempty"`
	ORCID              string   `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	LinkedIn           string   `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub             string   `json:"github,omitempty" yaml:"github,omitempty"`
}

type Office struct {
	Faculty    string `json:"faculty,omitempty" yaml:"faculty,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
	University string `json:"university,omitempty" yaml:"university,omitempty"`
	Address    string `json:"address,omitempty" yaml:"address,omitempty"`
}

// String joins the non-empty office parts with ", ".
func (o Office) String() string {
	var parts []string
	for _, s := range []string{o.Faculty, o.Department, o.University, o.Address} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

type Project struct {
	Title       string        `json:"title" yaml:"title"`
	Year        citation.Year `json:"year,omitempty" yaml:"year,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

type Course struct {
	Name        string `json:"name" yaml:"name"`
	Semester    string `json:"semester,omitempty" yaml:"semester,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Award struct {
	Title        string        `json:"title" yaml:"title"`
	Organization string        `json:"organization,omitempty" yaml:"organization,omitempty"`
	Year         citation.Year `json:"year,omitempty" yaml:"year,omitempty"`
}

type Activity struct {
	Title string        `json:"title" yaml:"title"`
	Year  citation.Year `json:"year,omitempty" yaml:"year,omitempty"`
}

type Contact struct {
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	OfficeHours string `json:"office_hours,omitempty" yaml:"office_hours,omitempty"`
	Labs        string `json:"labs,omitempty" yaml:"labs,omitempty"`
}

// Validate checks RequiredSections. A section counts as present when its
// key appears with a non-null value, so an empty "projects": [] passes.
func (d *Document) Validate() error {
	for _, k := range RequiredSections {
		if !d.present[k] {
			return fmt.Errorf("%w: %s", ErrMissingSection, k)
		}
	}
	return nil
}

// Publications is the ordered publication list. Documents may write it as
// an array or as an object keyed by citation key; object order is kept.
type Publications []citation.Publication

func (ps *Publications) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ps = nil
		return nil
	}
	if data[0] == '[' {
		var list []citation.Publication
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("publications: %w", err)
		}
		*ps = list
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return fmt.Errorf("publications: %w", err)
	} else if tok != json.Delim('{') {
		return fmt.Errorf("publications: expected array or object, got %v", tok)
	}
	var out Publications
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("publications: %w", err)
		}
		key, _ := tok.(string)
		var p citation.Publication
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("publications[%s]: %w", key, err)
		}
		if strings.TrimSpace(p.Key) == "" {
			p.Key = key
		}
		out = append(out, p)
	}
	*ps = out
	return nil
}

func (ps *Publications) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []citation.Publication
		if err := value.Decode(&list); err != nil {
			return err
		}
		*ps = list
		return nil
	case yaml.MappingNode:
		var out Publications
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			var p citation.Publication
			if err := value.Content[i+1].Decode(&p); err != nil {
				return fmt.Errorf("publications[%s]: %w", key, err)
			}
			if strings.TrimSpace(p.Key) == "" {
				p.Key = key
			}
			out = append(out, p)
		}
		*ps = out
		return nil
	default:
		return fmt.Errorf("publications: expected sequence or mapping at line %d", value.Line)
	}
}

// Find returns the publication whose key matches, ignoring case.
func (ps Publications) Find(key string) (citation.Publication, bool) {
	key = strings.TrimSpace(key)
	for _, p := range ps {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return citation.Publication{}, false
}
