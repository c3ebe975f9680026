// Package render turns citation fragments into markup.
package render

import (
	"fmt"
	"html"
	"strings"

	"portfolio/src/internal/citation"
)

// Renderer converts a fragment sequence into a display string.
type Renderer interface {
	Render(frags []citation.Fragment) string
}

// Citation formats p and renders it with r.
func Citation(p citation.Publication, r Renderer) (string, error) {
	frags, err := citation.Format(p)
	if err != nil {
		return "", err
	}
	return r.Render(frags), nil
}

// ByName resolves a renderer from a --format style name.
func ByName(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "html":
		return DefaultHTML, nil
	case "text", "plain":
		return Text{}, nil
	case "markdown", "md":
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

// HTML renders fragments as inline HTML. Empty classes are omitted.
type HTML struct {
	TitleClass string
	LinkClass  string
}

// DefaultHTML matches the portfolio page styles.
var DefaultHTML = HTML{
	TitleClass: "text-yellow-700 font-bold",
	LinkClass:  "text-blue-600 hover:underline break-all",
}

// Text nodes keep their quotes; attribute values go through html.EscapeString.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (h HTML) Render(frags []citation.Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		text := textEscaper.Replace(f.Text)
		switch f.Kind {
		case citation.Strong:
			fmt.Fprintf(&b, "<span%s>%s</span>", classAttr(h.TitleClass), text)
		case citation.Emphasis:
			fmt.Fprintf(&b, "<em>%s</em>", text)
		case citation.Link:
			fmt.Fprintf(&b, `<a href="%s" target="_blank"%s>%s</a>`, html.EscapeString(f.Href), classAttr(h.LinkClass), text)
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}

func classAttr(c string) string {
	if c = strings.TrimSpace(c); c == "" {
		return ""
	}
	return ` class="` + html.EscapeString(c) + `"`
}

// Text renders the visible text only.
type Text struct{}

func (Text) Render(frags []citation.Fragment) string { return citation.PlainText(frags) }

// Markdown renders fragments as CommonMark inline markup.
type Markdown struct{}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`",
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`,
)

func (Markdown) Render(frags []citation.Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		text := mdEscaper.Replace(f.Text)
		switch f.Kind {
		case citation.Strong:
			b.WriteString("**" + text + "**")
		case citation.Emphasis:
			b.WriteString("*" + text + "*")
		case citation.Link:
			href := strings.NewReplacer("(", "%28", ")", "%29", " ", "%20").Replace(f.Href)
			fmt.Fprintf(&b, "[%s](%s)", text, href)
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
