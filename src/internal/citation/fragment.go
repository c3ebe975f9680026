package citation

import "strings"

// Kind is the intended emphasis of a fragment.
type Kind int

const (
	Text Kind = iota
	Emphasis
	Strong
	Link
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Emphasis:
		return "emphasis"
	case Strong:
		return "strong"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Fragment is one piece of a formatted citation. Href is set only for Link.
type Fragment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// PlainText concatenates the visible text of frags.
func PlainText(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}

// fragments accumulates output, merging runs of plain text.
type fragments []Fragment

func (fs *fragments) text(s string) {
	if s == "" {
		return
	}
	if n := len(*fs); n > 0 && (*fs)[n-1].Kind == Text {
		(*fs)[n-1].Text += s
		return
	}
	*fs = append(*fs, Fragment{Kind: Text, Text: s})
}

func (fs *fragments) add(k Kind, s string) {
	*fs = append(*fs, Fragment{Kind: k, Text: s})
}

func (fs *fragments) link(s, href string) {
	*fs = append(*fs, Fragment{Kind: Link, Text: s, Href: href})
}

func (fs fragments) endsWith(suffix string) bool {
	if len(fs) == 0 {
		return false
	}
	return strings.HasSuffix(fs[len(fs)-1].Text, suffix)
}
