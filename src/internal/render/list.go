package render

import (
	"strings"
)

// ListStyle holds the classes of the publications list markup.
type ListStyle struct {
	ListClass   string
	ItemClass   string
	BulletClass string
	BodyClass   string
	Bullet      string
}

// DefaultList is the bullet list used by the portfolio sections.
var DefaultList = ListStyle{
	ListClass:   "list-minimal space-y-3 text-gray-700 leading-relaxed break-words overflow-hidden",
	ItemClass:   "flex items-start",
	BulletClass: "mr-3 text-academic-blue flex-shrink-0 font-bold",
	BodyClass:   "break-words overflow-hidden min-w-0 flex-1",
	Bullet:      "•",
}

// List wraps pre-rendered HTML items in a bullet list. Items are inserted
// as-is; callers escape them.
func List(items []string, s ListStyle) string {
	var b strings.Builder
	b.WriteString("<ul" + classAttr(s.ListClass) + ">\n")
	for _, it := range items {
		b.WriteString("  <li" + classAttr(s.ItemClass) + ">")
		if s.Bullet != "" {
			b.WriteString("<span" + classAttr(s.BulletClass) + ">" + s.Bullet + "</span>")
		}
		b.WriteString("<span" + classAttr(s.BodyClass) + ">" + it + "</span></li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
