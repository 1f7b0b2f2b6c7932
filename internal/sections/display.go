package sections

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DisplayUnit is one rendering instruction for an interactive surface
type DisplayUnit struct {
	Emphasized bool   `json:"emphasized"`
	Label      string `json:"label,omitempty"`
	Text       string `json:"text"`
}

// String returns the unit as plain text
func (u DisplayUnit) String() string {
	if u.Emphasized {
		return u.Label + Delimiter + u.Text
	}
	return u.Text
}

// ToDisplay converts parsed lines into display units, one per line.
// Blank lines become empty plain units.
func ToDisplay(lines []Line) []DisplayUnit {
	units := make([]DisplayUnit, 0, len(lines))
	for _, l := range lines {
		if l.IsSection() {
			units = append(units, DisplayUnit{
				Emphasized: true,
				Label:      l.Label,
				Text:       l.Description,
			})
			continue
		}
		units = append(units, DisplayUnit{Text: l.Text})
	}
	return units
}

// blankUnit keeps an empty line visible; markdown collapses real blank paragraphs
const blankUnit = "\u00a0"

// Markdown renders units with the section label in bold.
// Every unit becomes its own paragraph.
func Markdown(units []DisplayUnit) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if u.Emphasized {
			b.WriteString("**" + u.Label + ":** " + u.Text)
			continue
		}
		text := strings.TrimSuffix(u.Text, "\r")
		if strings.TrimSpace(text) == "" {
			b.WriteString(blankUnit)
			continue
		}
		b.WriteString(EscapeMarkdown(text))
	}
	return b.String()
}

// EscapeMarkdown makes free text render literally as one markdown paragraph.
// Leading block markers are backslash-escaped and line breaks become hard breaks.
func EscapeMarkdown(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		l = escapeLineStart(l)
		if i < len(lines)-1 && strings.TrimSpace(l) != "" && strings.TrimSpace(lines[i+1]) != "" {
			l += "\\"
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

func escapeLineStart(l string) string {
	body := strings.TrimLeft(l, " \t")
	if body == "" {
		return l
	}
	indent := l[:len(l)-len(body)]

	switch body[0] {
	case '#', '>', '-', '+', '*', '=', '_', '|', '`', '~', '<':
		return indent + "\\" + body
	}

	// Ordered list markers: digits followed by '.' or ')'
	n := 0
	for n < len(body) && n < 9 && body[n] >= '0' && body[n] <= '9' {
		n++
	}
	if n > 0 && n < len(body) && (body[n] == '.' || body[n] == ')') {
		return indent + body[:n] + "\\" + body[n:]
	}
	return l
}

// NewRenderer creates a terminal markdown renderer.
// A zero width disables wrapping; an empty style picks one from the terminal.
func NewRenderer(width int, style string) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// Render formats units for the terminal.
// Falls back to the raw markdown when rendering fails.
func Render(units []DisplayUnit, r *glamour.TermRenderer) string {
	md := Markdown(units)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
