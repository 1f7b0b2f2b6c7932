package sections

import (
	"fmt"
	"strings"
)

const (
	// Marker every section line starts with
	Marker = "Section"
	// Delimiter between the section label and its description
	Delimiter = ": "
)

// Kind classifies a reply line
type Kind int

const (
	KindText Kind = iota
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	default:
		return "text"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "section":
		*k = KindSection
	case "text":
		*k = KindText
	default:
		return fmt.Errorf("unknown line kind %q", b)
	}
	return nil
}

// Line is one line of a model reply.
// Text always holds the original line; Label and Description are only
// set for section lines.
type Line struct {
	Kind        Kind   `json:"kind"`
	Text        string `json:"text"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsSection reports whether the line is a section entry
func (l Line) IsSection() bool {
	return l.Kind == KindSection
}

// Parse splits a raw reply into classified lines, keeping their order.
// An empty reply yields no lines.
func Parse(raw string) []Line {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, "\n")
	lines := make([]Line, 0, len(parts))
	for _, text := range parts {
		lines = append(lines, classify(text))
	}
	return lines
}

func classify(text string) Line {
	line := Line{Kind: KindText, Text: text}

	// CRLF replies keep their \r in Text only
	body := strings.TrimSuffix(text, "\r")
	if !strings.HasPrefix(body, Marker) {
		return line
	}

	// Exactly two parts, like a plain split on the delimiter
	if strings.Count(body, Delimiter) != 1 {
		return line
	}
	label, description, _ := strings.Cut(body, Delimiter)
	if label == "" || description == "" {
		return line
	}

	line.Kind = KindSection
	line.Label = label
	line.Description = description
	return line
}

// Join rebuilds the raw reply from parsed lines
func Join(lines []Line) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// Sections returns only the section entries
func Sections(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.IsSection() {
			out = append(out, l)
		}
	}
	return out
}
