package document

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sant0-9/firpredict/internal/sections"
)

// MarkdownExporter writes the report as CommonMark
type MarkdownExporter struct{}

func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

func (m *MarkdownExporter) Format() Format {
	return FormatMarkdown
}

func (m *MarkdownExporter) Export(r *Report) ([]byte, error) {
	return []byte(ToMarkdown(r)), nil
}

// ToMarkdown renders the report; blank prediction lines are skipped
// since markdown has no empty paragraph.
func ToMarkdown(r *Report) string {
	var b strings.Builder
	for _, block := range r.Blocks() {
		if block.IsHeading() {
			b.WriteString(strings.Repeat("#", block.Heading.Level))
			b.WriteString(" ")
			b.WriteString(block.Heading.Text)
			b.WriteString("\n\n")
			continue
		}

		text := markdownParagraph(*block.Paragraph)
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func markdownParagraph(p Paragraph) string {
	var b strings.Builder
	for i, run := range p.Runs {
		text := strings.TrimSuffix(run.Text, "\r")
		if run.Bold {
			// Emphasis may not end in whitespace
			trimmed := strings.TrimRight(text, " ")
			b.WriteString("**" + trimmed + "**")
			b.WriteString(text[len(trimmed):])
			continue
		}
		if i == 0 {
			text = sections.EscapeMarkdown(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// HTMLExporter renders the markdown form through goldmark
type HTMLExporter struct {
	md goldmark.Markdown
}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (h *HTMLExporter) Format() Format {
	return FormatHTML
}

func (h *HTMLExporter) Export(r *Report) ([]byte, error) {
	var content bytes.Buffer
	if err := h.md.Convert([]byte(ToMarkdown(r)), &content); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'><title>")
	b.WriteString(html.EscapeString(r.Title))
	b.WriteString("</title><style>")
	b.WriteString("body{font-family:Georgia,serif;max-width:820px;margin:2rem auto;padding:0 1rem;color:#1c1917;} ")
	b.WriteString("h1{border-bottom:2px solid #92400e;padding-bottom:.3rem;} h2{color:#78350f;} strong{color:#1e3a8a;}")
	b.WriteString("</style></head><body>")
	b.Write(content.Bytes())
	b.WriteString("</body></html>")
	return b.Bytes(), nil
}
