package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/sant0-9/firpredict/internal/session"
)

// historyMarkdown renders records in the order given, numbered from 1
func historyMarkdown(records []session.Record) string {
	if len(records) == 0 {
		return "_No predictions yet._"
	}

	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "### Case %d\n\n", i+1)
		fmt.Fprintf(&b, "**Case Description:** %s\n\n", sections.EscapeMarkdown(r.Case))
		b.WriteString("**Predicted Sections & Descriptions:**\n\n")
		b.WriteString(sections.Markdown(sections.ToDisplay(sections.Parse(r.Reply))))
	}
	return b.String()
}
