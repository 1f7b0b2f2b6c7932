package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/firpredict/internal/sections"
)

func (a *App) renderResult() string {
	var b strings.Builder
	res := a.state.result

	title := styleSuccess.Bold(true).Render("Prediction Complete!")
	b.WriteString(a.center(title))
	b.WriteString("\n")

	n := len(sections.Sections(res.Lines))
	summary := fmt.Sprintf("%d section(s) · %s", n, res.Record.Model)
	if res.Usage.TotalTokens > 0 {
		summary += fmt.Sprintf(" · %d tokens", res.Usage.TotalTokens)
	}
	b.WriteString(a.center(styleSubtitle.Render(summary)))
	b.WriteString("\n\n")

	resultBox := styleBox.Copy().
		Width(a.boxWidth()).
		BorderForeground(colorPrimary).
		Render(a.state.resultView.View())
	b.WriteString(a.center(resultBox))
	b.WriteString("\n")

	switch {
	case a.state.exportErr != nil:
		msg := "Export failed: " + truncate(a.state.exportErr.Error(), 60)
		b.WriteString(a.center(lipgloss.NewStyle().Foreground(colorError).Render(msg)))
	case a.state.lastExport != nil:
		m := a.state.lastExport
		b.WriteString(a.center(styleSuccess.Render(fmt.Sprintf("Saved %s (%s)", m.Path, m.FileSizeHuman()))))
	default:
		b.WriteString(a.center(styleSubtitle.Render(disclaimer)))
	}
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[d] .docx  [m] .md  [w] .html  [h] History  [n] New case  [Esc] Back")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}
