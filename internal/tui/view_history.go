package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderHistory() string {
	var b strings.Builder

	title := styleTitle.Render("Previous Predictions")
	b.WriteString(a.center(title))
	b.WriteString("\n")

	count := a.state.history.Len()
	info := fmt.Sprintf("%d prediction(s), newest first", count)
	b.WriteString(a.center(styleSubtitle.Render(info)))
	b.WriteString("\n\n")

	box := styleBox.Copy().
		Width(a.boxWidth()).
		Render(a.state.historyView.View())
	b.WriteString(a.center(box))
	b.WriteString("\n")

	if a.state.notice != "" {
		b.WriteString(a.center(styleSuccess.Render(a.state.notice)))
	}
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Up/Down] Scroll  [x] Clear history  [n] New case  [Esc] Back")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}
