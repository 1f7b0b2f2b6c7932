package tui

import (
	"strings"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.center(styleTitle.Render("Help")))
	b.WriteString("\n\n")

	usage := []string{
		"  Type a brief case description and press Ctrl+S.",
		"  The predictor suggests relevant BNS 2023 sections",
		"  with a short description of each.",
	}
	usageBox := styleBox.Copy().
		Width(60).
		Render(strings.Join(usage, "\n"))
	b.WriteString(a.center(usageBox))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  Ctrl+S         Predict sections",
		"  Ctrl+L         Previous predictions",
		"  Ctrl+O         Settings",
		"  d / m / w      Save result as .docx / .md / .html",
		"  n              New case",
		"  x              Clear history (history view)",
		"  Esc            Go back / Quit",
		"  Ctrl+C         Quit",
	}

	b.WriteString(a.center(styleSubtitle.Render("Keyboard Shortcuts")))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(60).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(a.center(shortcutsBox))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleSubtitle.Render(disclaimer)))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}
