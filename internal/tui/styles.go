package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate cuts s to at most n runes, ending in "..." when shortened
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// firstLine returns the first non-blank line of s
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

const disclaimer = "Note: AI-generated predictions. Verify with a legal professional."

// Palette follows the exported HTML report: amber headings, navy section labels
var (
	colorPrimary   = lipgloss.Color("#B45309")
	colorSecondary = lipgloss.Color("#1E3A8A")
	colorSuccess   = lipgloss.Color("#15803D")
	colorWarning   = lipgloss.Color("#CA8A04")
	colorError     = lipgloss.Color("#B91C1C")
	colorMuted     = lipgloss.Color("#78716C")
	colorWhite     = lipgloss.Color("#FAFAF9")

	styleLogo      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleTitle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSubtitle  = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusBar = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleWarning   = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleSuccess   = lipgloss.NewStyle().Foreground(colorSuccess)
	styleBox       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}

// center places a rendered block in the middle of the screen width
func (a *App) center(s string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

// boxWidth is the content width shared by the main views
func (a *App) boxWidth() int {
	w := a.width - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}
