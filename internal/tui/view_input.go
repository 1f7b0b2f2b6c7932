package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ███████╗██╗██████╗
 ██╔════╝██║██╔══██╗
 █████╗  ██║██████╔╝
 ██╔══╝  ██║██╔══██╗
 ██║     ██║██║  ██║
 ╚═╝     ╚═╝╚═╝  ╚═╝
`

func (a *App) renderInput() string {
	var b strings.Builder

	b.WriteString(a.center(styleLogo.Render(logo)))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render("Section Predictor · Bhartiya Nyaya Sanhita, 2023")))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("Enter Case Description")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(a.boxWidth()).
		BorderForeground(colorSecondary).
		Render(a.state.caseInput.View())
	b.WriteString(a.center(inputBox))
	b.WriteString("\n")

	// Warning, provider state or size estimate
	switch {
	case a.state.warning != "":
		b.WriteString(a.center(styleWarning.Render(a.state.warning)))
	case a.state.providerError != nil:
		msg := "Provider check failed: " + truncate(a.state.providerError.Error(), 60)
		b.WriteString(a.center(lipgloss.NewStyle().Foreground(colorError).Render(msg)))
	case !a.state.providerReady:
		b.WriteString(a.center(styleSubtitle.Render("Connecting to " + a.state.config.Provider + "...")))
	default:
		tokens, limit := caseUsage(a.state.caseInput.Value(), a.state.config.Model)
		info := fmt.Sprintf("%s · %s · ~%d/%d tokens", a.state.config.Provider, a.state.config.Model, tokens, limit)
		b.WriteString(a.center(styleSubtitle.Render(info)))
	}
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Ctrl+S] Predict  [Ctrl+L] History  [Ctrl+O] Settings  [F1] Help  [Esc] Quit")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}
