package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/firpredict/internal/config"
)

// The first-run wizard: pick a provider, then paste its key if it needs one.
const (
	setupProvider = iota
	setupAPIKey
)

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.state.setupStep == setupAPIKey {
		switch {
		case key.Matches(msg, keys.Back):
			a.state.setupStep = setupProvider
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			return a.finishSetup(), true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Up):
		if a.state.selectedProvider > 0 {
			a.state.selectedProvider--
		}
	case key.Matches(msg, keys.Down):
		if a.state.selectedProvider < len(config.Providers)-1 {
			a.state.selectedProvider++
		}
	case key.Matches(msg, keys.Enter):
		p := config.Providers[a.state.selectedProvider]
		a.state.config.Provider = p.ID
		a.state.config.Model = p.DefaultModel
		a.state.config.APIKey = ""
		a.state.config.FillAPIKey()

		if p.NeedsAPIKey && a.state.config.APIKey == "" {
			a.state.setupStep = setupAPIKey
			a.state.apiKeyInput.Focus()
			return textinput.Blink, true
		}
		return a.finishSetup(), true
	}
	return nil, true
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) renderSetup() string {
	header := styleLogo.Render(logo)

	if a.state.setupStep == setupAPIKey {
		p := config.GetProvider(a.state.config.Provider)
		var hints []string
		if p.SignupURL != "" {
			hints = append(hints, "Get one at: "+p.SignupURL)
		}
		if len(p.EnvKeys) > 0 {
			hints = append(hints, fmt.Sprintf("or set %s in your environment or .env", p.EnvKeys[0]))
		}
		return a.screen(
			header,
			lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render("Enter your "+p.Name+" API key:"),
			styleSubtitle.Render(strings.Join(hints, "\n")),
			a.prompt(a.state.apiKeyInput.View(), colorSecondary),
			styleStatusBar.Render("[Enter] Continue  [Esc] Back"),
		)
	}

	rows := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		rows[i] = fmt.Sprintf("%-11s %s", p.Name, p.Description)
	}

	var setupErr string
	if a.state.setupError != nil {
		setupErr = lipgloss.NewStyle().Foreground(colorError).Render("Could not save config: " + a.state.setupError.Error())
	}

	return a.screen(
		header,
		lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render("Welcome! Choose the model provider for predictions:"),
		a.picker(rows, a.state.selectedProvider, nil),
		setupErr,
		styleStatusBar.Render("[Up/Down] Move  [Enter] Select  [Esc] Quit"),
	)
}
