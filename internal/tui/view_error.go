package tui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/firpredict/internal/llm"
	"github.com/sant0-9/firpredict/internal/predict"
)

func (a *App) renderError() string {
	err := a.state.processingError
	if err == nil {
		err = a.state.providerError
	}
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}

	var hints string
	if s := errorSuggestions(err); len(s) > 0 {
		hints = styleBox.Copy().
			Width(min(60, a.boxWidth())).
			Render("What to try:\n" + strings.Join(s, "\n"))
	}

	return a.screen(
		lipgloss.NewStyle().Foreground(colorError).Bold(true).Render("Prediction failed"),
		styleBox.Copy().Width(min(60, a.boxWidth())).BorderForeground(colorError).Render(msg),
		hints,
		styleSubtitle.Render("Your history was not changed."),
		styleStatusBar.Render("[r] Retry  [s] Settings  [n] New  [Esc] Back"),
	)
}

// errorHint pairs a failure pattern with next steps; the first match wins
type errorHint struct {
	status   int
	contains []string
	hints    []string
}

var errorHints = []errorHint{
	{
		status:   http.StatusUnauthorized,
		contains: []string{"api key", "unauthorized", "permission"},
		hints:    []string{"Check your API key in ~/.config/firpredict/config.yaml", "Or press [s] to open settings"},
	},
	{
		status:   http.StatusTooManyRequests,
		contains: []string{"rate limit", "429", "quota", "resource_exhausted"},
		hints:    []string{"The provider's rate limit was reached", "Wait a moment and try again"},
	},
	{
		contains: []string{"ollama"},
		hints:    []string{"Make sure Ollama is running: ollama serve", "Or switch to a cloud provider in settings"},
	},
	{
		contains: []string{"connect", "timeout", "deadline"},
		hints:    []string{"Check your internet connection", "Or try using Ollama for offline mode"},
	},
}

// errorSuggestions maps common failures to next steps
func errorSuggestions(err error) []string {
	if err == nil {
		return nil
	}
	text := strings.ToLower(err.Error())

	var status *llm.StatusError
	hasStatus := errors.As(err, &status)

	for _, h := range errorHints {
		if hasStatus && h.status != 0 && status.Code == h.status {
			return h.hints
		}
		for _, c := range h.contains {
			if strings.Contains(text, c) {
				return h.hints
			}
		}
	}

	if errors.Is(err, predict.ErrPredictorUnavailable) {
		return []string{"The model service did not answer", "Press [r] to try again"}
	}
	return nil
}
