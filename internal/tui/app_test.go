package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/firpredict/internal/config"
	"github.com/sant0-9/firpredict/internal/llm"
	"github.com/sant0-9/firpredict/internal/llm/llmtest"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/session"
)

const reply = "Section 303: Theft\nSection 317: Receiving stolen property"

func newTestApp(t *testing.T, fake *llmtest.Provider) (*App, *session.History) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Export.Dir = t.TempDir()
	cfg.SetPath(filepath.Join(t.TempDir(), "config.yaml"))

	history := session.NewHistory()
	app := NewApp(Options{
		Config:       cfg,
		History:      history,
		GlamourStyle: "notty",
		NewProvider: func(*config.Config) (llm.Provider, error) {
			return fake, nil
		},
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	feed(app, app.connectProvider())
	return app, history
}

// feed runs cmd and sends every resulting message back into the app
func feed(app *App, cmd tea.Cmd) {
	for _, msg := range run(cmd) {
		app.Update(msg)
	}
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(app *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		msg = tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+o":
		msg = tea.KeyMsg{Type: tea.KeyCtrlO}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := app.Update(msg)
	return cmd
}

func TestAppStartsInSetupWithoutKey(t *testing.T) {
	cfg := config.DefaultConfig()
	app := NewApp(Options{Config: cfg})
	assert.Equal(t, viewSetup, app.view)

	app = NewApp(Options{})
	assert.Equal(t, viewSetup, app.view)
}

func TestAppPredictFlow(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, history := newTestApp(t, fake)
	require.True(t, app.state.providerReady)
	require.NotNil(t, app.state.predictor)

	app.state.caseInput.SetValue("My bicycle was stolen.")
	feed(app, press(app, "ctrl+s"))

	assert.Equal(t, viewResult, app.view)
	require.NotNil(t, app.state.result)
	assert.Equal(t, "My bicycle was stolen.", app.state.result.Record.Case)
	assert.Equal(t, 1, history.Len())
	assert.Contains(t, app.View(), "Prediction Complete!")
	assert.Contains(t, app.state.resultView.View(), "Section 303")
}

func TestAppKeepsLongCase(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, history := newTestApp(t, fake)

	long := strings.Repeat("x", 6000)
	app.state.caseInput.SetValue(long)
	feed(app, press(app, "ctrl+s"))

	require.Equal(t, viewResult, app.view)
	assert.Len(t, app.state.result.Record.Case, 6000)
	assert.Equal(t, long, history.Newest()[0].Case)
	assert.Contains(t, fake.LastRequest().Messages[0].Content, long)
}

func TestAppEscDoesNotAbortPrediction(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, history := newTestApp(t, fake)

	app.state.caseInput.SetValue("My bicycle was stolen.")
	pending := press(app, "ctrl+s")
	require.Equal(t, viewProcessing, app.view)

	press(app, "esc")
	assert.Equal(t, viewProcessing, app.view)

	feed(app, pending)
	assert.Equal(t, viewResult, app.view)
	assert.Equal(t, 1, history.Len())
}

func TestAppEmptyInputWarns(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, history := newTestApp(t, fake)

	app.state.caseInput.SetValue("   \n  ")
	cmd := press(app, "ctrl+s")

	assert.Nil(t, cmd)
	assert.Equal(t, viewInput, app.view)
	assert.Contains(t, app.state.warning, "Please enter a case description")
	assert.Zero(t, fake.Calls())
	assert.True(t, history.IsEmpty())
}

func TestAppPredictFailureShowsError(t *testing.T) {
	fake := &llmtest.Provider{Err: errors.New("status 429: rate limit")}
	app, history := newTestApp(t, fake)

	app.state.caseInput.SetValue("a case")
	feed(app, press(app, "ctrl+s"))

	assert.Equal(t, viewError, app.view)
	assert.ErrorIs(t, app.state.processingError, predict.ErrPredictorUnavailable)
	assert.True(t, history.IsEmpty())
	assert.Contains(t, app.View(), "rate limit")
}

func TestAppExport(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, _ := newTestApp(t, fake)

	app.state.caseInput.SetValue("My bicycle was stolen.")
	feed(app, press(app, "ctrl+s"))
	require.Equal(t, viewResult, app.view)

	feed(app, press(app, "m"))
	require.NoError(t, app.state.exportErr)
	require.NotNil(t, app.state.lastExport)
	assert.Equal(t, "FIR_Predictions.md", app.state.lastExport.FileName)

	data, err := os.ReadFile(filepath.Join(app.state.config.Export.Dir, "FIR_Predictions.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "**Section 303:** Theft")
}

func TestAppHistoryAndClear(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, history := newTestApp(t, fake)

	for _, c := range []string{"first case", "second case"} {
		app.state.caseInput.SetValue(c)
		feed(app, press(app, "ctrl+s"))
		press(app, "n")
	}
	require.Equal(t, 2, history.Len())

	press(app, "ctrl+l")
	assert.Equal(t, viewHistory, app.view)

	press(app, "x")
	assert.True(t, history.IsEmpty())
	assert.Equal(t, "History cleared successfully!", app.state.notice)

	press(app, "esc")
	assert.Equal(t, viewInput, app.view)
}

func TestSetupWizardSavesKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.SetPath(filepath.Join(t.TempDir(), "config.yaml"))
	app := NewApp(Options{Config: cfg, GlamourStyle: "notty"})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, viewSetup, app.view)
	assert.Contains(t, app.View(), "Choose the model provider")

	press(app, "enter")
	require.Equal(t, setupAPIKey, app.state.setupStep)
	assert.Contains(t, app.View(), "Enter your Gemini API key")

	app.state.apiKeyInput.SetValue("  gm-key  ")
	feed(app, press(app, "enter"))
	assert.Equal(t, viewInput, app.view)

	saved, err := config.LoadFrom(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, "gemini", saved.Provider)
	assert.Equal(t, "gm-key", saved.APIKey)
}

func TestSettingsEditFields(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	app, _ := newTestApp(t, fake)

	press(app, "ctrl+o")
	require.Equal(t, viewSettings, app.view)
	assert.Contains(t, app.View(), "Temperature")

	app.state.settingsCursor = fieldIndex("Temperature")
	press(app, "enter")
	require.Equal(t, fieldIndex("Temperature"), app.state.editing)
	assert.Equal(t, "0.2", app.state.fieldInput.Value())

	app.state.fieldInput.SetValue("5")
	press(app, "enter")
	assert.Contains(t, app.state.notice, "between 0 and 2")
	assert.InDelta(t, 0.2, app.state.config.Temperature, 0.0001)

	press(app, "enter")
	app.state.fieldInput.SetValue("0")
	feed(app, press(app, "enter"))
	assert.Equal(t, "Settings saved.", app.state.notice)

	app.state.settingsCursor = fieldIndex("Export format")
	press(app, "enter")
	require.Equal(t, 0, app.state.choiceCursor)
	press(app, "down")
	feed(app, press(app, "enter"))

	saved, err := config.LoadFrom(app.state.config.Path())
	require.NoError(t, err)
	assert.Zero(t, saved.Temperature)
	assert.Equal(t, "md", saved.Export.Format)

	press(app, "esc")
	assert.Equal(t, viewInput, app.view)
}

func TestSettingsProviderChangeAsksForKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	fake := &llmtest.Provider{Reply: reply}
	app, _ := newTestApp(t, fake)

	press(app, "ctrl+o")
	app.state.settingsCursor = fieldIndex("Provider")
	press(app, "enter")
	app.state.choiceCursor = providerIndex("openai")
	cmd := press(app, "enter")
	assert.NotNil(t, cmd)

	assert.Equal(t, "openai", app.state.config.Provider)
	assert.Equal(t, "gpt-4o-mini", app.state.config.Model)
	assert.Equal(t, fieldIndex("API key"), app.state.editing)
	assert.Contains(t, app.View(), "Enter a new API key for openai")
}

func TestHistoryMarkdown(t *testing.T) {
	assert.Equal(t, "_No predictions yet._", historyMarkdown(nil))

	h := session.NewHistory()
	h.Append(session.NewRecord("older", "Section 1: One"))
	h.Append(session.NewRecord("newer", "Section 2: Two\nplain note"))

	md := historyMarkdown(h.Newest())
	newer := strings.Index(md, "newer")
	older := strings.Index(md, "older")
	require.True(t, newer >= 0 && older >= 0)
	assert.Less(t, newer, older)

	assert.Contains(t, md, "### Case 1\n\n**Case Description:** newer")
	assert.Contains(t, md, "### Case 2\n\n**Case Description:** older")
	assert.Contains(t, md, "**Section 2:** Two\n\nplain note")

	h.Clear()
	h.Append(session.NewRecord("intro\n# not a heading", "- note"))
	md = historyMarkdown(h.Newest())
	assert.Contains(t, md, "**Case Description:** intro\\\n\\# not a heading")
	assert.Contains(t, md, "\\- note")
}

func TestErrorSuggestions(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("invalid API key"), "Check your API key"},
		{errors.New("status 429"), "rate limit"},
		{&llm.StatusError{Provider: "groq", Code: 401, Body: "nope"}, "Check your API key"},
		{errors.New("cannot connect to Ollama at http://localhost:11434"), "ollama serve"},
		{errors.New("dial tcp: connection refused"), "internet connection"},
		{predict.ErrPredictorUnavailable, "did not answer"},
	}
	for _, tt := range tests {
		got := strings.Join(errorSuggestions(tt.err), "\n")
		assert.Contains(t, got, tt.want, tt.err.Error())
	}
	assert.Empty(t, errorSuggestions(nil))
	assert.Empty(t, errorSuggestions(errors.New("odd")))
}

func TestTokenEstimates(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("abc"))
	assert.Equal(t, 1000000, getContextLimit("gemini-2.0-flash"))
	assert.Equal(t, 200000, getContextLimit("claude-sonnet-4-20250514"))
	assert.Equal(t, 8000, getContextLimit("unknown"))

	tokens, limit := caseUsage("short case", "gpt-4o-mini")
	assert.Greater(t, tokens, estimateTokens("short case"))
	assert.Equal(t, 128000, limit)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "second", firstLine("\n  \n second \nthird"))
	assert.Equal(t, "चोरी...", truncate("चोरी की घटना", 7))
}
