package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sant0-9/firpredict/internal/config"
	"github.com/sant0-9/firpredict/internal/document"
	"github.com/sant0-9/firpredict/internal/llm"
	"github.com/sant0-9/firpredict/internal/logging"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/sant0-9/firpredict/internal/session"
)

type view int

const (
	viewInput view = iota
	viewSetup
	viewProcessing
	viewResult
	viewHistory
	viewSettings
	viewHelp
	viewError
)

// Options wires the app to its collaborators
type Options struct {
	// Config is the loaded configuration; nil starts the setup wizard
	Config  *config.Config
	History *session.History
	Logger  *zap.Logger
	// GlamourStyle picks the markdown theme ("dark", "light", "notty")
	GlamourStyle string
	// NewProvider builds the LLM client; defaults to llm.NewProvider
	NewProvider func(*config.Config) (llm.Provider, error)
}

type App struct {
	width    int
	height   int
	view     view
	prev     view
	state    *state
	logger   *zap.Logger
	newProv  func(*config.Config) (llm.Provider, error)
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState(opts.History)
	s.glamorStyle = opts.GlamourStyle
	if s.glamorStyle == "" {
		s.glamorStyle = "dark"
	}

	if opts.Config == nil || opts.Config.NeedsSetup() {
		s.needsSetup = true
		if opts.Config != nil {
			s.config = opts.Config
		} else {
			s.config = config.DefaultConfig()
		}
	} else {
		s.config = opts.Config
	}

	newProv := opts.NewProvider
	if newProv == nil {
		newProv = llm.NewProvider
	}

	a := &App{
		view:    viewInput,
		state:   s,
		logger:  logging.OrNop(opts.Logger).Named("tui"),
		newProv: newProv,
	}
	if s.needsSetup {
		a.view = viewSetup
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	a.state.caseInput.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textarea.Blink,
		a.connectProvider(),
	)
}

// connectProvider builds the provider from config and pings it
func (a *App) connectProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		provider, err := a.newProv(&cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			// Keep the provider; the ping failure is shown but predictions may still work
			return providerReadyMsg{provider: provider, pingErr: err}
		}
		return providerReadyMsg{provider: provider}
	}
}

func (a *App) usePredictor(provider llm.Provider) {
	cfg := a.state.config
	a.state.predictor = predict.New(provider, a.state.history, a.logger, predict.Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
	a.logger.Info("provider selected",
		zap.String("provider", provider.Name()),
		zap.String("model", cfg.Model),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupError = nil
		a.view = viewInput
		a.state.caseInput.Focus()
		return a, tea.Batch(textarea.Blink, a.connectProvider())

	case setupErrorMsg:
		a.state.setupError = msg.error
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = msg.pingErr
		a.usePredictor(msg.provider)
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.predictor = nil
		a.state.providerError = msg.error
		a.logger.Warn("provider unavailable", zap.Error(msg.error))
		return a, nil

	case predictDoneMsg:
		a.state.cancel = nil
		a.showResult(msg.result)
		return a, nil

	case predictErrorMsg:
		a.state.cancel = nil
		a.state.processingError = msg.error
		a.view = viewError
		return a, nil

	case exportDoneMsg:
		a.state.lastExport = &msg.meta
		a.state.exportErr = nil
		return a, nil

	case exportErrorMsg:
		a.state.lastExport = nil
		a.state.exportErr = msg.error
		return a, nil

	case settingsSavedMsg:
		a.state.notice = "Settings saved."
		return a, a.connectProvider()

	case settingsErrorMsg:
		a.state.notice = "Could not save settings: " + msg.Error()
		return a, nil
	}

	// Forward to the focused component
	switch a.view {
	case viewSetup:
		if a.state.setupStep == setupAPIKey {
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewSettings:
		if a.state.editing >= 0 {
			var cmd tea.Cmd
			a.state.fieldInput, cmd = a.state.fieldInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewInput:
		var cmd tea.Cmd
		a.state.caseInput, cmd = a.state.caseInput.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(tea.KeyMsg); ok {
			a.state.warning = ""
		}
	case viewProcessing:
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case viewResult:
		var cmd tea.Cmd
		a.state.resultView, cmd = a.state.resultView.Update(msg)
		cmds = append(cmds, cmd)
	case viewHistory:
		var cmd tea.Cmd
		a.state.historyView, cmd = a.state.historyView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey processes global and view keys. Unhandled keys fall through
// to the focused component.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		if a.state.cancel != nil {
			a.state.cancel()
		}
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewInput:
		return a.handleInputKey(msg)
	case viewProcessing:
		// Only quit interrupts a running prediction
		return nil, true
	case viewResult:
		return a.handleResultKey(msg)
	case viewHistory:
		return a.handleHistoryKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			return a.backToInput(), true
		}
		return nil, true
	case viewError:
		return a.handleErrorKey(msg)
	}
	return nil, false
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Predict):
		return a.submitCase(), true
	case key.Matches(msg, keys.History):
		a.openHistory()
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true
	case msg.String() == "f1":
		a.view = viewHelp
		return nil, true
	}
	return nil, false
}

// submitCase validates the textarea and starts a prediction
func (a *App) submitCase() tea.Cmd {
	caseText := a.state.caseInput.Value()
	if strings.TrimSpace(caseText) == "" {
		a.state.warning = "Please enter a case description before predicting."
		return nil
	}
	if a.state.predictor == nil {
		err := a.state.providerError
		if err == nil {
			err = errors.New("provider is still connecting")
		}
		a.state.processingError = err
		a.view = viewError
		return nil
	}

	a.state.warning = ""
	a.state.processingError = nil
	a.state.pendingCase = caseText
	a.state.caseInput.Blur()
	a.view = viewProcessing

	ctx, cancel := context.WithCancel(context.Background())
	a.state.cancel = cancel
	p := a.state.predictor

	return tea.Batch(a.state.spinner.Tick, func() tea.Msg {
		res, err := p.Predict(ctx, caseText)
		if err != nil {
			return predictErrorMsg{err}
		}
		return predictDoneMsg{res}
	})
}

func (a *App) showResult(res *predict.Result) {
	a.state.result = res
	a.state.lastExport = nil
	a.state.exportErr = nil
	a.state.resultView.SetContent(a.renderMarkdown(sections.Markdown(sections.ToDisplay(res.Lines))))
	a.state.resultView.GotoTop()
	a.view = viewResult
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.New):
		a.state.caseInput.Reset()
		return a.backToInput(), true
	case key.Matches(msg, keys.ExportDocx):
		return a.export(document.FormatDocx), true
	case key.Matches(msg, keys.ExportMD):
		return a.export(document.FormatMarkdown), true
	case key.Matches(msg, keys.ExportHTML):
		return a.export(document.FormatHTML), true
	case key.Matches(msg, keys.ShowLog):
		a.openHistory()
		return nil, true
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true
	}
	return nil, false
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		if a.prev == viewResult && a.state.result != nil {
			a.view = viewResult
			return nil, true
		}
		return a.backToInput(), true
	case key.Matches(msg, keys.Clear):
		n := a.state.history.Len()
		a.state.history.Clear()
		a.logger.Info("history cleared", zap.Int("records", n))
		a.state.notice = "History cleared successfully!"
		a.refreshHistory()
		return nil, true
	case key.Matches(msg, keys.New):
		a.state.caseInput.Reset()
		return a.backToInput(), true
	}
	return nil, false
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "r":
		a.state.caseInput.SetValue(a.state.pendingCase)
		return a.submitCase(), true
	case "s":
		a.openSettings()
		return nil, true
	case "n":
		a.state.caseInput.Reset()
		return a.backToInput(), true
	case "esc":
		return a.backToInput(), true
	}
	return nil, true
}

func (a *App) backToInput() tea.Cmd {
	a.view = viewInput
	a.state.notice = ""
	a.state.caseInput.Focus()
	return textarea.Blink
}

func (a *App) openHistory() {
	a.prev = a.view
	a.state.notice = ""
	a.refreshHistory()
	a.state.historyView.GotoTop()
	a.view = viewHistory
}

func (a *App) refreshHistory() {
	a.state.historyView.SetContent(a.renderMarkdown(historyMarkdown(a.state.history.Newest())))
}

// export writes the current result to the configured directory
func (a *App) export(format document.Format) tea.Cmd {
	res := a.state.result
	if res == nil {
		return nil
	}
	dir := a.state.config.Export.Dir
	logger := a.logger

	return func() tea.Msg {
		exporter, err := document.ExporterFor(format)
		if err != nil {
			return exportErrorMsg{err}
		}
		meta, err := document.Save(dir, exporter, document.Build(res.Record.Case, res.Lines))
		if err != nil {
			logger.Warn("export failed", zap.String("format", string(format)), zap.Error(err))
			return exportErrorMsg{err}
		}
		logger.Info("export",
			zap.String("format", string(format)),
			zap.Int64("bytes", meta.SizeBytes),
			zap.String("path", meta.Path),
		)
		return exportDoneMsg{meta}
	}
}

// renderMarkdown runs text through glamour, falling back to plain text
func (a *App) renderMarkdown(md string) string {
	if a.state.renderer == nil {
		return md
	}
	out, err := a.state.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (a *App) resize() {
	w := a.boxWidth()
	a.state.caseInput.SetWidth(w - 4)

	h := a.height - 10
	if h < 5 {
		h = 5
	}
	a.state.resultView.Width = w
	a.state.resultView.Height = h
	a.state.historyView.Width = w
	a.state.historyView.Height = h

	if r, err := sections.NewRenderer(w-4, a.state.glamorStyle); err == nil {
		a.state.renderer = r
	}
	if a.state.result != nil {
		a.state.resultView.SetContent(a.renderMarkdown(sections.Markdown(sections.ToDisplay(a.state.result.Lines))))
	}
	if a.view == viewHistory {
		a.refreshHistory()
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct {
	provider llm.Provider
	pingErr  error
}
type providerErrorMsg struct{ error }
type predictDoneMsg struct{ result *predict.Result }
type predictErrorMsg struct{ error }
type exportDoneMsg struct{ meta document.Metadata }
type exportErrorMsg struct{ error }
type settingsSavedMsg struct{}
type settingsErrorMsg struct{ error }

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewHistory:
		return a.renderHistory()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderInput()
	}
}
