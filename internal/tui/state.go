package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/firpredict/internal/config"
	"github.com/sant0-9/firpredict/internal/document"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/session"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model
	setupError       error

	// Settings state; editing is the field index being changed, -1 while browsing
	settingsCursor int
	editing        int
	choiceCursor   int
	fieldInput     textinput.Model

	// Input
	caseInput textarea.Model
	warning   string

	// Processing
	spinner     spinner.Model
	cancel      context.CancelFunc
	pendingCase string

	// Result
	result     *predict.Result
	resultView viewport.Model
	lastExport *document.Metadata
	exportErr  error

	// History
	history     *session.History
	historyView viewport.Model
	notice      string

	// Rendering
	renderer    *glamour.TermRenderer
	glamorStyle string

	// Provider
	predictor       *predict.Predictor
	providerReady   bool
	providerError   error
	processingError error
}

func newState(history *session.History) *state {
	input := textarea.New()
	input.Placeholder = "Describe the incident: who, what, where, when..."
	input.ShowLineNumbers = false
	// Case descriptions have no length or line cap
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetWidth(70)
	input.SetHeight(8)

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorSecondary)

	if history == nil {
		history = session.NewHistory()
	}

	return &state{
		caseInput:   input,
		apiKeyInput: apiKey,
		editing:     -1,
		fieldInput:  textinput.New(),
		spinner:     sp,
		history:     history,
		resultView:  viewport.New(70, 10),
		historyView: viewport.New(70, 10),
	}
}
