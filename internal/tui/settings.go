package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/firpredict/internal/config"
	"github.com/sant0-9/firpredict/internal/document"
)

type fieldKind int

const (
	fieldChoice fieldKind = iota
	fieldText
	fieldSecret
)

// settingField is one editable row of the settings screen
type settingField struct {
	label string
	kind  fieldKind
	show  func(*config.Config) string
	// choices lists the options of a choice field; none means free text
	choices func(*config.Config) []string
	set     func(*config.Config, string) error
}

var settingFields = []settingField{
	{
		label:   "Provider",
		kind:    fieldChoice,
		show:    func(c *config.Config) string { return c.Provider },
		choices: func(*config.Config) []string { return providerIDs() },
		set: func(c *config.Config, v string) error {
			if v == c.Provider {
				return nil
			}
			p := config.GetProvider(v)
			if p == nil {
				return fmt.Errorf("unknown provider: %s", v)
			}
			c.Provider = p.ID
			c.Model = p.DefaultModel
			c.APIKey = ""
			c.FillAPIKey()
			return nil
		},
	},
	{
		label: "Model",
		kind:  fieldChoice,
		show:  func(c *config.Config) string { return c.Model },
		choices: func(c *config.Config) []string {
			if p := config.GetProvider(c.Provider); p != nil {
				return p.Models
			}
			return nil
		},
		set: func(c *config.Config, v string) error {
			if v == "" {
				return fmt.Errorf("model cannot be empty")
			}
			c.Model = v
			return nil
		},
	},
	{
		label: "API key",
		kind:  fieldSecret,
		show:  func(c *config.Config) string { return c.MaskedAPIKey() },
		set: func(c *config.Config, v string) error {
			c.APIKey = v
			return nil
		},
	},
	{
		label: "Base URL",
		kind:  fieldText,
		show:  func(c *config.Config) string { return c.BaseURL },
		set: func(c *config.Config, v string) error {
			c.BaseURL = v
			return nil
		},
	},
	{
		label: "Temperature",
		kind:  fieldText,
		show:  func(c *config.Config) string { return strconv.FormatFloat(c.Temperature, 'g', -1, 64) },
		set: func(c *config.Config, v string) error {
			t, err := strconv.ParseFloat(v, 64)
			if err != nil || t < 0 || t > 2 {
				return fmt.Errorf("temperature must be a number between 0 and 2")
			}
			c.Temperature = t
			return nil
		},
	},
	{
		label: "Max tokens",
		kind:  fieldText,
		show:  func(c *config.Config) string { return strconv.Itoa(c.MaxTokens) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("max tokens must be a positive whole number")
			}
			c.MaxTokens = n
			return nil
		},
	},
	{
		label: "Export dir",
		kind:  fieldText,
		show:  func(c *config.Config) string { return c.Export.Dir },
		set: func(c *config.Config, v string) error {
			if v == "" {
				v = "."
			}
			c.Export.Dir = v
			return nil
		},
	},
	{
		label: "Export format",
		kind:  fieldChoice,
		show:  func(c *config.Config) string { return c.Export.Format },
		choices: func(*config.Config) []string {
			out := make([]string, len(document.Formats))
			for i, f := range document.Formats {
				out[i] = string(f)
			}
			return out
		},
		set: func(c *config.Config, v string) error {
			f, err := document.ParseFormat(v)
			if err != nil {
				return err
			}
			c.Export.Format = string(f)
			return nil
		},
	},
}

func providerIDs() []string {
	ids := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		ids[i] = p.ID
	}
	return ids
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func (a *App) openSettings() {
	a.state.settingsCursor = 0
	a.state.editing = -1
	a.state.notice = ""
	a.state.caseInput.Blur()
	a.view = viewSettings
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.state.editing >= 0 {
		return a.handleFieldEdit(msg)
	}

	switch {
	case key.Matches(msg, keys.Back):
		return a.backToInput(), true
	case key.Matches(msg, keys.Up):
		if a.state.settingsCursor > 0 {
			a.state.settingsCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsCursor < len(settingFields)-1 {
			a.state.settingsCursor++
		}
	case key.Matches(msg, keys.Enter):
		return a.editField(a.state.settingsCursor), true
	case msg.String() == "r":
		a.state.needsSetup = true
		a.state.setupStep = 0
		a.state.selectedProvider = providerIndex(a.state.config.Provider)
		a.view = viewSetup
	}
	return nil, true
}

// editField opens field i as a picker or a text prompt
func (a *App) editField(i int) tea.Cmd {
	f := settingFields[i]
	a.state.editing = i
	a.state.notice = ""

	if opts := a.fieldChoices(f); len(opts) > 0 {
		a.state.choiceCursor = 0
		current := f.show(a.state.config)
		for j, o := range opts {
			if o == current {
				a.state.choiceCursor = j
			}
		}
		return nil
	}

	in := &a.state.fieldInput
	in.Reset()
	in.EchoMode = textinput.EchoNormal
	if f.kind == fieldSecret {
		in.EchoMode = textinput.EchoPassword
	} else {
		in.SetValue(f.show(a.state.config))
		in.CursorEnd()
	}
	in.Focus()
	return textinput.Blink
}

func (a *App) fieldChoices(f settingField) []string {
	if f.kind != fieldChoice || f.choices == nil {
		return nil
	}
	return f.choices(a.state.config)
}

func (a *App) handleFieldEdit(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := settingFields[a.state.editing]
	opts := a.fieldChoices(f)

	switch {
	case key.Matches(msg, keys.Back):
		a.stopEditing()
		return nil, true
	case key.Matches(msg, keys.Enter):
		v := strings.TrimSpace(a.state.fieldInput.Value())
		if len(opts) > 0 {
			v = opts[a.state.choiceCursor]
		}
		a.stopEditing()
		if f.kind == fieldSecret && v == "" {
			return nil, true
		}
		if err := f.set(a.state.config, v); err != nil {
			a.state.notice = err.Error()
			return nil, true
		}
		if f.label == "Provider" {
			if p := config.GetProvider(v); p != nil && p.NeedsAPIKey && a.state.config.APIKey == "" {
				// New provider without a key: prompt for it before saving
				return a.editField(fieldIndex("API key")), true
			}
		}
		return a.saveSettings(), true
	}

	if len(opts) == 0 {
		return nil, false
	}
	switch {
	case key.Matches(msg, keys.Up):
		if a.state.choiceCursor > 0 {
			a.state.choiceCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.choiceCursor < len(opts)-1 {
			a.state.choiceCursor++
		}
	}
	return nil, true
}

func (a *App) stopEditing() {
	a.state.editing = -1
	a.state.fieldInput.Reset()
	a.state.fieldInput.Blur()
}

func fieldIndex(label string) int {
	for i, f := range settingFields {
		if f.label == label {
			return i
		}
	}
	return 0
}

func (a *App) saveSettings() tea.Cmd {
	cfg := a.state.config
	a.state.providerReady = false
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return settingsErrorMsg{err}
		}
		return settingsSavedMsg{}
	}
}

func (a *App) renderSettings() string {
	if a.state.editing >= 0 {
		return a.renderFieldEdit()
	}

	rows := make([]string, len(settingFields))
	for i, f := range settingFields {
		rows[i] = fmt.Sprintf("%-14s %s", f.label, f.show(a.state.config))
	}

	var notice string
	if a.state.notice != "" {
		notice = styleSuccess.Render(a.state.notice)
	}

	return a.screen(
		styleTitle.Render("Settings"),
		styleSubtitle.Render("Saved to "+a.state.config.Path()),
		a.picker(rows, a.state.settingsCursor, nil),
		notice,
		styleStatusBar.Render("[Up/Down] Move  [Enter] Edit  [r] Rerun setup  [Esc] Back"),
	)
}

func (a *App) renderFieldEdit() string {
	f := settingFields[a.state.editing]
	title := styleTitle.Render("Edit " + f.label)

	if opts := a.fieldChoices(f); len(opts) > 0 {
		current := f.show(a.state.config)
		return a.screen(
			title,
			a.picker(opts, a.state.choiceCursor, func(i int) string {
				if opts[i] == current {
					return " (current)"
				}
				return ""
			}),
			styleStatusBar.Render("[Up/Down] Move  [Enter] Choose  [Esc] Cancel"),
		)
	}

	hint := "Current: " + f.show(a.state.config)
	if f.kind == fieldSecret {
		hint = "Enter a new API key for " + a.state.config.Provider
	}
	return a.screen(
		title,
		styleSubtitle.Render(hint),
		a.prompt(a.state.fieldInput.View(), colorPrimary),
		styleStatusBar.Render("[Enter] Save  [Esc] Cancel"),
	)
}

// picker draws a list with a cursor; suffix may annotate entries
func (a *App) picker(items []string, cursor int, suffix func(int) string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		line := "  " + item
		if suffix != nil {
			line += suffix(i)
		}
		if i == cursor {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("> " + line[2:])
		}
		lines[i] = line
	}
	return styleBox.Copy().Width(min(70, a.boxWidth())).Render(strings.Join(lines, "\n"))
}

func (a *App) prompt(input string, border lipgloss.Color) string {
	return styleBox.Copy().Width(min(60, a.boxWidth())).BorderForeground(border).Render(input)
}

// screen centers the non-empty blocks one above the other
func (a *App) screen(blocks ...string) string {
	var parts []string
	for _, blk := range blocks {
		if blk != "" {
			parts = append(parts, a.center(blk))
		}
	}
	return a.centerVertically(strings.Join(parts, "\n\n"))
}
