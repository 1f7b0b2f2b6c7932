package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Help     key.Binding
	Enter    key.Binding
	Up       key.Binding
	Down     key.Binding
	Predict  key.Binding
	History  key.Binding
	Settings key.Binding

	// Result and history views
	New        key.Binding
	ExportDocx key.Binding
	ExportMD   key.Binding
	ExportHTML key.Binding
	ShowLog    key.Binding
	Clear      key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Predict: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "predict sections"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "history"),
	),
	Settings: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "settings"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new case"),
	),
	ExportDocx: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "save .docx"),
	),
	ExportMD: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "save .md"),
	),
	ExportHTML: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save .html"),
	),
	ShowLog: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "history"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear history"),
	),
}
