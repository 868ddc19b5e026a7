package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Practice   key.Binding
	Game       key.Binding
	Resume     key.Binding
	Plus       key.Binding
	Minus      key.Binding
	Undo       key.Binding
	Attendance key.Binding
	Review     key.Binding
	Save       key.Binding
	Note       key.Binding
	New        key.Binding
	Delete     key.Binding
	Export     key.Binding
	ExportAll  key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab        key.Binding
	Help       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Practice: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "practice"),
	),
	Game: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "game"),
	),
	Resume: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resume"),
	),
	Plus: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "plus"),
	),
	Minus: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "minus"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Attendance: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "attendance"),
	),
	Review: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "review"),
	),
	Save: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "save & end"),
	),
	Note: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit note"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	ExportAll: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export all"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "history"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "roster"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Practice, k.Game, k.Resume, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Practice, k.Game, k.Resume},
		{k.Plus, k.Minus, k.Undo, k.Attendance, k.Review, k.Save},
		{k.New, k.Delete, k.Export, k.ExportAll, k.Tab1, k.Tab2},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
