package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings of every mode. Query editing keys
// (backspace, ctrl+w and friends) are handled directly by handleTextInput.
type keyMap struct {
	// Global
	ForceQuit key.Binding
	Help      key.Binding

	// Normal
	Quit        key.Binding
	Query       key.Binding
	Tree        key.Binding
	Detail      key.Binding
	Copy        key.Binding
	ClearQuery  key.Binding
	DetailUp    key.Binding
	DetailDown  key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Query input
	Commit      key.Binding
	Abort       key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding

	// Tree
	Toggle      key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	TreeExit    key.Binding
	TreeQuit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit from any mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/f1", "Show this help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "Quit"),
		),
		Query: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "Enter a query"),
		),
		Tree: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Open the document tree"),
		),
		Detail: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle the detail pane"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy results as Markdown"),
		),
		ClearQuery: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Clear the query"),
		),
		DetailUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Scroll detail up"),
		),
		DetailDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Scroll detail down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "First row"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "Last row"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Run query and return"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Discard query and return"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Older history entry"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Newer history entry"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "Expand or collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Expand or enter child"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Collapse or go to parent"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Collapse all"),
		),
		TreeExit: key.NewBinding(
			key.WithKeys("esc", "t"),
			key.WithHelp("esc/t", "Back to results"),
		),
		TreeQuit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
	}
}
