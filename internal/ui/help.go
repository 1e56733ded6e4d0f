package ui

import (
	"github.com/atomicstack/mqt/internal/format/table"
	"github.com/charmbracelet/bubbles/key"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// editingHelp lists the query editing keys handled by handleTextInput.
var editingHelp = []key.Binding{
	key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home/ctrl+a", "Start of line")),
	key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end/ctrl+e", "End of line")),
	key.NewBinding(key.WithKeys("alt+b", "alt+f"), key.WithHelp("alt+b/alt+f", "Move by word")),
	key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "Delete word")),
	key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "Clear query")),
}

func (m *Model) helpSections() []helpSection {
	k := m.keys
	return []helpSection{
		{
			title: "Results",
			bindings: []key.Binding{
				k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End,
				k.Query, k.Tree, k.Detail, k.DetailDown, k.DetailUp,
				k.Copy, k.ClearQuery, k.Help, k.Quit,
			},
		},
		{
			title: "Query",
			bindings: append([]key.Binding{
				k.Commit, k.Abort, k.HistoryPrev, k.HistoryNext,
			}, editingHelp...),
		},
		{
			title: "Tree",
			bindings: []key.Binding{
				k.Toggle, k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll,
				k.TreeExit, k.TreeQuit,
			},
		},
		{
			title:    "Anywhere",
			bindings: []key.Binding{k.ForceQuit},
		},
	}
}

// helpLines lays out every section with a shared key column width.
func (m *Model) helpLines() []styledLine {
	sections := m.helpSections()
	rows := make([][]string, 0, 48)
	for _, section := range sections {
		for _, b := range section.bindings {
			h := b.Help()
			rows = append(rows, []string{"  " + h.Key, h.Desc})
		}
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	lines := make([]styledLine, 0, len(formatted)+len(sections)*2+2)
	lines = append(lines, styledLine{text: "Keys", style: styles.Header})
	i := 0
	for _, section := range sections {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: section.title, style: styles.HelpSection})
		for range section.bindings {
			lines = append(lines, styledLine{text: formatted[i], style: styles.HelpKey})
			i++
		}
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "Press any key to return", style: styles.Footer})
	return lines
}
