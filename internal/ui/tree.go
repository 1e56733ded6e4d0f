package ui

import (
	"strings"

	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/atomicstack/mqt/internal/theme"
	uistate "github.com/atomicstack/mqt/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	treeBranch   = "├── "
	treeLast     = "└── "
	treeGuide    = "│   "
	treeBlank    = "    "
	treeOpen     = "▾ "
	treeClosed   = "▸ "
	treeLeafMark = "• "
)

// openTree builds the tree projection the first time it is needed. Later
// visits keep the expansion state until the document is reloaded.
func (m *Model) openTree() tea.Cmd {
	if m.tree == nil || m.tree.Document() != m.doc {
		m.tree = uistate.NewTreeView(m.doc)
	}
	m.syncTreeViewport()
	events.Tree.Open(m.tree.Len())
	m.setMode(ModeTree)
	return nil
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) tea.Cmd {
	if m.tree == nil {
		m.setMode(ModeNormal)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.TreeQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.TreeExit):
		m.setMode(ModeNormal)
		return nil
	case key.Matches(msg, m.keys.Help):
		return m.openHelp()
	case key.Matches(msg, m.keys.Toggle):
		if m.tree.Toggle() {
			m.traceToggle()
		}
	case key.Matches(msg, m.keys.Expand):
		if m.tree.Expand() {
			m.traceToggle()
		}
	case key.Matches(msg, m.keys.Collapse):
		if m.tree.Collapse() {
			m.traceToggle()
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.tree.ExpandAll()
		events.Tree.ExpandAll(m.tree.Len())
	case key.Matches(msg, m.keys.CollapseAll):
		m.tree.CollapseAll()
		events.Tree.CollapseAll(m.tree.Len())
	case key.Matches(msg, m.keys.Up):
		m.tree.MoveBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.tree.MoveBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.tree.MovePageUp(m.results.PageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.tree.MovePageDown(m.results.PageSize())
	case key.Matches(msg, m.keys.Home):
		m.tree.MoveHome()
	case key.Matches(msg, m.keys.End):
		m.tree.MoveEnd()
	default:
		return nil
	}
	m.syncTreeViewport()
	events.UI.Cursor("tree", m.tree.Cursor)
	return nil
}

func (m *Model) traceToggle() {
	id, ok := m.tree.Selected()
	if !ok {
		return
	}
	events.Tree.Toggle(int(id), m.tree.IsExpanded(id), m.tree.Len())
}

func (m *Model) syncTreeViewport() {
	if m.tree == nil {
		return
	}
	m.tree.EnsureVisible(m.tree.Len(), m.maxVisibleItems())
}

// treePrefix renders the guides, branch and expand marker of a row.
func treePrefix(row uistate.TreeRow) string {
	var b strings.Builder
	if row.Depth > 0 {
		for _, open := range row.Guides {
			if open {
				b.WriteString(treeGuide)
			} else {
				b.WriteString(treeBlank)
			}
		}
		if row.Last {
			b.WriteString(treeLast)
		} else {
			b.WriteString(treeBranch)
		}
	}
	switch {
	case !row.HasKids:
		b.WriteString(treeLeafMark)
	case row.Expanded:
		b.WriteString(treeOpen)
	default:
		b.WriteString(treeClosed)
	}
	return b.String()
}

// treeLabel is the text shown for a row: the tree prefix followed by the
// node summary.
func (m *Model) treeLabel(row uistate.TreeRow) string {
	return treePrefix(row) + m.doc.Summary(row.ID)
}

func (m *Model) treeLines(width int) []styledLine {
	if m.tree == nil || m.tree.Len() == 0 {
		return []styledLine{{text: "(empty document)", style: styles.Info}}
	}
	rows, start := m.tree.Visible(m.maxVisibleItems())
	lines := make([]styledLine, 0, len(rows))
	for i, row := range rows {
		idx := start + i
		prefix := treePrefix(row)
		kindStyle := styles.Item
		if n := m.doc.Node(row.ID); n != nil {
			kindStyle = theme.Kind(n.Kind)
		}
		text := m.treeLabel(row)
		line := styledLine{
			text:          text,
			style:         kindStyle,
			prefixStyle:   styles.TreeGuide,
			highlightFrom: len([]rune(prefix)),
		}
		if idx == m.tree.Cursor {
			line.style = styles.SelectedItem
			line.prefixStyle = styles.SelectedItemIndicator
			line.text = padText(text, width)
		}
		lines = append(lines, line)
	}
	return lines
}
