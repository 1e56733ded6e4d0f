package ui

import (
	"github.com/atomicstack/mqt/internal/history"
	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return tea.Quit
	}
	// Errors only live until the next key press.
	m.errMsg = ""
	m.clearInfo()
	switch m.mode {
	case ModeQuery:
		return m.handleQueryKey(keyMsg)
	case ModeTree:
		return m.handleTreeKey(keyMsg)
	case ModeHelp:
		return m.handleHelpKey(keyMsg)
	default:
		return m.handleNormalKey(keyMsg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Query):
		return m.enterQueryMode()
	case key.Matches(msg, m.keys.Tree):
		return m.openTree()
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.detail.resetScroll()
		m.syncResultViewport()
		events.UI.Detail(m.showDetail)
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyResults()
	case key.Matches(msg, m.keys.Help):
		return m.openHelp()
	case key.Matches(msg, m.keys.ClearQuery):
		return m.clearQuery()
	case key.Matches(msg, m.keys.DetailUp):
		m.scrollDetail(-1)
		return nil
	case key.Matches(msg, m.keys.DetailDown):
		m.scrollDetail(1)
		return nil
	}
	m.handleResultNavigation(msg, true)
	return nil
}

func (m *Model) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		return m.commitQuery()
	case key.Matches(msg, m.keys.Abort):
		return m.abortQuery()
	case key.Matches(msg, m.keys.HistoryPrev):
		return m.navigateHistory(history.Older)
	case key.Matches(msg, m.keys.HistoryNext):
		return m.navigateHistory(history.Newer)
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		m.handleResultNavigation(msg, false)
		return nil
	}
	if handled, cmd := m.handleTextInput(msg); handled {
		return cmd
	}
	return nil
}

// handleResultNavigation moves the result cursor. Letter bindings (j/k) are
// only honoured when letters is set, so typing a query never navigates.
func (m *Model) handleResultNavigation(msg tea.KeyMsg, letters bool) bool {
	if !letters && msg.Type == tea.KeyRunes {
		return false
	}
	moved := false
	switch {
	case key.Matches(msg, m.keys.Up):
		moved = m.results.MoveBy(-1)
	case key.Matches(msg, m.keys.Down):
		moved = m.results.MoveBy(1)
	case key.Matches(msg, m.keys.PageUp):
		moved = m.results.MovePageUp()
	case key.Matches(msg, m.keys.PageDown):
		moved = m.results.MovePageDown()
	case key.Matches(msg, m.keys.Home):
		moved = m.results.MoveHome()
	case key.Matches(msg, m.keys.End):
		moved = m.results.MoveEnd()
	default:
		return false
	}
	if moved {
		m.detail.resetScroll()
		m.syncResultViewport()
		events.UI.Cursor("results", m.results.Cursor)
	}
	return true
}

func (m *Model) openHelp() tea.Cmd {
	m.helpReturn = m.mode
	m.setMode(ModeHelp)
	return nil
}

func (m *Model) handleHelpKey(tea.KeyMsg) tea.Cmd {
	m.setMode(m.helpReturn)
	return nil
}

func (m *Model) syncResultViewport() {
	m.results.EnsureVisible(m.results.Len(), m.maxVisibleItems())
}
