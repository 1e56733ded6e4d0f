package ui

import (
	"github.com/atomicstack/mqt/internal/backend"
	"github.com/atomicstack/mqt/internal/logging/events"
	uistate "github.com/atomicstack/mqt/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent installs a reloaded document. Results, snapshots and
// tree state refer to nodes of the old document, so all of them are
// replaced and the active query is evaluated again.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.errMsg = "Reload failed: " + evt.Err.Error()
		return nil
	}
	if evt.Doc == nil {
		return nil
	}
	m.doc = evt.Doc
	if exec, ok := m.pipeline.Cancel(); ok {
		events.Query.Cancel(exec.Generation, exec.Query)
	}
	m.results.Replace(rootItems(m.doc))
	m.snapshot = uistate.ResultSnapshot{Items: rootItems(m.doc)}
	// The snapshot now lists the top-level nodes, which only matches an
	// empty committed query.
	m.snapshotStale = m.mode == ModeQuery && m.savedCommitted != ""
	if m.tree != nil {
		m.tree.Reset(m.doc)
	}
	m.detail.resetScroll()
	m.setInfo("Reloaded " + m.documentName())
	text := m.committed
	if m.mode == ModeQuery && m.inputEdited {
		text = m.input.Text
	}
	if text == "" {
		return nil
	}
	return m.submitQuery(text)
}
