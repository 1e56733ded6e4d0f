package ui

import (
	"errors"

	"github.com/atomicstack/mqt/internal/engine"
	"github.com/atomicstack/mqt/internal/history"
	"github.com/atomicstack/mqt/internal/logging"
	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/atomicstack/mqt/internal/query"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) submitQuery(text string) tea.Cmd {
	m.inputDirty = false
	cmd := m.pipeline.Submit(text, m.doc)
	events.Query.Submit(m.pipeline.Generation(), text, m.pipeline.Delay())
	return cmd
}

// enterQueryMode snapshots the results so esc can restore them.
func (m *Model) enterQueryMode() tea.Cmd {
	m.snapshot = m.results.Snapshot()
	m.savedCommitted = m.committed
	// A committed query still waiting on its result has not reached the
	// snapshot yet.
	m.snapshotStale = m.pipeline.Pending()
	before := m.input.Pos()
	m.input.Clear()
	m.noteFilterCursorChange(before)
	m.inputDirty = false
	m.inputEdited = false
	m.history.Reset()
	m.setMode(ModeQuery)
	m.filterCursorDirty = true
	return nil
}

func (m *Model) commitQuery() tea.Cmd {
	text := m.input.Text
	if text == "" && !m.inputEdited {
		// Nothing was typed; the committed query and its results stand.
		events.Input.Commit(m.committed)
		m.input.Set(m.committed)
		m.setMode(ModeNormal)
		if !m.snapshotStale {
			return nil
		}
		m.snapshotStale = false
		return m.submitQuery(m.committed)
	}
	added := m.history.Record(text)
	events.History.Record(text, added)
	events.Input.Commit(text)
	m.committed = text
	m.snapshotStale = false
	var cmd tea.Cmd
	if m.inputDirty {
		cmd = m.submitQuery(text)
	}
	m.setMode(ModeNormal)
	return cmd
}

func (m *Model) abortQuery() tea.Cmd {
	if exec, ok := m.pipeline.Cancel(); ok {
		events.Query.Cancel(exec.Generation, exec.Query)
	}
	events.Input.Abort(m.input.Text)
	m.results.Restore(m.snapshot)
	m.snapshot = m.results.Snapshot()
	m.committed = m.savedCommitted
	m.input.Set(m.committed)
	m.inputDirty = false
	m.history.Reset()
	m.errMsg = ""
	m.detail.resetScroll()
	m.setMode(ModeNormal)
	if !m.snapshotStale {
		return nil
	}
	m.snapshotStale = false
	return m.submitQuery(m.committed)
}

// navigateHistory replaces the buffer with a history entry. The recalled
// query is only evaluated on the next edit or on enter.
func (m *Model) navigateHistory(dir history.Direction) tea.Cmd {
	text, moved := m.history.Navigate(dir, m.input.Text)
	if !moved {
		return nil
	}
	before := m.input.Pos()
	m.input.Set(text)
	m.noteFilterCursorChange(before)
	m.inputDirty = true
	m.inputEdited = true
	events.History.Navigate(dir.String(), text)
	return nil
}

func (m *Model) clearQuery() tea.Cmd {
	m.committed = ""
	m.input.Clear()
	m.errMsg = ""
	return m.submitQuery("")
}

func (m *Model) handleDispatchMsg(msg tea.Msg) tea.Cmd {
	dispatch, ok := msg.(query.DispatchMsg)
	if !ok {
		return nil
	}
	cmd := m.pipeline.Dispatch(dispatch)
	if cmd != nil {
		events.Query.Dispatch(dispatch.Generation)
	}
	return cmd
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(query.ResultMsg)
	if !ok {
		return nil
	}
	exec, accepted := m.pipeline.Accept(result)
	if !accepted {
		events.Query.Stale(exec.Generation, m.pipeline.Generation())
		return nil
	}
	events.Query.Result(exec.Generation, exec.State.String(), len(exec.Items), exec.Elapsed)
	if exec.Err != nil {
		events.Query.Error(exec.Generation, exec.Err)
		m.errMsg = "Query error: " + queryErrorText(exec.Err)
		return nil
	}
	m.errMsg = ""
	m.results.Replace(exec.Items)
	m.detail.resetScroll()
	m.syncResultViewport()
	return nil
}

// queryErrorText returns the message of a query failure. Anything other than
// a compile or evaluation error is unexpected and also goes to the log.
func queryErrorText(err error) string {
	var qerr *engine.QueryError
	if errors.As(err, &qerr) {
		return qerr.Error()
	}
	logging.Error(err)
	return err.Error()
}
