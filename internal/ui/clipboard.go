package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/mqt/internal/clipboard"
	"github.com/atomicstack/mqt/internal/logging"
	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/atomicstack/mqt/internal/ui/command"
	uistate "github.com/atomicstack/mqt/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type clipboardResultMsg struct {
	result clipboard.Result
	err    error
}

// copyResults exports the current result set off the update loop.
func (m *Model) copyResults() tea.Cmd {
	items := uistate.CloneResults(m.results.Items())
	doc := m.doc
	exporter := m.exporter
	return m.bus.Execute(command.Request{
		ID:    "clipboard:copy",
		Label: fmt.Sprintf("%d results", len(items)),
		Action: func() tea.Msg {
			res, err := exporter.Copy(doc, items)
			return clipboardResultMsg{result: res, err: err}
		},
	})
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	var cerr *clipboard.ClipboardError
	if errors.As(res.err, &cerr) && cerr.Op == clipboard.OpRelease {
		// The text reached the clipboard; only the session teardown failed.
		logging.Warn("clipboard release failed", "err", cerr.Err)
		res.err = nil
	}
	if res.err == nil {
		events.Clipboard.Copy(res.result.Items, res.result.Bytes)
		info := fmt.Sprintf("Copied %d results", res.result.Items)
		if res.result.Items == 1 {
			info = "Copied 1 result"
		}
		m.setInfo(info)
		events.Action.Success(info)
		return nil
	}
	if errors.Is(res.err, clipboard.ErrEmpty) {
		events.Clipboard.Empty()
		m.setInfo("Nothing to copy")
		return nil
	}
	events.Clipboard.Error(res.err)
	events.Action.Error(res.err)
	if errors.As(res.err, &cerr) && cerr.Op == clipboard.OpAccess {
		m.errMsg = "Error: Could not access clipboard"
		return nil
	}
	m.errMsg = "Error: Could not copy to clipboard"
	return nil
}
