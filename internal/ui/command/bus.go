// Package command runs off-thread session work with trace logging.
package command

import (
	"fmt"

	"github.com/atomicstack/mqt/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Action performs the work of a request and returns the message reporting
// its outcome. A nil message means there is nothing to report.
type Action func() tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID     string
	Label  string
	Action Action
}

// Bus coordinates the execution of session actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Action == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Action()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
