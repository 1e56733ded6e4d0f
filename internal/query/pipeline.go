// Package query runs queries for the interactive session. Every submission
// gets a generation number; results from older generations are dropped when
// they arrive, so slow evaluations never overwrite newer ones.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/mqt/internal/document"
	tea "github.com/charmbracelet/bubbletea"
)

// State is the lifecycle stage of an execution.
type State int

const (
	StatePending State = iota
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Execution is one evaluation of a query string.
type Execution struct {
	Query      string
	Generation uint64
	State      State
	Items      []ResultItem
	Err        error
	Elapsed    time.Duration
}

// DispatchMsg fires once the debounce delay of a submission has elapsed.
type DispatchMsg struct {
	Generation uint64
}

// ResultMsg carries a finished execution back to the session.
type ResultMsg struct {
	Execution Execution
}

// Pipeline coordinates debounced, generation-stamped query evaluation. It is
// owned by the session and must only be used from its update loop; the
// commands it returns are the only parts that run elsewhere.
type Pipeline struct {
	eval  Evaluator
	delay time.Duration

	generation uint64
	active     *Execution
	doc        *document.Document
	cancel     context.CancelFunc
	last       Execution
}

// New returns a pipeline that defers dispatch by delay after each submission.
func New(eval Evaluator, delay time.Duration) *Pipeline {
	if delay < 0 {
		delay = 0
	}
	return &Pipeline{eval: eval, delay: delay}
}

// Submit starts a new execution of text against doc and supersedes any
// earlier one. The returned command either waits for the debounce delay or,
// with no delay, evaluates immediately.
func (p *Pipeline) Submit(text string, doc *document.Document) tea.Cmd {
	p.stop()
	p.generation++
	p.active = &Execution{Query: text, Generation: p.generation, State: StatePending}
	p.doc = doc
	if p.delay == 0 {
		return p.start()
	}
	gen := p.generation
	return tea.Tick(p.delay, func(time.Time) tea.Msg {
		return DispatchMsg{Generation: gen}
	})
}

// Dispatch begins evaluation once a debounce delay has elapsed. Superseded
// generations return nil; the newer submission dispatches on its own.
func (p *Pipeline) Dispatch(msg DispatchMsg) tea.Cmd {
	if p.active == nil || p.active.Generation != msg.Generation || p.cancel != nil {
		return nil
	}
	return p.start()
}

func (p *Pipeline) start() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	exec := *p.active
	eval := p.eval
	doc := p.doc
	return func() tea.Msg {
		started := time.Now()
		items, err := eval.Evaluate(ctx, exec.Query, doc)
		exec.Elapsed = time.Since(started)
		switch {
		case errors.Is(err, context.Canceled):
			exec.State = StateCancelled
		case err != nil:
			exec.State = StateFailed
			exec.Err = err
		default:
			exec.State = StateCompleted
			exec.Items = items
		}
		return ResultMsg{Execution: exec}
	}
}

// Accept reports whether msg belongs to the active generation. Stale and
// cancelled executions return false and must be discarded by the caller.
func (p *Pipeline) Accept(msg ResultMsg) (Execution, bool) {
	exec := msg.Execution
	if p.active == nil || exec.Generation != p.active.Generation || exec.State == StateCancelled {
		return exec, false
	}
	p.stop()
	p.active = nil
	p.last = exec
	return exec, true
}

// Cancel abandons the active execution. Its result, if it still arrives, is
// discarded by Accept.
func (p *Pipeline) Cancel() (Execution, bool) {
	if p.active == nil {
		return Execution{}, false
	}
	p.stop()
	exec := *p.active
	exec.State = StateCancelled
	p.active = nil
	p.generation++
	return exec, true
}

func (p *Pipeline) stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Pending reports whether an execution is waiting for dispatch or results.
func (p *Pipeline) Pending() bool {
	return p.active != nil
}

// Generation returns the most recently issued generation.
func (p *Pipeline) Generation() uint64 {
	return p.generation
}

// Last returns the most recently accepted execution.
func (p *Pipeline) Last() Execution {
	return p.last
}

// Delay reports the debounce delay.
func (p *Pipeline) Delay() time.Duration {
	return p.delay
}
