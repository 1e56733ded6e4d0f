package testutil

import (
	"context"
	"sync"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/query"
)

// GatedEvaluator wraps the real engine and lets tests hold specific queries
// until released, simulating slow evaluations.
type GatedEvaluator struct {
	inner query.Evaluator
	// IgnoreCancel makes held evaluations finish normally even when their
	// context is cancelled, like an evaluator without cancellation support.
	IgnoreCancel bool

	mu    sync.Mutex
	gates map[string]chan struct{}
	calls []string
}

// NewGatedEvaluator returns an evaluator backed by the query engine.
func NewGatedEvaluator() *GatedEvaluator {
	return &GatedEvaluator{
		inner: query.NewEngineEvaluator(),
		gates: make(map[string]chan struct{}),
	}
}

// Hold blocks future evaluations of q until Release is called.
func (g *GatedEvaluator) Hold(q string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gates[q] = make(chan struct{})
}

// Release unblocks evaluations of q.
func (g *GatedEvaluator) Release(q string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gate, ok := g.gates[q]; ok {
		close(gate)
		delete(g.gates, q)
	}
}

// Calls returns the queries evaluated so far, in call order.
func (g *GatedEvaluator) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// Evaluate implements query.Evaluator.
func (g *GatedEvaluator) Evaluate(ctx context.Context, q string, doc *document.Document) ([]query.ResultItem, error) {
	g.mu.Lock()
	g.calls = append(g.calls, q)
	gate := g.gates[q]
	g.mu.Unlock()
	if gate != nil {
		if g.IgnoreCancel {
			<-gate
			ctx = context.Background()
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return g.inner.Evaluate(ctx, q, doc)
}
