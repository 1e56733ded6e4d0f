package query

import (
	"context"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/engine"
)

// ResultItem is one entry of a result set. It references a document node by
// id, or carries a synthesised value when Node is document.NoNode.
type ResultItem struct {
	Node    document.NodeID
	Value   string
	Kind    document.Kind
	Summary string
}

// IsNode reports whether the item references a document node.
func (r ResultItem) IsNode() bool {
	return r.Node != document.NoNode
}

// Markdown returns the item's Markdown source form.
func (r ResultItem) Markdown(doc *document.Document) string {
	if !r.IsNode() {
		return r.Value
	}
	return doc.Markdown(r.Node)
}

// Evaluator runs a query against a document. Implementations must be safe
// for concurrent use.
type Evaluator interface {
	Evaluate(ctx context.Context, query string, doc *document.Document) ([]ResultItem, error)
}

// EngineEvaluator adapts engine.Engine to the Evaluator interface.
type EngineEvaluator struct {
	engine *engine.Engine
}

// NewEngineEvaluator returns an Evaluator backed by the query engine.
func NewEngineEvaluator() *EngineEvaluator {
	return &EngineEvaluator{engine: engine.New()}
}

// Evaluate implements Evaluator.
func (e *EngineEvaluator) Evaluate(ctx context.Context, query string, doc *document.Document) ([]ResultItem, error) {
	vals, err := e.engine.Evaluate(ctx, query, doc)
	if err != nil {
		return nil, err
	}
	items := make([]ResultItem, 0, len(vals))
	for _, v := range vals {
		items = append(items, Item(doc, v))
	}
	return items, nil
}

// Item converts an engine value into a ResultItem.
func Item(doc *document.Document, v engine.Value) ResultItem {
	if v.Kind == engine.KindNode {
		if n := doc.Node(v.Node); n != nil {
			return ResultItem{Node: n.ID, Kind: n.Kind, Summary: doc.Summary(n.ID)}
		}
	}
	text := v.Text(doc)
	return ResultItem{Node: document.NoNode, Value: text, Kind: document.KindValue, Summary: text}
}

// NodeItem builds a ResultItem for a document node.
func NodeItem(doc *document.Document, id document.NodeID) ResultItem {
	n := doc.Node(id)
	if n == nil {
		return ResultItem{Node: document.NoNode, Kind: document.KindValue}
	}
	return ResultItem{Node: id, Kind: n.Kind, Summary: doc.Summary(id)}
}
