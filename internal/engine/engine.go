// Package engine implements the query language used to filter documents.
//
// A query is a pipeline of expressions separated by '|'. Each expression
// receives one value and produces a stream of values; the stream of the last
// stage is the result. Evaluation starts from the document's top-level nodes.
//
//	.h                           every heading
//	.h | select(.depth == 2)     second level headings
//	.link | .url                 link destinations
//	.code | select(.lang == "go") | to_text
package engine

import (
	"context"
	"strings"

	"github.com/atomicstack/mqt/internal/document"
)

// Engine evaluates queries. The zero value is ready to use and safe for
// concurrent calls.
type Engine struct{}

// New returns an Engine.
func New() *Engine {
	return &Engine{}
}

// check compiles src without evaluating it.
func check(src string) error {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	_, err := compile(src)
	return err
}

// Evaluate runs src against doc. A blank query yields the top-level nodes.
// Null outputs are dropped. Cancelling ctx aborts evaluation with ctx.Err().
func (*Engine) Evaluate(ctx context.Context, src string, doc *document.Document) ([]Value, error) {
	roots := doc.Roots()
	if strings.TrimSpace(src) == "" {
		out := make([]Value, 0, len(roots))
		for _, id := range roots {
			out = append(out, nodeValue(id))
		}
		return out, nil
	}
	x, err := compile(src)
	if err != nil {
		return nil, err
	}
	e := &evaluator{ctx: ctx, doc: doc}
	var out []Value
	for _, id := range roots {
		vals, err := e.eval(x, nodeValue(id))
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			if !v.IsNull() {
				out = append(out, v)
			}
		}
	}
	return out, nil
}
