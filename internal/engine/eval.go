package engine

import (
	"context"

	"github.com/atomicstack/mqt/internal/document"
)

type evaluator struct {
	ctx context.Context
	doc *document.Document
}

func (e *evaluator) eval(x expr, in Value) ([]Value, error) {
	if err := e.ctx.Err(); err != nil {
		return nil, err
	}
	switch node := x.(type) {
	case identityExpr:
		return []Value{in}, nil
	case literalExpr:
		return []Value{node.value}, nil
	case selectorExpr:
		return e.selectNodes(node, in)
	case attributeExpr:
		if in.Kind != KindNode {
			return []Value{null}, nil
		}
		n := e.doc.Node(in.Node)
		if n == nil {
			return []Value{null}, nil
		}
		return []Value{node.get(e.doc, n)}, nil
	case pipeExpr:
		left, err := e.eval(node.left, in)
		if err != nil {
			return nil, err
		}
		var out []Value
		for _, v := range left {
			right, err := e.eval(node.right, v)
			if err != nil {
				return nil, err
			}
			out = append(out, right...)
		}
		return out, nil
	case notExpr:
		vals, err := e.eval(node.operand, in)
		if err != nil {
			return nil, err
		}
		out := make([]Value, len(vals))
		for i, v := range vals {
			out[i] = boolValue(!truthy(v))
		}
		return out, nil
	case binaryExpr:
		return e.binary(node, in)
	case callExpr:
		return node.fn.call(e, node, in)
	}
	return nil, runtimeError("unsupported expression %T", x)
}

func (e *evaluator) selectNodes(sel selectorExpr, in Value) ([]Value, error) {
	if in.Kind != KindNode {
		return nil, nil
	}
	var out []Value
	var err error
	e.doc.Walk(in.Node, func(n *document.Node) bool {
		if err != nil {
			return false
		}
		if err = e.ctx.Err(); err != nil {
			return false
		}
		if sel.match(n) {
			out = append(out, nodeValue(n.ID))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *evaluator) binary(b binaryExpr, in Value) ([]Value, error) {
	left, err := e.eval(b.left, in)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case "and", "or":
		var out []Value
		for _, l := range left {
			if b.op == "and" && !truthy(l) {
				out = append(out, boolValue(false))
				continue
			}
			if b.op == "or" && truthy(l) {
				out = append(out, boolValue(true))
				continue
			}
			right, err := e.eval(b.right, in)
			if err != nil {
				return nil, err
			}
			for _, r := range right {
				out = append(out, boolValue(truthy(r)))
			}
		}
		return out, nil
	}
	right, err := e.eval(b.right, in)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			v, err := e.apply(b.op, l, r)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func (e *evaluator) apply(op string, l, r Value) (Value, error) {
	switch op {
	case "==":
		return boolValue(equal(e.doc, l, r)), nil
	case "!=":
		return boolValue(!equal(e.doc, l, r)), nil
	case "<", "<=", ">", ">=":
		cmp, err := compare(e.doc, l, r)
		if err != nil {
			return null, err
		}
		switch op {
		case "<":
			return boolValue(cmp < 0), nil
		case "<=":
			return boolValue(cmp <= 0), nil
		case ">":
			return boolValue(cmp > 0), nil
		}
		return boolValue(cmp >= 0), nil
	case "+":
		if l.IsNull() {
			return r, nil
		}
		if r.IsNull() {
			return l, nil
		}
		if l.Kind == KindNumber && r.Kind == KindNumber {
			return numberValue(l.Num + r.Num), nil
		}
		return stringValue(l.Text(e.doc) + r.Text(e.doc)), nil
	case "-":
		if l.Kind == KindNumber && r.Kind == KindNumber {
			return numberValue(l.Num - r.Num), nil
		}
		return null, runtimeError("cannot subtract %s from %s", r.TypeName(e.doc), l.TypeName(e.doc))
	}
	return null, runtimeError("unknown operator %q", op)
}
