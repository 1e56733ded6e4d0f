package engine

import (
	"strconv"
	"strings"

	"github.com/atomicstack/mqt/internal/document"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNode
	KindString
	KindNumber
	KindBool
)

// Value is a single element of a query result stream.
type Value struct {
	Kind ValueKind
	Node document.NodeID
	Str  string
	Num  float64
	Bool bool
}

var null = Value{Kind: KindNull, Node: document.NoNode}

func nodeValue(id document.NodeID) Value { return Value{Kind: KindNode, Node: id} }
func stringValue(s string) Value       { return Value{Kind: KindString, Str: s, Node: document.NoNode} }
func numberValue(n float64) Value      { return Value{Kind: KindNumber, Num: n, Node: document.NoNode} }
func boolValue(b bool) Value           { return Value{Kind: KindBool, Bool: b, Node: document.NoNode} }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Text renders v as plain text, resolving nodes against doc.
func (v Value) Text(doc *document.Document) string {
	switch v.Kind {
	case KindNode:
		if n := doc.Node(v.Node); n != nil {
			if n.Value != "" && n.Kind != document.KindText {
				return n.Value
			}
			return n.Text
		}
		return ""
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// TypeName is the name reported by the type function.
func (v Value) TypeName(doc *document.Document) string {
	switch v.Kind {
	case KindNode:
		if n := doc.Node(v.Node); n != nil {
			return string(n.Kind)
		}
		return "node"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "null"
}

func truthy(v Value) bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool
	}
	return true
}

func equal(doc *document.Document, a, b Value) bool {
	if a.Kind == KindNode && b.Kind == KindNode {
		return a.Node == b.Node
	}
	if a.Kind == KindNode {
		a = stringValue(a.Text(doc))
	}
	if b.Kind == KindNode {
		b = stringValue(b.Text(doc))
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindString:
		return a.Str == b.Str
	case KindNumber:
		return a.Num == b.Num
	case KindBool:
		return a.Bool == b.Bool
	}
	return false
}

func compare(doc *document.Document, a, b Value) (int, error) {
	if a.Kind == KindNode {
		a = stringValue(a.Text(doc))
	}
	if b.Kind == KindNode {
		b = stringValue(b.Text(doc))
	}
	switch {
	case a.Kind == KindNumber && b.Kind == KindNumber:
		switch {
		case a.Num < b.Num:
			return -1, nil
		case a.Num > b.Num:
			return 1, nil
		}
		return 0, nil
	case a.Kind == KindString && b.Kind == KindString:
		return strings.Compare(a.Str, b.Str), nil
	}
	return 0, runtimeError("cannot compare %s with %s", a.TypeName(doc), b.TypeName(doc))
}
