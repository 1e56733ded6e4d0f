package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/mqt/internal/document"
)

type builtin struct {
	arity int
	fn    func(e *evaluator, c callExpr, in Value) ([]Value, error)
}

func (b *builtin) call(e *evaluator, c callExpr, in Value) ([]Value, error) {
	return b.fn(e, c, in)
}

var builtins map[string]*builtin

func init() {
	builtins = map[string]*builtin{
		"select":      {arity: 1, fn: selectFn},
		"contains":    stringPredicate(strings.Contains),
		"starts_with": stringPredicate(strings.HasPrefix),
		"ends_with":   stringPredicate(strings.HasSuffix),
		"test":        {arity: 1, fn: testFn},
		"to_text":     stringMap(func(s string) string { return s }),
		"upcase":      stringMap(strings.ToUpper),
		"downcase":    stringMap(strings.ToLower),
		"trim":        stringMap(strings.TrimSpace),
		"len":         {arity: 0, fn: lengthFn},
		"length":      {arity: 0, fn: lengthFn},
		"is_empty":    {arity: 0, fn: isEmptyFn},
		"type":        {arity: 0, fn: typeFn},
		"not": {arity: 0, fn: func(_ *evaluator, _ callExpr, in Value) ([]Value, error) {
			return []Value{boolValue(!truthy(in))}, nil
		}},
	}
}

func selectFn(e *evaluator, c callExpr, in Value) ([]Value, error) {
	conds, err := e.eval(c.args[0], in)
	if err != nil {
		return nil, err
	}
	for _, cond := range conds {
		if truthy(cond) {
			return []Value{in}, nil
		}
	}
	return nil, nil
}

// stringArgs evaluates a single argument and returns the text of each
// produced value.
func stringArgs(e *evaluator, arg expr, in Value) ([]string, error) {
	vals, err := e.eval(arg, in)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.Text(e.doc))
	}
	return out, nil
}

func stringPredicate(pred func(s, arg string) bool) *builtin {
	return &builtin{arity: 1, fn: func(e *evaluator, c callExpr, in Value) ([]Value, error) {
		if in.IsNull() {
			return []Value{boolValue(false)}, nil
		}
		args, err := stringArgs(e, c.args[0], in)
		if err != nil {
			return nil, err
		}
		subject := in.Text(e.doc)
		out := make([]Value, 0, len(args))
		for _, arg := range args {
			out = append(out, boolValue(pred(subject, arg)))
		}
		return out, nil
	}}
}

func stringMap(fn func(string) string) *builtin {
	return &builtin{arity: 0, fn: func(e *evaluator, _ callExpr, in Value) ([]Value, error) {
		if in.IsNull() {
			return []Value{null}, nil
		}
		return []Value{stringValue(fn(in.Text(e.doc)))}, nil
	}}
}

func testFn(e *evaluator, c callExpr, in Value) ([]Value, error) {
	if in.IsNull() {
		return []Value{boolValue(false)}, nil
	}
	subject := in.Text(e.doc)
	if c.re != nil {
		return []Value{boolValue(c.re.MatchString(subject))}, nil
	}
	patterns, err := stringArgs(e, c.args[0], in)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, runtimeError("invalid pattern: %v", err)
		}
		out = append(out, boolValue(re.MatchString(subject)))
	}
	return out, nil
}

func lengthFn(e *evaluator, _ callExpr, in Value) ([]Value, error) {
	switch in.Kind {
	case KindNull:
		return []Value{numberValue(0)}, nil
	case KindNumber:
		return []Value{in}, nil
	case KindNode:
		if n := e.doc.Node(in.Node); n != nil && isContainer(n) {
			return []Value{numberValue(float64(len(n.Children)))}, nil
		}
	}
	return []Value{numberValue(float64(utf8.RuneCountInString(in.Text(e.doc))))}, nil
}

func isEmptyFn(e *evaluator, _ callExpr, in Value) ([]Value, error) {
	switch in.Kind {
	case KindNull:
		return []Value{boolValue(true)}, nil
	case KindNode:
		if n := e.doc.Node(in.Node); n != nil && isContainer(n) {
			return []Value{boolValue(len(n.Children) == 0)}, nil
		}
	}
	return []Value{boolValue(strings.TrimSpace(in.Text(e.doc)) == "")}, nil
}

func typeFn(e *evaluator, _ callExpr, in Value) ([]Value, error) {
	return []Value{stringValue(in.TypeName(e.doc))}, nil
}

func isContainer(n *document.Node) bool {
	switch n.Kind {
	case document.KindList, document.KindTable, document.KindTableRow, document.KindBlockquote:
		return true
	}
	return false
}
