package engine

import (
	"fmt"
	"regexp"
)

type expr interface{}

type (
	identityExpr struct{}
	selectorExpr struct {
		name  string
		match matcher
	}
	attributeExpr struct {
		name string
		get  attribute
	}
	literalExpr struct{ value Value }
	pipeExpr    struct{ left, right expr }
	binaryExpr  struct {
		op          string
		left, right expr
	}
	notExpr  struct{ operand expr }
	callExpr struct {
		name string
		fn   *builtin
		args []expr
		// re is the precompiled pattern when test() receives a literal.
		re *regexp.Regexp
	}
)

type parser struct {
	tokens []token
	pos    int
}

// compile parses src into an evaluable expression.
func compile(src string) (expr, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.pipeline()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok, "'|' or end of query")
	}
	return e, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) unexpected(tok token, expected string) error {
	if tok.kind == tokEOF {
		return &QueryError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected end of query, expected %s", expected)}
	}
	return &QueryError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %s, expected %s", tok.describe(), expected)}
}

func (p *parser) isKeyword(word string) bool {
	tok := p.peek()
	return tok.kind == tokIdent && tok.text == word
}

func (p *parser) isOp(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) pipeline() (expr, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPipe {
		p.next()
		right, err := p.or()
		if err != nil {
			return nil, err
		}
		left = pipeExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) or() (expr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		_, isOr := p.isOp("||")
		if !isOr && !p.isKeyword("or") {
			return left, nil
		}
		p.next()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "or", left: left, right: right}
	}
}

func (p *parser) and() (expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		_, isAnd := p.isOp("&&")
		if !isAnd && !p.isKeyword("and") {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "and", left: left, right: right}
	}
}

func (p *parser) unary() (expr, error) {
	if p.isKeyword("not") && startsOperand(p.tokens[p.pos+1]) {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notExpr{operand: operand}, nil
	}
	return p.comparison()
}

// startsOperand reports whether tok can begin an expression, which makes a
// preceding "not" a prefix operator rather than the zero-argument function.
func startsOperand(tok token) bool {
	switch tok.kind {
	case tokEOF, tokPipe, tokRParen, tokComma:
		return false
	case tokOp:
		return tok.text == "-"
	case tokIdent:
		return tok.text != "and" && tok.text != "or"
	}
	return true
}

func (p *parser) comparison() (expr, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	if op, ok := p.isOp("==", "!=", "<", "<=", ">", ">="); ok {
		p.next()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		return binaryExpr{op: op, left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) additive() (expr, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("+", "-")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.primary()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
}

func (p *parser) primary() (expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokDot:
		return identityExpr{}, nil
	case tokField:
		if match, ok := selectors[tok.text]; ok {
			return selectorExpr{name: tok.text, match: match}, nil
		}
		if get, ok := attributes[tok.text]; ok {
			return attributeExpr{name: tok.text, get: get}, nil
		}
		return nil, &QueryError{
			Pos:  tok.pos,
			Msg:  fmt.Sprintf("unknown selector %q", "."+tok.text),
			Hint: suggest("."+tok.text, fieldNames()),
		}
	case tokString:
		return literalExpr{value: stringValue(tok.text)}, nil
	case tokNumber:
		return literalExpr{value: numberValue(tok.num)}, nil
	case tokOp:
		if tok.text == "-" && p.peek().kind == tokNumber {
			num := p.next()
			return literalExpr{value: numberValue(-num.num)}, nil
		}
	case tokLParen:
		inner, err := p.pipeline()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.unexpected(closing, "')'")
		}
		return inner, nil
	case tokIdent:
		switch tok.text {
		case "true":
			return literalExpr{value: boolValue(true)}, nil
		case "false":
			return literalExpr{value: boolValue(false)}, nil
		case "null", "None":
			return literalExpr{value: null}, nil
		}
		return p.call(tok)
	}
	return nil, p.unexpected(tok, "an expression")
}

func (p *parser) call(name token) (expr, error) {
	fn, ok := builtins[name.text]
	if !ok {
		return nil, &QueryError{
			Pos:  name.pos,
			Msg:  fmt.Sprintf("unknown function %q", name.text),
			Hint: suggest(name.text, functionNames()),
		}
	}
	var args []expr
	if p.peek().kind == tokLParen {
		p.next()
		if p.peek().kind != tokRParen {
			for {
				arg, err := p.pipeline()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().kind != tokComma {
					break
				}
				p.next()
			}
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.unexpected(closing, "',' or ')'")
		}
	}
	if len(args) != fn.arity {
		return nil, &QueryError{
			Pos: name.pos,
			Msg: fmt.Sprintf("%s expects %d argument(s), got %d", name.text, fn.arity, len(args)),
		}
	}
	c := callExpr{name: name.text, fn: fn, args: args}
	if name.text == "test" {
		if lit, ok := args[0].(literalExpr); ok && lit.value.Kind == KindString {
			re, err := regexp.Compile(lit.value.Str)
			if err != nil {
				return nil, &QueryError{Pos: name.pos, Msg: fmt.Sprintf("invalid pattern: %v", err)}
			}
			c.re = re
		}
	}
	return c, nil
}
