package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokPipe
	tokDot
	tokField
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of query"
	case tokPipe:
		return "'|'"
	case tokDot:
		return "'.'"
	case tokField:
		return "selector"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokOp:
		return "operator"
	}
	return "token"
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of query"
	case tokField:
		return fmt.Sprintf("%q", "."+t.text)
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

var operators = []string{"==", "!=", "<=", ">=", "&&", "||", "<", ">", "+", "-"}

func lex(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	// byte offsets for each rune so errors point into the original string
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += len(string(r))
	}
	offsets[len(runes)] = off

	i := 0
	for i < len(runes) {
		r := runes[i]
		pos := offsets[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '|' && (i+1 >= len(runes) || runes[i+1] != '|'):
			tokens = append(tokens, token{kind: tokPipe, text: "|", pos: pos})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: pos})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: pos})
			i++
		case r == ',':
			tokens = append(tokens, token{kind: tokComma, text: ",", pos: pos})
			i++
		case r == '.':
			j := i + 1
			for j < len(runes) && isIdentRune(runes[j], j == i+1) {
				j++
			}
			if j == i+1 {
				tokens = append(tokens, token{kind: tokDot, text: ".", pos: pos})
			} else {
				tokens = append(tokens, token{kind: tokField, text: string(runes[i+1 : j]), pos: pos})
			}
			i = j
		case r == '"' || r == '\'':
			j := i + 1
			var b strings.Builder
			closed := false
			for j < len(runes) {
				c := runes[j]
				if c == '\\' && j+1 < len(runes) {
					b.WriteRune(unescape(runes[j+1]))
					j += 2
					continue
				}
				if c == r {
					closed = true
					j++
					break
				}
				b.WriteRune(c)
				j++
			}
			if !closed {
				return nil, &QueryError{Pos: pos, Msg: "unterminated string"}
			}
			tokens = append(tokens, token{kind: tokString, text: b.String(), pos: pos})
			i = j
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			text := string(runes[i:j])
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &QueryError{Pos: pos, Msg: fmt.Sprintf("invalid number %q", text)}
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, num: num, pos: pos})
			i = j
		case isIdentRune(r, true):
			j := i
			for j < len(runes) && isIdentRune(runes[j], j == i) {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[i:j]), pos: pos})
			i = j
		default:
			matched := false
			rest := string(runes[i:])
			for _, op := range operators {
				if strings.HasPrefix(rest, op) {
					tokens = append(tokens, token{kind: tokOp, text: op, pos: pos})
					i += len([]rune(op))
					matched = true
					break
				}
			}
			if !matched {
				return nil, &QueryError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", string(r))}
			}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	}
	return r
}
