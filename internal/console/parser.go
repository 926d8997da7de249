package console

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"splufp/internal/object"
	"splufp/internal/util"
)

type Node interface {
	Pos() int
}

type Ident struct {
	Name     string
	Position int
}

type Literal struct {
	Value    object.Object
	Position int
}

// Apply is a sequence of terms; the first is applied to the rest.
type Apply struct {
	Terms    []Node
	Position int
}

func (i *Ident) Pos() int   { return i.Position }
func (l *Literal) Pos() int { return l.Position }
func (a *Apply) Pos() int   { return a.Position }

type ParseError struct {
	Src     string
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	line, col := util.GetLineAndColumn(e.Src, e.Pos)
	return fmt.Sprintf("parse error at %d:%d: %s", line, col, e.Message)
}

// Context renders the offending line with a caret.
func (e *ParseError) Context() string {
	return util.GetContextLines(e.Src, e.Pos)
}

type parser struct {
	src string
	pos int
}

// Parse reads `term+` where a term is an identifier, a JSON literal or a
// parenthesised expression.
func Parse(src string) (*Apply, error) {
	p := &parser{src: src}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected '%c'", p.src[p.pos])
	}
	if len(expr.Terms) == 0 {
		return nil, p.errorf("empty expression")
	}
	return expr, nil
}

func (p *parser) errorf(format string, a ...any) *ParseError {
	return &ParseError{Src: p.src, Pos: p.pos, Message: fmt.Sprintf(format, a...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) parseExpr() (*Apply, error) {
	expr := &Apply{Position: p.pos}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] == ')' {
			return expr, nil
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr.Terms = append(expr.Terms, term)
	}
}

func (p *parser) parseTerm() (Node, error) {
	c := p.src[p.pos]
	switch {
	case c == '(':
		open := p.pos
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.src) {
			p.pos = open
			return nil, p.errorf("unclosed '('")
		}
		p.pos++
		if len(inner.Terms) == 0 {
			p.pos = open
			return nil, p.errorf("empty expression")
		}
		inner.Position = open
		return inner, nil
	case isIdentStart(c):
		start := p.pos
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		name := p.src[start:p.pos]
		if name == "true" || name == "false" || name == "null" {
			p.pos = start
			return p.parseLiteral()
		}
		return &Ident{Name: name, Position: start}, nil
	default:
		return p.parseLiteral()
	}
}

func (p *parser) parseLiteral() (Node, error) {
	start := p.pos
	dec := json.NewDecoder(strings.NewReader(p.src[p.pos:]))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, p.errorf("invalid literal: %v", err)
	}
	p.pos += int(dec.InputOffset())
	return &Literal{Value: FromJSON(raw), Position: start}, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// FromJSON converts a decoded JSON value. Object keys are sorted since
// JSON objects carry no order.
func FromJSON(v any) object.Object {
	switch x := v.(type) {
	case nil:
		return object.NONE
	case bool:
		return object.NativeBoolToBooleanObject(x)
	case float64:
		return &object.Number{Value: x}
	case string:
		return &object.String{Value: x}
	case []any:
		arr := &object.Array{Elements: make([]object.Object, len(x))}
		for i, e := range x {
			arr.Elements[i] = FromJSON(e)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rec := &object.Record{}
		for _, k := range keys {
			rec.Put(k, FromJSON(x[k]))
		}
		return rec
	default:
		return &object.String{Value: fmt.Sprintf("%v", v)}
	}
}
