// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package jref

import (
	"fmt"
	"strconv"

	"github.com/jref-go/jref/ast"
	"github.com/jref-go/jref/internal/escape"
	"github.com/jref-go/jref/ref"

	"go4.org/mem"
)

// A Parser is a recursive-descent parser over a Scanner. In strict mode it
// accepts JSON values only; in dynamic mode it additionally accepts path
// expressions ("@", "$", bare identifiers, parenthesized sub-expressions,
// set projections, and function calls) and simplifies the resulting
// references opportunistically during construction.
type Parser struct {
	sc *Scanner
}

// NewParser constructs a parser reading from sc.
func NewParser(sc *Scanner) *Parser { return &Parser{sc: sc} }

// ParseAll parses one expression, consumes trailing nonessential input, and
// fails if any significant input remains or the result is empty. In case of
// error, the partially built value (if any) is returned along with the
// error.
func (p *Parser) ParseAll(dynamic bool) (ast.Value, error) {
	v, err := p.parseValue(dynamic)
	if err != nil {
		return v, err
	}
	p.sc.Nonessential()
	if v == nil {
		return nil, p.syntaxErr("empty input")
	}
	if p.sc.Valid() {
		return v, p.syntaxErr("unexpected trailing input")
	}
	return v, nil
}

func (p *Parser) syntaxErr(msg string) error {
	return &SyntaxError{Line: p.sc.Line() + 1, Column: p.sc.Col() + 1, Msg: msg}
}

// parseValue parses one expression. At the end of input it returns nil with
// no error; ParseAll turns that into an empty-input failure.
func (p *Parser) parseValue(dynamic bool) (ast.Value, error) {
	p.sc.Nonessential()
	if !p.sc.Valid() {
		return nil, nil
	}

	var result ast.Value
	switch ch := p.sc.Peek(); {
	case dynamic && ch == '@':
		p.sc.Next()
		result = ref.New(ref.HeadLocal)

	case dynamic && ch == '$':
		p.sc.Next()
		result = ref.New(ref.HeadRoot)

	case isIdentStart(ch):
		v, err := p.parseKeywordValue(dynamic)
		if err != nil {
			return nil, err
		}
		result = v

	case ch == '-' || isDigit(ch):
		v, err := p.parseNumberValue()
		if err != nil {
			return nil, err
		}
		result = v

	case ch == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		result = ast.String(s)

	case ch == '[':
		p.sc.Next()
		v, err := p.parseArray(dynamic)
		if err != nil {
			return v, err
		}
		result = v

	case ch == '{':
		p.sc.Next()
		v, err := p.parseObject(dynamic)
		if err != nil {
			return v, err
		}
		result = v

	case dynamic && ch == '(':
		p.sc.Next()
		v, err := p.parseValue(dynamic)
		if err != nil {
			return v, err
		}
		p.sc.Nonessential()
		if !p.sc.Valid() || p.sc.Peek() != ')' {
			return v, p.syntaxErr("unclosed parenthesis")
		}
		p.sc.Next()
		if v == nil {
			return nil, p.syntaxErr("empty expression")
		}
		result = v

	default:
		return nil, p.syntaxErr(fmt.Sprintf("unexpected character %q", string(ch)))
	}

	if dynamic {
		return p.parseReference(result)
	}
	return result, nil
}

// parseKeywordValue handles the constants true, false, and null. In dynamic
// mode any other identifier is either a function call, when immediately
// followed by an argument list, or sugar for a lookup of that key from the
// root.
func (p *Parser) parseKeywordValue(dynamic bool) (ast.Value, error) {
	keyword := p.parseKeyword()
	switch keyword {
	case "true":
		return ast.Bool(true), nil
	case "false":
		return ast.Bool(false), nil
	case "null":
		return ast.Null{}, nil
	}
	if !dynamic {
		return nil, p.syntaxErr(fmt.Sprintf("unknown constant %q", keyword))
	}
	if p.sc.Valid() && p.sc.Peek() == '(' {
		p.sc.Next()
		return p.parseCall(keyword)
	}
	r := ref.New(ref.HeadRoot)
	if err := r.Append(ast.String(keyword)); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Parser) parseKeyword() string {
	var kw []byte
	for {
		kw = append(kw, p.sc.Get())
		if !p.sc.Valid() || !isIdentRune(p.sc.Peek()) {
			return string(kw)
		}
	}
}

// parseCall parses the argument list of a function call whose opening
// parenthesis has been consumed.
func (p *Parser) parseCall(name string) (ast.Value, error) {
	var args []ast.Value
	err := p.parseCollection(')', func() error {
		v, err := p.parseValue(true)
		if err != nil {
			return err
		}
		args = append(args, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	fn := ref.NewFunc(name)
	if err := fn.SetArgs(args); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseNumberValue() (ast.Value, error) {
	text, isFloat, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if isFloat {
		r, err := ast.ParseReal(text)
		if err != nil {
			return nil, p.syntaxErr(fmt.Sprintf("real %s out of range", text))
		}
		return r, nil
	}
	z, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, p.syntaxErr(fmt.Sprintf("integer %s out of range", text))
	}
	return ast.Integer(z), nil
}

// parseNumber scans one number and reports its text and whether a fraction
// or exponent marked it as real.
func (p *Parser) parseNumber() (string, bool, error) {
	var num []byte
	isFloat := false

	if p.sc.Valid() && p.sc.Peek() == '-' {
		num = append(num, p.sc.Get())
	}
	if p.sc.Valid() && p.sc.Peek() == '0' {
		num = append(num, p.sc.Get())
		if p.sc.Valid() && isDigit(p.sc.Peek()) {
			return "", false, p.syntaxErr("leading zeroes are not allowed")
		}
	} else if p.sc.Valid() && isDigit(p.sc.Peek()) {
		for p.sc.Valid() && isDigit(p.sc.Peek()) {
			num = append(num, p.sc.Get())
		}
	} else {
		return "", false, p.syntaxErr("expected digit")
	}

	if p.sc.Valid() && p.sc.Peek() == '.' {
		isFloat = true
		num = append(num, p.sc.Get())
		if !p.sc.Valid() || !isDigit(p.sc.Peek()) {
			return "", false, p.syntaxErr("expected digit after decimal point")
		}
		for p.sc.Valid() && isDigit(p.sc.Peek()) {
			num = append(num, p.sc.Get())
		}
	}
	if p.sc.Valid() && (p.sc.Peek() == 'e' || p.sc.Peek() == 'E') {
		isFloat = true
		num = append(num, p.sc.Get())
		if p.sc.Valid() && (p.sc.Peek() == '+' || p.sc.Peek() == '-') {
			num = append(num, p.sc.Get())
		}
		if !p.sc.Valid() || !isDigit(p.sc.Peek()) {
			return "", false, p.syntaxErr("expected digit after exponent")
		}
		for p.sc.Valid() && isDigit(p.sc.Peek()) {
			num = append(num, p.sc.Get())
		}
	}
	return string(num), isFloat, nil
}

// parseString scans one quoted string and decodes its escapes.
func (p *Parser) parseString() (string, error) {
	p.sc.Next() // opening quote
	var raw []byte
	esc := false
	for p.sc.Valid() {
		ch := p.sc.Peek()
		switch {
		case esc:
			raw = append(raw, ch)
			esc = false
		case ch == '\\':
			raw = append(raw, ch)
			esc = true
		case ch == '"':
			p.sc.Next()
			dec, err := escape.Unquote(mem.B(raw))
			if err != nil {
				return "", p.syntaxErr(err.Error())
			}
			return string(dec), nil
		default:
			raw = append(raw, ch)
		}
		p.sc.Next()
	}
	return "", p.syntaxErr("unterminated string")
}

func (p *Parser) parseArray(dynamic bool) (ast.Value, error) {
	var vs []ast.Value
	err := p.parseCollection(']', func() error {
		v, err := p.parseValue(dynamic)
		if err != nil {
			return err
		}
		vs = append(vs, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	arr := ast.NewArray(vs...)
	if dynamic {
		for i := 0; i < arr.Len(); i++ {
			if err := bindChild(arr, arr.Index(i), arr.SetIndex, i); err != nil {
				return arr, err
			}
		}
	}
	arr.Touch()
	return arr, nil
}

func (p *Parser) parseObject(dynamic bool) (ast.Value, error) {
	var ms []ast.Member
	err := p.parseCollection('}', func() error {
		if !p.sc.Valid() || p.sc.Peek() != '"' {
			return p.syntaxErr("expected key as a string")
		}
		key, err := p.parseString()
		if err != nil {
			return err
		}
		if !p.sc.Separator(':') {
			return p.syntaxErr("expected key-value separator")
		}
		v, err := p.parseValue(dynamic)
		if err != nil {
			return err
		}
		ms = append(ms, ast.Field(key, v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	obj, err := ast.NewObject(ms...)
	if err != nil {
		return nil, err
	}
	if dynamic {
		for i := 0; i < obj.Len(); i++ {
			if err := bindChild(obj, obj.Member(i).Value, obj.SetIndex, i); err != nil {
				return obj, err
			}
		}
	}
	obj.Touch()
	return obj, nil
}

// bindChild binds a reference child of a freshly built container to the
// container itself and replaces the owning slot with its reduced value.
func bindChild(parent ast.Value, child ast.Value, set func(int, ast.Value), i int) error {
	e, ok := child.(ref.Expr)
	if !ok {
		return nil
	}
	if err := e.SetParent(parent); err != nil {
		return err
	}
	v, err := e.Value()
	if err != nil {
		return err
	}
	set(i, v)
	return nil
}

// parseCollection parses comma-separated items until the closing halt
// character. A separator with no item following it is an error.
func (p *Parser) parseCollection(halt byte, item func() error) error {
	p.sc.Nonessential()
	closed := true
	for p.sc.Valid() && p.sc.Peek() != halt {
		if err := item(); err != nil {
			return err
		}
		closed = !p.sc.Separator(',')
		if closed {
			break
		}
	}
	if !closed {
		return p.syntaxErr("expected one more item in enumerator")
	}
	if !p.sc.Valid() || p.sc.Peek() != halt {
		return p.syntaxErr("enumerator is not closed")
	}
	p.sc.Next()
	return nil
}

// parseReference absorbs trailing accessors into a reference wrapped
// around result, returning its most-reduced value. On error the value
// parsed so far stays observable in the returned result.
func (p *Parser) parseReference(result ast.Value) (ast.Value, error) {
	if result == nil {
		return nil, nil
	}
	r, ok := result.(ref.Expr)
	if !ok {
		r = ref.To(result)
	}
	if err := p.parseTail(r); err != nil {
		return result, err
	}
	v, err := r.Value()
	if err != nil {
		return result, err
	}
	return v, nil
}

func (p *Parser) parseTail(r ref.Expr) error {
	for {
		a, ok, err := p.parseAccessor()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := r.Append(a); err != nil {
			return err
		}
	}
}

// parseAccessor parses one path step: ".name", ".name(args)", a bracketed
// expression or multi-index, or a braced set of paths. It reports false
// when no accessor follows.
func (p *Parser) parseAccessor() (ast.Value, bool, error) {
	p.sc.Nonessential()
	if !p.sc.Valid() {
		return nil, false, nil
	}
	switch p.sc.Peek() {
	case '.':
		p.sc.Next()
		if !p.sc.Valid() || !isIdentStart(p.sc.Peek()) {
			return nil, false, p.syntaxErr("invalid member accessor")
		}
		keyword := p.parseKeyword()
		if p.sc.Valid() && p.sc.Peek() == '(' {
			p.sc.Next()
			fn, err := p.parseCall(keyword)
			if err != nil {
				return nil, false, err
			}
			return fn, true, nil
		}
		return ast.String(keyword), true, nil

	case '[':
		p.sc.Next()
		var keys []ast.Value
		err := p.parseCollection(']', func() error {
			v, err := p.parseValue(true)
			if err != nil {
				return err
			}
			keys = append(keys, v)
			return nil
		})
		if err != nil {
			return nil, false, err
		}
		if len(keys) == 1 {
			return keys[0], true, nil
		}
		elems := make([]*ref.Ref, len(keys))
		for i, key := range keys {
			e := ref.New(ref.HeadAccessor)
			if err := e.Append(key); err != nil {
				return nil, false, err
			}
			elems[i] = e
		}
		return ref.NewSet(elems), true, nil

	case '{':
		p.sc.Next()
		var elems []*ref.Ref
		err := p.parseCollection('}', func() error {
			e := ref.New(ref.HeadAccessor)
			if err := p.parseTail(e); err != nil {
				return err
			}
			if e.Len() == 0 {
				return p.syntaxErr("expected path")
			}
			elems = append(elems, e)
			return nil
		})
		if err != nil {
			return nil, false, err
		}
		return ref.NewSet(elems), true, nil
	}
	return nil, false, nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentRune(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
