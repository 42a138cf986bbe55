package pylit

import (
	"strconv"
)

// SuiteVariable is the name mx assigns the manifest dict to.
const SuiteVariable = "suite"

type parser struct {
	lex  *lexer
	tok  token
	peek *token
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	if p.peek != nil {
		p.tok = *p.peek
		p.peek = nil
		return nil
	}
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) lookahead() (token, error) {
	if p.peek == nil {
		t, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peek = &t
	}
	return *p.peek, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return p.lex.errorf(p.tok.line, p.tok.col, format, args...)
}

func (p *parser) isPunct(s string) bool {
	return p.tok.kind == tokPunct && p.tok.text == s
}

func (p *parser) expect(s string) error {
	if !p.isPunct(s) {
		return p.errorf("expected `%s`, found %s", s, p.tok)
	}
	return p.advance()
}

// Parse reads a manifest module and returns the dict assigned to `suite`.
// Statements other than that assignment are skipped.
func Parse(src []byte) (*Dict, error) {
	return ParseAssignment(src, SuiteVariable)
}

// ParseAssignment returns the dict assigned to variable at the top level of
// src.
func ParseAssignment(src []byte, variable string) (*Dict, error) {
	p, err := newParser(string(src))
	if err != nil {
		return nil, err
	}

	depth := 0
	atLineStart := true
	prevLine := 0
	for p.tok.kind != tokEOF {
		if p.tok.line != prevLine {
			atLineStart = true
			prevLine = p.tok.line
		}
		if depth == 0 && atLineStart && p.tok.kind == tokName && p.tok.text == variable {
			next, err := p.lookahead()
			if err != nil {
				return nil, err
			}
			if next.kind == tokPunct && next.text == "=" {
				if err := p.advance(); err != nil {
					return nil, err
				}
				if err := p.advance(); err != nil {
					return nil, err
				}
				if !p.isPunct("{") {
					return nil, p.errorf("`%s` must be assigned a dict literal, found %s", variable, p.tok)
				}
				v, err := p.parseValue()
				if err != nil {
					return nil, err
				}
				return v.(*Dict), nil
			}
		}
		atLineStart = false

		if p.tok.kind == tokPunct {
			switch p.tok.text {
			case "{", "[", "(":
				depth++
			case "}", "]", ")":
				depth--
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return nil, p.errorf("no assignment to `%s` found", variable)
}

// ParseValue reads a single literal that makes up the whole of src.
func ParseValue(src []byte) (interface{}, error) {
	p, err := newParser(string(src))
	if err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after value", p.tok)
	}
	return v, nil
}

func (p *parser) parseValue() (interface{}, error) {
	switch p.tok.kind {
	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Adjacent string literals are concatenated.
		for p.tok.kind == tokString {
			s += p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		return s, nil

	case tokInt:
		v, _ := strconv.ParseInt(p.tok.text, 10, 64)
		return v, p.advance()

	case tokFloat:
		v, _ := strconv.ParseFloat(p.tok.text, 64)
		return v, p.advance()

	case tokName:
		var v interface{}
		switch p.tok.text {
		case "True":
			v = true
		case "False":
			v = false
		case "None":
			v = nil
		default:
			return nil, p.errorf("unsupported expression %s: only literals are allowed", p.tok)
		}
		return v, p.advance()

	case tokPunct:
		switch p.tok.text {
		case "{":
			return p.parseDict()
		case "[":
			return p.parseList("[", "]")
		case "(":
			return p.parseTuple()
		case "-", "+":
			sign := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			switch p.tok.kind {
			case tokInt:
				v, _ := strconv.ParseInt(sign+p.tok.text, 10, 64)
				return v, p.advance()
			case tokFloat:
				v, _ := strconv.ParseFloat(sign+p.tok.text, 64)
				return v, p.advance()
			}
			return nil, p.errorf("expected number after `%s`, found %s", sign, p.tok)
		}
	}
	return nil, p.errorf("unexpected %s", p.tok)
}

func (p *parser) parseDict() (interface{}, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	d := NewDict()
	for !p.isPunct("}") {
		if p.tok.kind != tokString {
			return nil, p.errorf("dict keys must be strings, found %s", p.tok)
		}
		keyTok := p.tok
		k, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		key := k.(string)
		if d.Has(key) {
			return nil, p.lex.errorf(keyTok.line, keyTok.col, "duplicate key %q", key)
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		d.Set(key, v)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !p.isPunct("}") {
			return nil, p.errorf("expected `,` or `}`, found %s", p.tok)
		}
	}
	return d, p.advance()
}

func (p *parser) parseList(open, close string) (interface{}, error) {
	if err := p.expect(open); err != nil {
		return nil, err
	}
	list := []interface{}{}
	for !p.isPunct(close) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !p.isPunct(close) {
			return nil, p.errorf("expected `,` or `%s`, found %s", close, p.tok)
		}
	}
	return list, p.advance()
}

// parseTuple handles `()`, `(x,)`, `(x, y)` and the parenthesized `(x)`.
func (p *parser) parseTuple() (interface{}, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	if p.isPunct(")") {
		return []interface{}{}, p.advance()
	}
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.isPunct(")") {
		return first, p.advance()
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	tuple := []interface{}{first}
	for !p.isPunct(")") {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, v)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !p.isPunct(")") {
			return nil, p.errorf("expected `,` or `)`, found %s", p.tok)
		}
	}
	return tuple, p.advance()
}
