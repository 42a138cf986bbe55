package pylit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokInt
	tokFloat
	tokName
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokString:
		return "string"
	case tokInt:
		return "integer"
	case tokFloat:
		return "float"
	case tokName:
		return "name"
	case tokPunct:
		return "punctuation"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string // Decoded value for strings, raw text otherwise.
	line int
	col  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return t.kind.String()
	case tokString:
		return strconv.Quote(t.text)
	default:
		return "`" + t.text + "`"
	}
}

// A SyntaxError reports malformed manifest source.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int

	comments []int // Lines holding a comment.
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...interface{}) error {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) nextRune() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipSpace() {
	for {
		r := l.peekRune()
		switch {
		case r == '#':
			l.comments = append(l.comments, l.line)
			for r != '\n' && r != -1 {
				l.nextRune()
				r = l.peekRune()
			}
		case r == '\\' && strings.HasPrefix(l.src[l.pos:], "\\\n"):
			l.nextRune()
			l.nextRune()
		case r != -1 && unicode.IsSpace(r):
			l.nextRune()
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	line, col := l.line, l.col
	r := l.peekRune()

	switch {
	case r == -1:
		return token{kind: tokEOF, line: line, col: col}, nil

	case r == '"' || r == '\'':
		s, err := l.readString(false)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: s, line: line, col: col}, nil

	case isNameStart(r):
		start := l.pos
		for isNameChar(l.peekRune()) {
			l.nextRune()
		}
		name := l.src[start:l.pos]
		// String prefixes: r"", u"", b"", rb"" and friends.
		if q := l.peekRune(); (q == '"' || q == '\'') && isStringPrefix(name) {
			raw := strings.ContainsAny(name, "rR")
			s, err := l.readString(raw)
			if err != nil {
				return token{}, err
			}
			return token{kind: tokString, text: s, line: line, col: col}, nil
		}
		return token{kind: tokName, text: name, line: line, col: col}, nil

	case isDigit(r) || (r == '.' && l.pos+1 < len(l.src) && isDigit(rune(l.src[l.pos+1]))):
		return l.readNumber(line, col)

	default:
		l.nextRune()
		return token{kind: tokPunct, text: string(r), line: line, col: col}, nil
	}
}

func (l *lexer) readNumber(line, col int) (token, error) {
	start := l.pos
	float := false
	for {
		r := l.peekRune()
		switch {
		case isDigit(r) || r == '_':
			l.nextRune()
		case r == '.':
			float = true
			l.nextRune()
		case r == 'e' || r == 'E':
			float = true
			l.nextRune()
			if s := l.peekRune(); s == '+' || s == '-' {
				l.nextRune()
			}
		default:
			text := strings.Replace(l.src[start:l.pos], "_", "", -1)
			if float {
				if _, err := strconv.ParseFloat(text, 64); err != nil {
					return token{}, l.errorf(line, col, "invalid float literal %q", text)
				}
				return token{kind: tokFloat, text: text, line: line, col: col}, nil
			}
			if _, err := strconv.ParseInt(text, 10, 64); err != nil {
				return token{}, l.errorf(line, col, "invalid integer literal %q", text)
			}
			return token{kind: tokInt, text: text, line: line, col: col}, nil
		}
	}
}

// readString reads a quoted string starting at the opening quote.
func (l *lexer) readString(raw bool) (string, error) {
	line, col := l.line, l.col
	quote := l.nextRune()
	triple := false
	if strings.HasPrefix(l.src[l.pos:], string([]rune{quote, quote})) {
		l.nextRune()
		l.nextRune()
		triple = true
	}

	var b strings.Builder
	for {
		r := l.nextRune()
		switch {
		case r == -1:
			return "", l.errorf(line, col, "unterminated string literal")
		case r == '\n' && !triple:
			return "", l.errorf(line, col, "unterminated string literal")
		case r == quote:
			if !triple {
				return b.String(), nil
			}
			if strings.HasPrefix(l.src[l.pos:], string([]rune{quote, quote})) {
				l.nextRune()
				l.nextRune()
				return b.String(), nil
			}
			b.WriteRune(r)
		case r == '\\' && raw:
			b.WriteRune(r)
			if n := l.peekRune(); n == quote || n == '\\' {
				b.WriteRune(l.nextRune())
			}
		case r == '\\':
			if err := l.readEscape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (l *lexer) readEscape(b *strings.Builder) error {
	line, col := l.line, l.col
	r := l.nextRune()
	switch r {
	case '\n':
		// Line continuation inside a string.
	case '\\', '\'', '"':
		b.WriteRune(r)
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case 'x', 'u', 'U':
		n := map[rune]int{'x': 2, 'u': 4, 'U': 8}[r]
		if l.pos+n > len(l.src) {
			return l.errorf(line, col, "truncated \\%c escape", r)
		}
		v, err := strconv.ParseUint(l.src[l.pos:l.pos+n], 16, 32)
		if err != nil {
			return l.errorf(line, col, "invalid \\%c escape", r)
		}
		for i := 0; i < n; i++ {
			l.nextRune()
		}
		b.WriteRune(rune(v))
	case '0', '1', '2', '3', '4', '5', '6', '7':
		digits := string(r)
		for len(digits) < 3 && l.peekRune() >= '0' && l.peekRune() <= '7' {
			digits += string(l.nextRune())
		}
		v, _ := strconv.ParseUint(digits, 8, 32)
		b.WriteRune(rune(v))
	case -1:
		return l.errorf(line, col, "unterminated string literal")
	default:
		// Python keeps unknown escapes verbatim.
		b.WriteByte('\\')
		b.WriteRune(r)
	}
	return nil
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "br", "rb":
		return true
	}
	return false
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
