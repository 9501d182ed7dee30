/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"strconv"
	"strings"
)

type item struct {
	tok Token
	pos Position
	eof bool
}

func (it item) isPunct(c byte) bool {
	return it.tok.Kind == TokenPunct && it.tok.Text[0] == c
}

// describe returns the item as it is quoted in error messages.
func (it item) describe() string {
	if it.eof {
		return "end of file"
	}
	return strconv.Quote(it.tok.String())
}

// lexer splits the dictionary text into tokens skipping whitespace and comments.
type lexer struct {
	src  string
	off  int
	line int
	col  int
	file string
}

func newLexer(src, file string) *lexer {
	return &lexer{src: src, line: 1, col: 1, file: file}
}

func (l *lexer) pos() Position {
	return Position{File: l.file, Line: l.line, Column: l.col}
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.off < len(l.src); i++ {
		if l.src[l.off] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.off++
	}
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.off:], s)
}

func (l *lexer) skipSpacesAndComments() error {
	for l.off < len(l.src) {
		switch c := l.src[l.off]; {
		case isSpace(c):
			l.advance(1)
		case l.hasPrefix("//"):
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance(1)
			}
		case l.hasPrefix("/*"):
			start := l.pos()
			end := strings.Index(l.src[l.off+2:], "*/")
			if end == -1 {
				return syntaxErrorf(start, ErrUnterminatedComment, "")
			}
			l.advance(end + 4)
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (item, error) {
	if err := l.skipSpacesAndComments(); err != nil {
		return item{}, err
	}
	start := l.pos()
	if l.off == len(l.src) {
		return item{pos: start, eof: true}, nil
	}

	c := l.src[l.off]
	switch {
	case isPunct(c):
		l.advance(1)
		return item{tok: Punct(c), pos: start}, nil
	case c == '"':
		s, err := l.readString()
		if err != nil {
			return item{}, err
		}
		return item{tok: Quoted(s), pos: start}, nil
	case c == '$':
		name, err := l.readVariable()
		if err != nil {
			return item{}, err
		}
		return item{tok: Variable(name), pos: start}, nil
	}

	w := l.readWord()
	if looksLikeNumber(w) {
		return item{tok: Number(w), pos: start}, nil
	}
	return item{tok: Word(w), pos: start}, nil
}

func (l *lexer) readString() (string, error) {
	start := l.pos()
	var b strings.Builder
	i := l.off + 1
	for ; i < len(l.src); i++ {
		switch l.src[i] {
		case '\\':
			if i+1 < len(l.src) && (l.src[i+1] == '"' || l.src[i+1] == '\\') {
				i++
			}
			b.WriteByte(l.src[i])
			continue
		case '"':
			l.advance(i + 1 - l.off)
			return b.String(), nil
		}
		b.WriteByte(l.src[i])
	}
	return "", syntaxErrorf(start, ErrUnterminatedString, "")
}

func (l *lexer) readVariable() (string, error) {
	start := l.pos()
	l.advance(1) // skip "$"
	if l.hasPrefix("{") {
		end := strings.IndexByte(l.src[l.off:], '}')
		if end == -1 {
			return "", syntaxErrorf(start, ErrUnbalancedBlock, `missing "}" in variable`)
		}
		name := l.src[l.off+1 : l.off+end]
		l.advance(end + 1)
		if name == "" {
			return "", syntaxErrorf(start, ErrUnexpectedToken, "empty variable name")
		}
		return name, nil
	}
	i := l.off
	for i < len(l.src) && isWordByte(l.src[i]) && !l.commentStartsAt(i) {
		i++
	}
	name := l.src[l.off:i]
	l.advance(i - l.off)
	if name == "" {
		return "", syntaxErrorf(start, ErrUnexpectedToken, "empty variable name")
	}
	return name, nil
}

// readWord reads a bare word. A word that starts with a letter or "_" may contain balanced parentheses,
// so keywords like "div(phi,U)" are read as a single word.
func (l *lexer) readWord() string {
	allowParens := isLetter(l.src[l.off]) || l.src[l.off] == '_'
	depth := 0
	i := l.off
loop:
	for ; i < len(l.src); i++ {
		c := l.src[i]
		switch {
		case isSpace(c) || c == '"' || l.commentStartsAt(i):
			break loop
		case c == '(' && allowParens:
			depth++
		case c == ')' && depth > 0:
			depth--
		case isPunct(c):
			break loop
		}
	}
	w := l.src[l.off:i]
	l.advance(i - l.off)
	return w
}

func (l *lexer) commentStartsAt(i int) bool {
	return l.src[i] == '/' && i+1 < len(l.src) && (l.src[i+1] == '/' || l.src[i+1] == '*')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isPunct(c byte) bool {
	switch c {
	case '{', '}', '(', ')', '[', ']', ';':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordByte(c byte) bool {
	return !isSpace(c) && !isPunct(c) && c != '"' && c != '$'
}

func looksLikeNumber(w string) bool {
	if w == "" {
		return false
	}
	c := w[0]
	if !(c >= '0' && c <= '9') && c != '-' && c != '+' && c != '.' {
		return false
	}
	_, err := strconv.ParseFloat(w, 64)
	return err == nil
}
