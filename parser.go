/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"fmt"
	"log/slog"
	"os"
)

// Parser is an object for parsing dictionary files.
type Parser struct {
	fileName        string
	allowDirectives bool
}

// NewParser creates new Parser.
// Available options:
// - WithFileName(name string) - file name reported in syntax error positions.
// - WithDirectives(b bool) - allows "#name args..." lines (e.g. #include "file") as opaque entries.
func NewParser(opts ...ParserOption) *Parser {
	pOpts := makeParserOptions(opts...)
	return &Parser{
		fileName:        pOpts.fileName,
		allowDirectives: pOpts.allowDirectives,
	}
}

// Parse parses input text as a dictionary.
// It returns *SyntaxError if the input is malformed. No partial dictionary is returned in this case.
func Parse(input string, opts ...ParserOption) (*Dictionary, error) {
	return NewParser(opts...).Parse(input)
}

// MustParse parses input text as a dictionary and panics on error.
func MustParse(input string, opts ...ParserOption) *Dictionary {
	return NewParser(opts...).MustParse(input)
}

// ParseFile reads and parses the dictionary file.
// The file name is reported in syntax error positions unless WithFileName overrides it.
func ParseFile(path string, opts ...ParserOption) (*Dictionary, error) {
	slog.Debug("Parsing dictionary", slog.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file: %w", err)
	}
	d, err := NewParser(append([]ParserOption{WithFileName(path)}, opts...)...).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse dictionary file: %w", err)
	}
	slog.Debug("Dictionary parsed", slog.String("path", path), slog.Int("entries", d.Len()))
	return d, nil
}

// Parse parses input text as a dictionary.
func (p *Parser) Parse(input string) (*Dictionary, error) {
	ps := &parseState{lex: newLexer(input, p.fileName), allowDirectives: p.allowDirectives}
	d, err := ps.parseEntries(nil)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// MustParse parses input text as a dictionary and panics on error.
func (p *Parser) MustParse(input string) *Dictionary {
	d, err := p.Parse(input)
	if err != nil {
		panic(err)
	}
	return d
}

type parseState struct {
	lex             *lexer
	allowDirectives bool

	peeked    item
	hasPeeked bool
}

func (ps *parseState) peek() (item, error) {
	if ps.hasPeeked {
		return ps.peeked, nil
	}
	it, err := ps.lex.next()
	if err != nil {
		return item{}, err
	}
	ps.peeked, ps.hasPeeked = it, true
	return it, nil
}

func (ps *parseState) next() (item, error) {
	it, err := ps.peek()
	if err != nil {
		return item{}, err
	}
	ps.hasPeeked = false
	return it, nil
}

// parseEntries parses entries until the end of input, or until the closing "}" if open is not nil.
func (ps *parseState) parseEntries(open *item) (*Dictionary, error) {
	d := NewDictionary()
	for {
		it, err := ps.next()
		if err != nil {
			return nil, err
		}

		switch {
		case it.eof:
			if open != nil {
				return nil, syntaxErrorf(it.pos, ErrUnbalancedBlock, `missing "}" for "{" at %s`, open.pos)
			}
			return d, nil

		case it.isPunct('}'):
			if open == nil {
				return nil, syntaxErrorf(it.pos, ErrUnbalancedBlock, `unexpected "}"`)
			}
			return d, nil

		case it.isPunct(';'):
			// Empty statement, e.g. "};" after a nested dictionary.
			continue

		case it.isPunct(')') || it.isPunct(']'):
			return nil, syntaxErrorf(it.pos, ErrUnbalancedBlock, "unexpected %s", it.describe())

		case it.tok.Kind == TokenPunct:
			return nil, syntaxErrorf(it.pos, ErrUnexpectedToken, "expect keyword, got %s", it.describe())

		case it.tok.Kind == TokenVariable:
			e, err := ps.parseReference(it)
			if err != nil {
				return nil, err
			}
			d.Add(e)

		case it.tok.Kind == TokenWord && it.tok.Text[0] == '#':
			e, err := ps.parseDirective(it)
			if err != nil {
				return nil, err
			}
			d.Add(e)

		default:
			e, err := ps.parseEntry(it)
			if err != nil {
				return nil, err
			}
			d.Add(e)
		}
	}
}

func (ps *parseState) parseReference(ref item) (*Entry, error) {
	it, err := ps.next()
	if err != nil {
		return nil, err
	}
	if !it.isPunct(';') {
		return nil, syntaxErrorf(it.pos, ErrMissingTerminator, "after %s, got %s", ref.describe(), it.describe())
	}
	return NewReference(ref.tok.Text), nil
}

// parseDirective reads "#name" and the rest of its line as opaque arguments.
// An optional ";" on the same line ends the directive.
func (ps *parseState) parseDirective(dir item) (*Entry, error) {
	if !ps.allowDirectives {
		return nil, syntaxErrorf(dir.pos, ErrUnexpectedToken, "directive %s is not allowed", dir.describe())
	}
	name := dir.tok.Text[1:]
	if name == "" {
		return nil, syntaxErrorf(dir.pos, ErrUnexpectedToken, "empty directive name")
	}
	var args []Token
	for {
		it, err := ps.peek()
		if err != nil {
			return nil, err
		}
		if it.eof || it.pos.Line != dir.pos.Line || it.isPunct('}') {
			break
		}
		ps.hasPeeked = false
		if it.isPunct(';') {
			break
		}
		args = append(args, it.tok)
	}
	return NewDirective(name, args...), nil
}

func (ps *parseState) parseEntry(kw item) (*Entry, error) {
	keyword := Keyword{Name: kw.tok.Text, Pattern: kw.tok.Kind == TokenString}

	it, err := ps.peek()
	if err != nil {
		return nil, err
	}
	if it.isPunct('{') {
		ps.hasPeeked = false
		sub, err := ps.parseEntries(&it)
		if err != nil {
			return nil, err
		}
		return NewDict(keyword, sub), nil
	}

	tokens, err := ps.parseValue(kw)
	if err != nil {
		return nil, err
	}
	return NewPrimitive(keyword, tokens...), nil
}

// parseValue collects value tokens until ";" outside of brackets.
func (ps *parseState) parseValue(kw item) ([]Token, error) {
	var tokens []Token
	var stack []item
	for {
		it, err := ps.peek()
		if err != nil {
			return nil, err
		}

		switch {
		case it.eof:
			if len(stack) != 0 {
				top := stack[len(stack)-1]
				return nil, syntaxErrorf(it.pos, ErrUnbalancedBlock, "missing %q for %s at %s",
					string(closingBracket(top.tok.Text[0])), top.describe(), top.pos)
			}
			return nil, syntaxErrorf(it.pos, ErrMissingTerminator, "after entry %q", kw.tok.Text)

		case it.isPunct(';') && len(stack) == 0:
			ps.hasPeeked = false
			return tokens, nil

		case it.isPunct('(') || it.isPunct('[') || it.isPunct('{'):
			stack = append(stack, it)

		case it.isPunct(')') || it.isPunct(']') || it.isPunct('}'):
			if len(stack) == 0 {
				if it.isPunct('}') {
					return nil, syntaxErrorf(it.pos, ErrMissingTerminator, "after entry %q", kw.tok.Text)
				}
				return nil, syntaxErrorf(it.pos, ErrUnbalancedBlock, "unexpected %s", it.describe())
			}
			top := stack[len(stack)-1]
			if want := closingBracket(top.tok.Text[0]); it.tok.Text[0] != want {
				return nil, syntaxErrorf(it.pos, ErrUnbalancedBlock, "expect %q, got %s", string(want), it.describe())
			}
			stack = stack[:len(stack)-1]
		}

		ps.hasPeeked = false
		tokens = append(tokens, it.tok)
	}
}

func closingBracket(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return '}'
}
