/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// String returns the dictionary in the textual form with default serializer options.
func (d *Dictionary) String() string {
	return Serialize(d)
}

// Serialize returns the dictionary in the textual form that Parse can read back.
// Available options:
// - WithIndent(s string) - indentation of nested dictionaries.
// - WithKeywordWidth(n int) - column width that keywords of primitive entries are padded to.
// - WithBanner(text string) - comment written before the first entry.
func Serialize(d *Dictionary, opts ...SerializerOption) string {
	var b strings.Builder
	s := serializer{b: &b, opts: makeSerializerOptions(opts...)}
	s.writeBanner()
	s.writeDict(d, 0)
	return b.String()
}

// Write writes the dictionary in the textual form to w.
func Write(w io.Writer, d *Dictionary, opts ...SerializerOption) error {
	if _, err := io.WriteString(w, Serialize(d, opts...)); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	return nil
}

// WriteFile writes the dictionary in the textual form to the file, creating or truncating it.
func WriteFile(path string, d *Dictionary, opts ...SerializerOption) error {
	slog.Debug("Writing dictionary", slog.String("path", path), slog.Int("entries", d.Len()))
	if err := os.WriteFile(path, []byte(Serialize(d, opts...)), 0o644); err != nil {
		return fmt.Errorf("write dictionary file: %w", err)
	}
	return nil
}

type serializer struct {
	b    *strings.Builder
	opts serializerOptions
}

func (s *serializer) writeBanner() {
	if s.opts.banner == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(s.opts.banner, "\n"), "\n") {
		s.b.WriteString("//")
		if line != "" {
			s.b.WriteByte(' ')
			s.b.WriteString(line)
		}
		s.b.WriteByte('\n')
	}
	s.b.WriteByte('\n')
}

func (s *serializer) writeDict(d *Dictionary, depth int) {
	if d == nil {
		return
	}
	for i, e := range d.Entries {
		// Top-level dictionaries are separated by a blank line.
		if depth == 0 && i > 0 && (e.Kind == EntryDict || d.Entries[i-1].Kind == EntryDict) {
			s.b.WriteByte('\n')
		}
		s.writeEntry(e, depth)
	}
}

func (s *serializer) writeEntry(e *Entry, depth int) {
	indent := strings.Repeat(s.opts.indent, depth)
	s.b.WriteString(indent)

	switch e.Kind {
	case EntryDict:
		s.b.WriteString(e.Keyword.String())
		s.b.WriteByte('\n')
		s.b.WriteString(indent)
		s.b.WriteString("{\n")
		s.writeDict(e.Value.Dict, depth+1)
		s.b.WriteString(indent)
		s.b.WriteString("}\n")

	case EntryReference:
		s.b.WriteString(Variable(e.Keyword.Name).String())
		s.b.WriteString(";\n")

	case EntryDirective:
		s.b.WriteByte('#')
		s.b.WriteString(e.Keyword.Name)
		if len(e.Value.Tokens) != 0 {
			s.b.WriteByte(' ')
			writeTokensToBuilder(s.b, e.Value.Tokens)
		}
		s.b.WriteByte('\n')

	default:
		kw := e.Keyword.String()
		s.b.WriteString(kw)
		if len(e.Value.Tokens) != 0 {
			pad := s.opts.keywordWidth - len(kw)
			if pad < 1 {
				pad = 1
			}
			s.b.WriteString(strings.Repeat(" ", pad))
			writeTokensToBuilder(s.b, e.Value.Tokens)
		}
		s.b.WriteString(";\n")
	}
}

func (e *Entry) writeInlineToBuilder(b *strings.Builder) {
	switch e.Kind {
	case EntryDict:
		b.WriteString(e.Keyword.String())
		b.WriteByte(' ')
		b.WriteString(e.Value.String())
	case EntryReference:
		b.WriteString(Variable(e.Keyword.Name).String())
		b.WriteByte(';')
	case EntryDirective:
		b.WriteByte('#')
		b.WriteString(e.Keyword.Name)
		if len(e.Value.Tokens) != 0 {
			b.WriteByte(' ')
			writeTokensToBuilder(b, e.Value.Tokens)
		}
	default:
		b.WriteString(e.Keyword.String())
		if len(e.Value.Tokens) != 0 {
			b.WriteByte(' ')
			writeTokensToBuilder(b, e.Value.Tokens)
		}
		b.WriteByte(';')
	}
}

// writeTokensToBuilder separates tokens by a single space except after an opening bracket
// and before a closing bracket or ";", so "[1 -1 -2 0 0 0 0]" is written back unmodified.
func writeTokensToBuilder(b *strings.Builder, tokens []Token) {
	for i, t := range tokens {
		if i > 0 && needsSpace(tokens[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
}

func needsSpace(prev, cur Token) bool {
	if prev.Kind == TokenPunct && (prev.Text == "(" || prev.Text == "[") {
		return false
	}
	if cur.Kind == TokenPunct && (cur.Text == ")" || cur.Text == "]" || cur.Text == ";") {
		return false
	}
	return true
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

func isPlainVariableName(name string) bool {
	if name == "" || strings.Contains(name, "//") || strings.Contains(name, "/*") {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isWordByte(name[i]) {
			return false
		}
	}
	return true
}
