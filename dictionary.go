/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"strings"
)

// TokenKind is a kind of the token in the primitive entry value.
type TokenKind uint8

const (
	// TokenWord is a bare word, e.g. "fixedValue" or "div(phi,U)".
	TokenWord TokenKind = iota + 1
	// TokenNumber is a bare word that reads as a number. Its raw text is preserved.
	TokenNumber
	// TokenString is a double-quoted string. Text holds the unescaped content.
	TokenString
	// TokenPunct is a bracket or a terminator inside a bracketed list.
	TokenPunct
	// TokenVariable is a "$name" or "${name}" reference inside a value. Text holds the name.
	TokenVariable
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenPunct:
		return "punct"
	case TokenVariable:
		return "variable"
	}
	return "unknown"
}

// Token is a single opaque token of the primitive entry value.
type Token struct {
	Kind TokenKind
	Text string
}

// Word constructs a word token.
func Word(s string) Token {
	return Token{Kind: TokenWord, Text: s}
}

// Number constructs a number token from its textual form.
func Number(s string) Token {
	return Token{Kind: TokenNumber, Text: s}
}

// Quoted constructs a string token.
func Quoted(s string) Token {
	return Token{Kind: TokenString, Text: s}
}

// Punct constructs a punctuation token.
func Punct(c byte) Token {
	return Token{Kind: TokenPunct, Text: string(c)}
}

// Variable constructs a reference token. Name must not contain the "$" marker.
func Variable(name string) Token {
	return Token{Kind: TokenVariable, Text: name}
}

// String returns the token as it is written in a dictionary file.
func (t Token) String() string {
	switch t.Kind {
	case TokenString:
		return quote(t.Text)
	case TokenVariable:
		if isPlainVariableName(t.Text) {
			return "$" + t.Text
		}
		return "${" + t.Text + "}"
	}
	return t.Text
}

// Keyword is a name of the entry.
type Keyword struct {
	Name string

	// Pattern is true if the keyword was quoted.
	// Quoted keywords are matched against field names by the consumer of the dictionary,
	// here they are kept as plain strings.
	Pattern bool
}

// Key constructs a literal keyword.
func Key(name string) Keyword {
	return Keyword{Name: name}
}

// PatternKey constructs a quoted (pattern) keyword.
func PatternKey(pattern string) Keyword {
	return Keyword{Name: pattern, Pattern: true}
}

// String returns the keyword as it is written in a dictionary file.
func (k Keyword) String() string {
	if k.Pattern {
		return quote(k.Name)
	}
	return k.Name
}

// Value is a value of the entry. Exactly one of Tokens and Dict is used.
type Value struct {
	Tokens []Token
	Dict   *Dictionary
}

// TokensValue constructs a primitive value.
func TokensValue(tokens ...Token) Value {
	return Value{Tokens: tokens}
}

// DictValue constructs a dictionary value.
func DictValue(d *Dictionary) Value {
	return Value{Dict: d}
}

// IsDict returns true if the value is a nested dictionary.
func (v Value) IsDict() bool {
	return v.Dict != nil
}

// IsScalar returns true if the value is a single word or number.
func (v Value) IsScalar() bool {
	return v.Dict == nil && len(v.Tokens) == 1 &&
		(v.Tokens[0].Kind == TokenWord || v.Tokens[0].Kind == TokenNumber)
}

// IsString returns true if the value is a single quoted string.
func (v Value) IsString() bool {
	return v.Dict == nil && len(v.Tokens) == 1 && v.Tokens[0].Kind == TokenString
}

// Uniform returns the payload of the uniform field value, e.g. "0" for "uniform 0" or "(0 0 0)" for "uniform (0 0 0)".
func (v Value) Uniform() ([]Token, bool) {
	if v.Dict != nil || len(v.Tokens) < 2 || v.Tokens[0] != Word("uniform") {
		return nil, false
	}
	return v.Tokens[1:], true
}

// Reference returns the name of the referenced entry if the value is a single "$name" token.
func (v Value) Reference() (string, bool) {
	if v.Dict != nil || len(v.Tokens) != 1 || v.Tokens[0].Kind != TokenVariable {
		return "", false
	}
	return v.Tokens[0].Text, true
}

// HasReferences returns true if any of the value tokens is a reference.
func (v Value) HasReferences() bool {
	for _, t := range v.Tokens {
		if t.Kind == TokenVariable {
			return true
		}
	}
	return false
}

// String returns the primitive value as it is written in a dictionary file.
// Dictionary values are written in a single line.
func (v Value) String() string {
	var b strings.Builder
	if v.Dict != nil {
		b.WriteString("{ ")
		for _, e := range v.Dict.Entries {
			e.writeInlineToBuilder(&b)
			b.WriteByte(' ')
		}
		b.WriteByte('}')
		return b.String()
	}
	writeTokensToBuilder(&b, v.Tokens)
	return b.String()
}

// Equal reports whether both values have the same tokens or equal dictionaries.
func (v Value) Equal(other Value) bool {
	if (v.Dict == nil) != (other.Dict == nil) {
		return false
	}
	if v.Dict != nil {
		return v.Dict.Equal(other.Dict)
	}
	if len(v.Tokens) != len(other.Tokens) {
		return false
	}
	for i := range v.Tokens {
		if v.Tokens[i] != other.Tokens[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	if v.Dict != nil {
		return Value{Dict: v.Dict.Clone()}
	}
	if v.Tokens == nil {
		return Value{}
	}
	return Value{Tokens: append([]Token(nil), v.Tokens...)}
}

// EntryKind is a kind of the dictionary entry.
type EntryKind uint8

const (
	// EntryPrimitive is "keyword tokens...;".
	EntryPrimitive EntryKind = iota
	// EntryDict is "keyword { ... }".
	EntryDict
	// EntryReference is "$name;". The keyword name holds the referenced name.
	EntryReference
	// EntryDirective is "#name args..." written on a single line. The keyword name holds the directive name.
	EntryDirective
)

// String returns the name of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryPrimitive:
		return "primitive"
	case EntryDict:
		return "dictionary"
	case EntryReference:
		return "reference"
	case EntryDirective:
		return "directive"
	}
	return "unknown"
}

// Entry is a named value of the dictionary.
type Entry struct {
	Kind    EntryKind
	Keyword Keyword
	Value   Value
}

// NewPrimitive constructs a primitive entry.
func NewPrimitive(k Keyword, tokens ...Token) *Entry {
	return &Entry{Kind: EntryPrimitive, Keyword: k, Value: TokensValue(tokens...)}
}

// NewDict constructs a dictionary entry.
func NewDict(k Keyword, d *Dictionary) *Entry {
	if d == nil {
		d = NewDictionary()
	}
	return &Entry{Kind: EntryDict, Keyword: k, Value: DictValue(d)}
}

// NewReference constructs an entry that inherits the contents of the named entry.
func NewReference(name string) *Entry {
	return &Entry{Kind: EntryReference, Keyword: Key(name)}
}

// NewDirective constructs a directive entry, e.g. NewDirective("include", Quoted("initialConditions")).
func NewDirective(name string, args ...Token) *Entry {
	return &Entry{Kind: EntryDirective, Keyword: Key(name), Value: TokensValue(args...)}
}

// Equal reports whether both entries have the same kind, keyword and value.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind && e.Keyword == other.Keyword && e.Value.Equal(other.Value)
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	return &Entry{Kind: e.Kind, Keyword: e.Keyword, Value: e.Value.Clone()}
}

// Dictionary is an ordered collection of entries. Keywords are not required to be unique.
type Dictionary struct {
	Entries []*Entry
}

// NewDictionary constructs a dictionary with the given entries.
func NewDictionary(entries ...*Entry) *Dictionary {
	return &Dictionary{Entries: entries}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Get returns the last primitive or dictionary entry with the given literal keyword.
func (d *Dictionary) Get(name string) (*Entry, bool) {
	return d.get(Key(name))
}

// GetPattern returns the last primitive or dictionary entry with the given quoted keyword.
// The pattern is compared as a plain string.
func (d *Dictionary) GetPattern(pattern string) (*Entry, bool) {
	return d.get(PatternKey(pattern))
}

func (d *Dictionary) get(k Keyword) (*Entry, bool) {
	if d == nil {
		return nil, false
	}
	for i := len(d.Entries) - 1; i >= 0; i-- {
		e := d.Entries[i]
		if e.Keyword == k && (e.Kind == EntryPrimitive || e.Kind == EntryDict) {
			return e, true
		}
	}
	return nil, false
}

// Lookup descends through nested dictionaries by literal keywords and returns the entry at the end of the path.
func (d *Dictionary) Lookup(path ...string) (*Entry, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := d
	for i, name := range path {
		e, ok := cur.Get(name)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return e, true
		}
		if e.Kind != EntryDict {
			return nil, false
		}
		cur = e.Value.Dict
	}
	return nil, false
}

// Add appends entries to the end of the dictionary.
func (d *Dictionary) Add(entries ...*Entry) {
	d.Entries = append(d.Entries, entries...)
}

// Set replaces the last entry with the same keyword in place, or appends the entry if there is no such one.
func (d *Dictionary) Set(e *Entry) {
	if idx := d.lastIndex(e.Keyword); idx != -1 {
		d.Entries[idx] = e
		return
	}
	d.Entries = append(d.Entries, e)
}

// Remove removes all primitive and dictionary entries with the given keyword and returns their number.
func (d *Dictionary) Remove(k Keyword) int {
	if d == nil {
		return 0
	}
	removed := 0
	kept := d.Entries[:0]
	for _, e := range d.Entries {
		if e.Keyword == k && (e.Kind == EntryPrimitive || e.Kind == EntryDict) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(d.Entries); i++ {
		d.Entries[i] = nil
	}
	d.Entries = kept
	return removed
}

func (d *Dictionary) lastIndex(k Keyword) int {
	for i := len(d.Entries) - 1; i >= 0; i-- {
		e := d.Entries[i]
		if e.Keyword == k && (e.Kind == EntryPrimitive || e.Kind == EntryDict) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the dictionary.
func (d *Dictionary) Clone() *Dictionary {
	if d == nil {
		return nil
	}
	cp := &Dictionary{Entries: make([]*Entry, len(d.Entries))}
	for i, e := range d.Entries {
		cp.Entries[i] = e.Clone()
	}
	return cp
}

// Equal reports whether both dictionaries have the same ordered entries with the same values.
func (d *Dictionary) Equal(other *Dictionary) bool {
	if d.Len() != other.Len() {
		return false
	}
	for i := 0; i < d.Len(); i++ {
		if !d.Entries[i].Equal(other.Entries[i]) {
			return false
		}
	}
	return true
}

// WalkFunc is called for every entry with the path of the dictionary that contains the entry.
type WalkFunc func(scope Path, e *Entry) error

// Walk visits entries depth-first in the dictionary order.
// Entries of a nested dictionary are visited right after the entry of that dictionary.
func (d *Dictionary) Walk(fn WalkFunc) error {
	return d.walk(nil, fn)
}

func (d *Dictionary) walk(scope Path, fn WalkFunc) error {
	if d == nil {
		return nil
	}
	for _, e := range d.Entries {
		if err := fn(scope, e); err != nil {
			return err
		}
		if e.Kind == EntryDict {
			if err := e.Value.Dict.walk(scope.Child(e.Keyword), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Path is a location of the dictionary in the tree. The root dictionary has an empty path.
type Path []string

// Child returns a new path to the nested dictionary.
func (p Path) Child(k Keyword) Path {
	cp := make(Path, len(p), len(p)+1)
	copy(cp, p)
	return append(cp, k.String())
}

// Parent returns the path of the enclosing dictionary. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// IsRoot returns true if the path points to the root dictionary.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// String returns the path with segments separated by "/", e.g. "/solvers/\"p.*\"".
// A "/" or "\" inside a segment is escaped with a backslash: keyword a/b is written as "/a\/b".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(pathSegmentEscaper.Replace(seg))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

var pathSegmentEscaper = strings.NewReplacer(`\`, `\\`, "/", `\/`)

func (p Path) key(k Keyword) string {
	return p.Child(k).String()
}
