/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"strings"

	"github.com/acronis/go-stacktrace"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type indexedEntry struct {
	entry *Entry
	scope Path

	// defs holds every definition of the keyword in the scope in the dictionary order; entry is the last one.
	defs []*Entry
}

// Index is a lookup table of primitive and dictionary entries keyed by their fully-qualified path.
// When a keyword is defined more than once in the same scope, the last definition is indexed.
// Earlier definitions are kept for references made from within the later ones.
type Index struct {
	entries *orderedmap.OrderedMap[string, indexedEntry]
}

// NewIndex builds the lookup table for the dictionary. The dictionary is not modified.
func NewIndex(root *Dictionary) *Index {
	idx := &Index{entries: orderedmap.New[string, indexedEntry]()}
	_ = root.Walk(func(scope Path, e *Entry) error {
		if e.Kind == EntryPrimitive || e.Kind == EntryDict {
			key := scope.key(e.Keyword)
			prev, _ := idx.entries.Get(key)
			idx.entries.Set(key, indexedEntry{entry: e, scope: scope, defs: append(prev.defs, e)})
		}
		return nil
	})
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return idx.entries.Len()
}

// Paths returns fully-qualified paths of indexed entries in the order of their first definition.
func (idx *Index) Paths() []string {
	paths := make([]string, 0, idx.entries.Len())
	for pair := idx.entries.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Get returns the entry with the given fully-qualified path, e.g. "/solvers/p".
func (idx *Index) Get(path string) (*Entry, bool) {
	ie, ok := idx.entries.Get(path)
	return ie.entry, ok
}

// Lookup finds the entry referenced by name from the scope and returns it with the scope it is defined in.
//
// A plain name is searched in the scope and then in each enclosing scope up to the root.
// Scoped names are supported as well:
// - ":a.b" and "/a/b" start from the root;
// - ".a" starts from the scope itself, each additional leading dot climbs one scope up ("..a" is the parent's "a");
// - "a.b" descends into the dictionary "a" when there is no keyword "a.b" itself.
// Quoted (pattern) keywords are never matched.
func (idx *Index) Lookup(scope Path, name string) (*Entry, Path, error) {
	if ie, ok := idx.find(scope, name); ok {
		return ie.entry, ie.scope, nil
	}
	return nil, nil, &ReferenceError{Name: name, Scope: scope, Err: ErrReferenceNotFound}
}

func (idx *Index) find(scope Path, name string) (indexedEntry, bool) {
	switch {
	case strings.HasPrefix(name, ":"):
		return idx.descend(nil, strings.Split(name[1:], "."))
	case strings.HasPrefix(name, "/"):
		return idx.descend(nil, strings.Split(name[1:], "/"))
	case strings.HasPrefix(name, "."):
		n := len(name) - len(strings.TrimLeft(name, "."))
		base := scope
		for i := 1; i < n; i++ {
			base = base.Parent()
		}
		return idx.descend(base, strings.Split(name[n:], "."))
	}

	if ie, _, ok := idx.findInScopes(scope, name); ok {
		return ie, true
	}
	if segments := strings.Split(name, "."); len(segments) > 1 {
		if _, s, ok := idx.findInScopes(scope, segments[0]); ok {
			return idx.descend(s, segments)
		}
	}
	return indexedEntry{}, false
}

// findInScopes searches the literal keyword in the scope and its ancestors.
// It returns the scope where the keyword is found.
func (idx *Index) findInScopes(scope Path, name string) (indexedEntry, Path, bool) {
	for s := scope; ; s = s.Parent() {
		if ie, ok := idx.entries.Get(s.key(Key(name))); ok {
			return ie, s, true
		}
		if s.IsRoot() {
			return indexedEntry{}, nil, false
		}
	}
}

func (idx *Index) descend(base Path, segments []string) (indexedEntry, bool) {
	cur := base
	for i, seg := range segments {
		if seg == "" {
			return indexedEntry{}, false
		}
		ie, ok := idx.entries.Get(cur.key(Key(seg)))
		if !ok {
			return indexedEntry{}, false
		}
		if i == len(segments)-1 {
			return ie, true
		}
		if ie.entry.Kind != EntryDict {
			return indexedEntry{}, false
		}
		cur = cur.Child(Key(seg))
	}
	return indexedEntry{}, false
}

// Resolve returns a copy of the dictionary with every reference expanded. The input dictionary is not modified.
//
// A "$name;" entry is replaced by the entries of the referenced dictionary. Entries that follow it override
// the inherited ones: a dictionary is merged into a dictionary with the same keyword recursively,
// any other entry replaces the previous entry with the same keyword in place, new keywords are appended.
// The same rule applies to repeated keywords without references, so every keyword occurs once in the result.
// A reference to the keyword from within its own later definition inherits the previous definition.
// A "$name" token inside a value is replaced by the tokens of the referenced primitive entry;
// a value that consists of a single reference to a dictionary becomes a copy of that dictionary.
// Directive entries are copied as is.
func Resolve(root *Dictionary) (*Dictionary, error) {
	r := newResolver(root)
	return r.resolveDict(nil, root)
}

// ResolveReference returns the fully resolved value of the entry referenced by name from the scope.
// See Index.Lookup for the name syntax.
func ResolveReference(root *Dictionary, scope Path, name string) (Value, error) {
	r := newResolver(root)
	v, err := r.resolveReference(scope, name)
	if err != nil {
		return Value{}, err
	}
	return v.Clone(), nil
}

// Verify checks every reference of the dictionary and reports all failures at once
// as *stacktrace.StackTrace. It returns nil if the dictionary can be resolved.
func Verify(root *Dictionary) error {
	idx := NewIndex(root)
	st := stacktrace.StackTrace{}
	_ = root.Walk(func(scope Path, e *Entry) error {
		for _, name := range referencedNames(e) {
			if _, _, err := idx.Lookup(scope, name); err != nil {
				_ = st.Append(stacktrace.NewWrapped("unresolved reference", err,
					stacktrace.WithInfo("path", scope.String()), stacktrace.WithType("reference")))
			}
		}
		return nil
	})
	if len(st.List) > 0 {
		return &st
	}

	// All names are found; cycles and kind mismatches are only visible during resolution.
	if _, err := Resolve(root); err != nil {
		return stacktrace.NewWrapped("unresolvable reference", err, stacktrace.WithType("reference"))
	}
	return nil
}

func referencedNames(e *Entry) []string {
	switch e.Kind {
	case EntryReference:
		return []string{e.Keyword.Name}
	case EntryPrimitive:
		var names []string
		for _, t := range e.Value.Tokens {
			if t.Kind == TokenVariable {
				names = append(names, t.Text)
			}
		}
		return names
	}
	return nil
}

type resolver struct {
	idx        *Index
	done       map[*Entry]Value
	inProgress map[*Entry]bool
}

func newResolver(root *Dictionary) *resolver {
	return &resolver{
		idx:        NewIndex(root),
		done:       make(map[*Entry]Value),
		inProgress: make(map[*Entry]bool),
	}
}

func (r *resolver) resolveDict(scope Path, d *Dictionary) (*Dictionary, error) {
	out := NewDictionary()
	if d == nil {
		return out, nil
	}
	for _, e := range d.Entries {
		switch e.Kind {
		case EntryReference:
			v, err := r.resolveReference(scope, e.Keyword.Name)
			if err != nil {
				return nil, err
			}
			if !v.IsDict() {
				return nil, &ReferenceError{Name: e.Keyword.Name, Scope: scope, Err: ErrNotDictionary}
			}
			for _, inherited := range v.Dict.Clone().Entries {
				mergeEntry(out, inherited)
			}

		case EntryDirective:
			out.Add(e.Clone())

		default:
			v, err := r.resolveEntry(scope, e)
			if err != nil {
				return nil, err
			}
			kind := EntryPrimitive
			if v.IsDict() {
				kind = EntryDict
			}
			mergeEntry(out, &Entry{Kind: kind, Keyword: e.Keyword, Value: v.Clone()})
		}
	}
	return out, nil
}

func (r *resolver) resolveReference(scope Path, name string) (Value, error) {
	target, targetScope, err := r.idx.Lookup(scope, name)
	if err != nil {
		return Value{}, err
	}
	if r.inProgress[target] {
		// "a { x 1; } a { $a; y 2; }" inherits the earlier "a".
		if target = r.earlierDefinition(targetScope, target); target == nil {
			return Value{}, &ReferenceError{Name: name, Scope: scope, Err: ErrReferenceCycle}
		}
	}
	return r.resolveEntry(targetScope, target)
}

// earlierDefinition returns the closest definition of the same keyword in the scope that precedes e
// and is not being resolved, or nil if there is none.
func (r *resolver) earlierDefinition(scope Path, e *Entry) *Entry {
	ie, ok := r.idx.entries.Get(scope.key(e.Keyword))
	if !ok {
		return nil
	}
	pos := -1
	for i, def := range ie.defs {
		if def == e {
			pos = i
			break
		}
	}
	for i := pos - 1; i >= 0; i-- {
		if !r.inProgress[ie.defs[i]] {
			return ie.defs[i]
		}
	}
	return nil
}

// resolveEntry returns the resolved value of the primitive or dictionary entry defined in the scope.
// The returned value is shared and must be cloned before it is modified.
func (r *resolver) resolveEntry(scope Path, e *Entry) (Value, error) {
	if v, ok := r.done[e]; ok {
		return v, nil
	}
	r.inProgress[e] = true
	defer delete(r.inProgress, e)

	var v Value
	var err error
	if e.Kind == EntryDict {
		var d *Dictionary
		if d, err = r.resolveDict(scope.Child(e.Keyword), e.Value.Dict); err == nil {
			v = DictValue(d)
		}
	} else {
		v, err = r.resolveTokens(scope, e.Value.Tokens)
	}
	if err != nil {
		return Value{}, err
	}
	r.done[e] = v
	return v, nil
}

func (r *resolver) resolveTokens(scope Path, tokens []Token) (Value, error) {
	if len(tokens) == 1 && tokens[0].Kind == TokenVariable {
		return r.resolveReference(scope, tokens[0].Text)
	}
	if !TokensValue(tokens...).HasReferences() {
		return TokensValue(tokens...), nil
	}
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != TokenVariable {
			out = append(out, t)
			continue
		}
		v, err := r.resolveReference(scope, t.Text)
		if err != nil {
			return Value{}, err
		}
		if v.IsDict() {
			return Value{}, &ReferenceError{Name: t.Text, Scope: scope, Err: ErrNotPrimitive}
		}
		out = append(out, v.Tokens...)
	}
	return TokensValue(out...), nil
}

// mergeEntry adds e to the dictionary overriding the previous entry with the same keyword.
func mergeEntry(d *Dictionary, e *Entry) {
	idx := d.lastIndex(e.Keyword)
	if idx == -1 {
		d.Add(e)
		return
	}
	existing := d.Entries[idx]
	if existing.Kind == EntryDict && e.Kind == EntryDict {
		for _, sub := range e.Value.Dict.Entries {
			mergeEntry(existing.Value.Dict, sub)
		}
		return
	}
	d.Entries[idx] = e
}
