/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const cavityU = `
dimensions      [0 1 -1 0 0 0 0];
internalField   uniform (0 0 0);
boundaryField
{
    movingWall
    {
        type            fixedValue;
        value           uniform (1 0 0);
    }
    fixedWalls
    {
        type            noSlip;
    }
    "(front|back)"
    {
        type            empty;
    }
}
`

func Test_DictionaryGet(t *testing.T) {
	d := MustParse("a 1; b { c 2; } a 3; $b;")

	e, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, "3", e.Value.String())

	e, ok = d.Get("b")
	require.True(t, ok)
	require.Equal(t, EntryDict, e.Kind)

	_, ok = d.Get("c")
	require.False(t, ok)

	_, ok = d.Get("$b")
	require.False(t, ok)
}

func Test_DictionaryGetPattern(t *testing.T) {
	d := MustParse(cavityU)
	bf, ok := d.Get("boundaryField")
	require.True(t, ok)

	e, ok := bf.Value.Dict.GetPattern("(front|back)")
	require.True(t, ok)
	require.Equal(t, PatternKey("(front|back)"), e.Keyword)

	_, ok = bf.Value.Dict.Get("(front|back)")
	require.False(t, ok)
	_, ok = bf.Value.Dict.GetPattern("movingWall")
	require.False(t, ok)
}

func Test_DictionaryLookup(t *testing.T) {
	d := MustParse(cavityU)

	tests := map[string]struct {
		path   []string
		want   string
		wantOK bool
	}{
		"top level":           {path: []string{"internalField"}, want: "uniform (0 0 0)", wantOK: true},
		"nested":              {path: []string{"boundaryField", "movingWall", "value"}, want: "uniform (1 0 0)", wantOK: true},
		"missing":             {path: []string{"boundaryField", "inlet", "type"}},
		"through a primitive": {path: []string{"dimensions", "type"}},
		"empty path":          {},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, ok := d.Lookup(tt.path...)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, e.Value.String())
			}
		})
	}
}

func Test_DictionarySetRemove(t *testing.T) {
	d := MustParse("a 1; b 2; a 3;")

	d.Set(NewPrimitive(Key("a"), Number("4")))
	require.Equal(t, "a 1; b 2; a 4;", inline(d))

	d.Set(NewPrimitive(Key("c"), Word("x")))
	require.Equal(t, "a 1; b 2; a 4; c x;", inline(d))

	require.Equal(t, 2, d.Remove(Key("a")))
	require.Equal(t, "b 2; c x;", inline(d))
	require.Equal(t, 0, d.Remove(Key("a")))
	require.Equal(t, 0, d.Remove(PatternKey("b")))

	var empty *Dictionary
	require.Equal(t, 0, empty.Remove(Key("a")))
	require.Equal(t, 2, d.Len())
}

func Test_DictionaryCloneEqual(t *testing.T) {
	d := MustParse(cavityU)
	cp := d.Clone()
	require.True(t, d.Equal(cp))

	e, ok := cp.Lookup("boundaryField", "fixedWalls", "type")
	require.True(t, ok)
	e.Value.Tokens[0] = Word("wall")
	require.False(t, d.Equal(cp))

	orig, ok := d.Lookup("boundaryField", "fixedWalls", "type")
	require.True(t, ok)
	require.Equal(t, "noSlip", orig.Value.String())
}

func Test_DictionaryEqual(t *testing.T) {
	tests := map[string]struct {
		a, b string
		want bool
	}{
		"same":                   {a: "a 1; b { c 2; }", b: "a 1; b { c 2; }", want: true},
		"layout and comments":    {a: "a 1;b{c 2;}", b: "a   1; // x\nb\n{\n    c 2;\n}\n", want: true},
		"order matters":          {a: "a 1; b 2;", b: "b 2; a 1;"},
		"number text matters":    {a: "a 1e-05;", b: "a 0.00001;"},
		"pattern flag matters":   {a: "a 1;", b: `"a" 1;`},
		"word and string differ": {a: "a b;", b: `a "b";`},
		"dict and empty value":   {a: "a {}", b: "a;"},
		"both empty":             {a: "", b: "// comment only", want: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, MustParse(tt.a).Equal(MustParse(tt.b)))
		})
	}
}

func Test_DictionaryWalk(t *testing.T) {
	d := MustParse(`a 1; b { c 2; "d.*" { e 3; } } f 4;`)

	var visited []string
	require.NoError(t, d.Walk(func(scope Path, e *Entry) error {
		visited = append(visited, scope.key(e.Keyword))
		return nil
	}))
	require.Equal(t, []string{"/a", "/b", "/b/c", `/b/"d.*"`, `/b/"d.*"/e`, "/f"}, visited)

	errStop := errors.New("stop")
	count := 0
	err := d.Walk(func(_ Path, _ *Entry) error {
		count++
		if count == 3 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, 3, count)
}

func Test_ValueViews(t *testing.T) {
	d := MustParse(`
scalar 1e-05;
word   PCG;
text   "system";
field  uniform (1 0 0);
ref    $scalar;
sub    { a 1; }
`)
	get := func(name string) Value {
		e, ok := d.Get(name)
		require.True(t, ok, name)
		return e.Value
	}

	require.True(t, get("scalar").IsScalar())
	require.True(t, get("word").IsScalar())
	require.False(t, get("text").IsScalar())
	require.True(t, get("text").IsString())
	require.False(t, get("field").IsScalar())
	require.True(t, get("sub").IsDict())

	payload, ok := get("field").Uniform()
	require.True(t, ok)
	require.Equal(t, []Token{Punct('('), Number("1"), Number("0"), Number("0"), Punct(')')}, payload)
	_, ok = get("word").Uniform()
	require.False(t, ok)

	name, ok := get("ref").Reference()
	require.True(t, ok)
	require.Equal(t, "scalar", name)
	require.True(t, get("ref").HasReferences())
	_, ok = get("field").Reference()
	require.False(t, ok)

	require.Equal(t, "{ a 1; }", get("sub").String())
}

func Test_TokenString(t *testing.T) {
	tests := map[string]struct {
		tok  Token
		want string
	}{
		"word":                {tok: Word("fixedValue"), want: "fixedValue"},
		"number":              {tok: Number("1e-05"), want: "1e-05"},
		"string":              {tok: Quoted(`a "b" \c`), want: `"a \"b\" \\c"`},
		"punct":               {tok: Punct('['), want: "["},
		"plain variable":      {tok: Variable("geometry.radius"), want: "$geometry.radius"},
		"absolute variable":   {tok: Variable(":a.b"), want: "$:a.b"},
		"variable with space": {tok: Variable("a b"), want: "${a b}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.tok.String())
		})
	}
}

func Test_Path(t *testing.T) {
	var root Path
	require.True(t, root.IsRoot())
	require.Equal(t, "/", root.String())

	p := root.Child(Key("solvers")).Child(PatternKey("p.*"))
	require.Equal(t, `/solvers/"p.*"`, p.String())
	require.Equal(t, "/solvers", p.Parent().String())
	require.True(t, p.Parent().Parent().IsRoot())
	require.True(t, root.Parent().IsRoot())

	require.Equal(t, `/a\/b`, root.Child(Key("a/b")).String())
	require.Equal(t, `/a\\b/c`, root.Child(Key(`a\b`)).Child(Key("c")).String())
	require.Equal(t, `/"x\/y"`, root.Child(PatternKey("x/y")).String())
}

// inline returns top-level entries in a single line.
func inline(d *Dictionary) string {
	s := DictValue(d).String()
	return s[2 : len(s)-2]
}
