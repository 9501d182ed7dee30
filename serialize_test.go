/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acronis/go-foamdict/pkg/testsupp"
)

func Test_Serialize(t *testing.T) {
	tests := map[string]struct {
		input string
		opts  []SerializerOption
		want  string
	}{
		"default layout": {
			input: "a 1; longKeyword uniform (0 0 0); nNonOrthogonalCorrectors 0;",
			want: "a               1;\n" +
				"longKeyword     uniform (0 0 0);\n" +
				"nNonOrthogonalCorrectors 0;\n",
		},
		"blank line around top-level dictionaries": {
			input: "a 1; b { c 2; d { e 3; } } f 4; g 5;",
			opts:  []SerializerOption{WithKeywordWidth(0)},
			want:  "a 1;\n\nb\n{\n    c 2;\n    d\n    {\n        e 3;\n    }\n}\n\nf 4;\ng 5;\n",
		},
		"custom indent": {
			input: "b { c 2; }",
			opts:  []SerializerOption{WithIndent("\t"), WithKeywordWidth(0)},
			want:  "b\n{\n\tc 2;\n}\n",
		},
		"banner": {
			input: "a 1;",
			opts:  []SerializerOption{WithBanner("Generated\n\nby foamdict\n"), WithKeywordWidth(0)},
			want:  "// Generated\n//\n// by foamdict\n\na 1;\n",
		},
		"empty value": {
			input: "a;",
			want:  "a;\n",
		},
		"empty dictionary": {
			input: "a {}",
			want:  "a\n{\n}\n",
		},
		"references and patterns": {
			input: `"p.*" { $q; tolerance 1e-05; } r ${q} $:a.b;`,
			opts:  []SerializerOption{WithKeywordWidth(0)},
			want:  "\"p.*\"\n{\n    $q;\n    tolerance 1e-05;\n}\n\nr $q $:a.b;\n",
		},
		"dimensions": {
			input: "dimensions [1 -1 -2 0 0 0 0];",
			want:  "dimensions      [1 -1 -2 0 0 0 0];\n",
		},
		"escaped strings": {
			input: `a "say \"hi\"";`,
			opts:  []SerializerOption{WithKeywordWidth(0)},
			want:  "a \"say \\\"hi\\\"\";\n",
		},
		"empty": {
			input: "// nothing",
			want:  "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := MustParse(tt.input)
			require.Equal(t, tt.want, Serialize(d, tt.opts...))
		})
	}
}

func Test_SerializeDirective(t *testing.T) {
	d := MustParse("#include \"initialConditions\"\n#inputMode merge\na 1;", WithDirectives(true))
	want := "#include \"initialConditions\"\n#inputMode merge\na 1;\n"
	require.Equal(t, want, Serialize(d, WithKeywordWidth(0)))
	require.True(t, d.Equal(MustParse(Serialize(d), WithDirectives(true))))
}

func Test_SerializeRoundTrip(t *testing.T) {
	inputs := map[string]string{
		"nested":     "a { b { c { d { e 1; } } } }",
		"patterns":   `"(U|k|epsilon)" { solver smoothSolver; } "p.*" { $q; }`,
		"lists":      "vertices ((0 0 0) (1 0 0)); faces ((3 7 6 2)); empty ();",
		"references": "a 1; b $a; c (${a} $:a); d { $e; f $..a; }",
		"strings":    `a "with // and /* inside"; b "tab\there"; c "\\";`,
		"keywords":   "div(phi,U) Gauss linear; laplacian(nu,U) Gauss linear corrected;",
		"duplicates": "a 1; a 2; b {} b { c 1; }",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			d := MustParse(input)
			text := Serialize(d)
			again, err := Parse(text)
			require.NoError(t, err, text)
			require.True(t, d.Equal(again), text)
			require.Equal(t, text, Serialize(again))
			require.Equal(t, Fingerprint(d), Fingerprint(again))
		})
	}
}

func Test_SerializeGolden(t *testing.T) {
	testsupp.InitLog(t)

	files, err := filepath.Glob(filepath.Join("testdata", "golden", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar := testsupp.ReadArchive(t, file)
			require.Contains(t, ar, "input")
			require.Contains(t, ar, "want")

			d, err := Parse(ar["input"], WithFileName(file))
			require.NoError(t, err)
			require.Equal(t, ar["want"], Serialize(d))

			again, err := Parse(ar["want"])
			require.NoError(t, err)
			require.True(t, d.Equal(again))

			if want, ok := ar["resolved"]; ok {
				resolved, err := Resolve(d)
				require.NoError(t, err)
				require.Equal(t, want, Serialize(resolved))
				require.NoError(t, Verify(d))
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func Test_Write(t *testing.T) {
	d := MustParse("a 1;")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, WithKeywordWidth(0)))
	require.Equal(t, "a 1;\n", buf.String())

	err := Write(failingWriter{}, d)
	require.EqualError(t, err, "write dictionary: disk full")
}

func Test_WriteFile(t *testing.T) {
	testsupp.InitLog(t)

	path := filepath.Join(t.TempDir(), "controlDict")
	d := NewDocument(Header{Version: "2.0", Format: "ascii", Class: "dictionary", Location: "system", Object: "controlDict"})
	d.Add(NewPrimitive(Key("application"), Word("icoFoam")))
	require.NoError(t, WriteFile(path, d, WithBanner("Written by foamdict")))

	got, err := ParseFile(path)
	require.NoError(t, err)
	require.True(t, d.Equal(got))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "controlDict"), d)
	require.ErrorContains(t, err, "write dictionary file")
}

func Test_CaseRoundTrip(t *testing.T) {
	testsupp.InitLog(t)

	dir := testsupp.CopyFixture(t, filepath.Join("testdata", "cavity"))
	for _, rel := range []string{"0/U", "0/p", "system/controlDict", "system/fvSolution"} {
		t.Run(rel, func(t *testing.T) {
			path := filepath.Join(dir, filepath.FromSlash(rel))
			d, err := ParseFile(path)
			require.NoError(t, err)
			h, ok := d.Header()
			require.True(t, ok)
			require.Equal(t, filepath.Base(rel), h.Object)

			require.NoError(t, WriteFile(path, d))
			again, err := ParseFile(path)
			require.NoError(t, err)
			require.True(t, d.Equal(again))
			require.Equal(t, Fingerprint(d), Fingerprint(again))
			require.NoError(t, Verify(again))
		})
	}
}
