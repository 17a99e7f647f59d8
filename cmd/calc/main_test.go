package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator"
)

func TestCaret(t *testing.T) {
	cases := []struct {
		name       string
		in         string
		start, end int
		want       string
	}{
		{"first", "x + 1", 0, 0, ""},
		{"middle", "1 + foo", 4, 6, "    "},
		{"tabs", "\t1 +\tfoo", 5, 7, "\t   \t"},
		{"eof", "1 +", 3, 3, "   "},
		{"unicode", "π + q", 4, 4, "    "},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want := c.want + red(strings.Repeat("^", c.end-c.start+1))
			assert.Equal(t, want, caret(c.in, c.start, c.end))
		})
	}
}

func TestLineAt(t *testing.T) {
	cases := []struct {
		name       string
		in         string
		start, end int
		line       string
		s, e       int
	}{
		{"single", "1 + foo", 4, 6, "1 + foo", 4, 6},
		{"second", "max 1\n+ foo", 8, 10, "+ foo", 2, 4},
		{"eof", "(1 +\n2", 6, 6, "2", 1, 1},
		{"newline", "1 +\n", 4, 4, "", 0, 0},
		{"unicode", "π\nπ q", 4, 4, "π q", 2, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			line, s, e := lineAt(c.in, c.start, c.end)
			assert.Equal(t, c.line, line)
			assert.Equal(t, c.s, s)
			assert.Equal(t, c.e, e)
		})
	}
}

func TestReportMultiLine(t *testing.T) {
	env := calculator.NewEnvironment()
	src := "1 +\n2 + foo"
	_, err := calculator.Evaluate(src, env)
	require.Error(t, err)
	var b bytes.Buffer
	report(&b, src, err)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " "+red("|")+" 2 + foo", lines[1])
	assert.Equal(t, " "+red("|")+" "+caret("2 + foo", 4, 6), lines[2])
}

func TestLoadVars(t *testing.T) {
	name := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(name, []byte("g: 0.5\nanswer: 42\n"), 0o600))
	vars, err := loadVars(name)
	require.NoError(t, err)
	assert.Equal(t, map[string]float32{"g": 0.5, "answer": 42}, vars)

	require.NoError(t, os.WriteFile(name, []byte("g: [1, 2]\n"), 0o600))
	_, err = loadVars(name)
	assert.Error(t, err)

	_, err = loadVars(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	env := calculator.NewEnvironment(calculator.WithBuiltins())
	in := strings.NewReader("let x = 3\n\nx * 2\n$ + 1\n1 + y\n")
	var out, errs bytes.Buffer
	ok := run(in, &out, &errs, env, "%g\n")
	assert.False(t, ok)
	assert.Equal(t, "3\n6\n7\n", out.String())
	assert.Contains(t, errs.String(), `undefined variable: "y"`)
	assert.Contains(t, errs.String(), "1 + y")
}

func TestSplitWord(t *testing.T) {
	head, word := splitWord("2 * si")
	assert.Equal(t, "2 * ", head)
	assert.Equal(t, "si", word)
	head, word = splitWord("(")
	assert.Equal(t, "(", head)
	assert.Equal(t, "", word)
	head, word = splitWord("abc")
	assert.Equal(t, "", head)
	assert.Equal(t, "abc", word)
}
