package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default; cobra keeps flag state between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// useFileStore points the store at a fresh YAML file for the rest of the test.
func useFileStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	t.Setenv("REGULA_STORE_BACKEND", "file")
	t.Setenv("REGULA_FILE_PATH", path)
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "regula version "))
}

func TestMatchCmd_Adhoc(t *testing.T) {
	out, err := run(t, "", "match", "(ab)*c", "c", "aba")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "(ab)*c\tmatch\t\"c\"", lines[0])
	assert.Equal(t, "(ab)*c\tno match\t\"aba\"", lines[1])
}

func TestMatchCmd_NoMatch(t *testing.T) {
	out, err := run(t, "", "match", "-q", "..", "a")
	assert.ErrorIs(t, err, errNoMatch)
	assert.Empty(t, out)
}

func TestMatchCmd_Stdin(t *testing.T) {
	out, err := run(t, "ab\nb\n\n", "match", "a*b")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\tmatch\t"))
	assert.Equal(t, 1, strings.Count(out, "\tno match\t"))
}

func TestMatchCmd_Errors(t *testing.T) {
	_, err := run(t, "", "match")
	assert.Error(t, err)

	_, err = run(t, "", "match", "(a", "a")
	assert.Error(t, err)

	_, err = run(t, "", "match", "--name", "x", "--all", "a")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestPatternsCmd_Lifecycle(t *testing.T) {
	path := useFileStore(t)

	out, err := run(t, "", "patterns", "add", "digits", "[0-9]+", "--tag", "num", "--description", "decimal digits")
	require.NoError(t, err)
	assert.Equal(t, "saved digits\n", out)

	_, err = run(t, "", "patterns", "add", "word", "[a-z]+")
	require.NoError(t, err)
	assert.FileExists(t, path)

	out, err = run(t, "", "patterns", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "digits")
	assert.Contains(t, out, "word")

	out, err = run(t, "", "patterns", "list", "--tag", "num")
	require.NoError(t, err)
	assert.Contains(t, out, "decimal digits")
	assert.NotContains(t, out, "word")

	out, err = run(t, "", "match", "--name", "digits", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "digits\tmatch")

	out, err = run(t, "", "match", "--all", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "digits\tno match")
	assert.Contains(t, out, "word\tmatch")

	_, err = run(t, "", "patterns", "rm", "digits")
	require.NoError(t, err)

	_, err = run(t, "", "match", "--name", "digits", "2024")
	assert.Error(t, err)
}

func TestPatternsCmd_AddInvalid(t *testing.T) {
	useFileStore(t)

	_, err := run(t, "", "patterns", "add", "bad", "a{")
	assert.Error(t, err)
}

func TestPatternsCmd_Import(t *testing.T) {
	useFileStore(t)

	src := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(src, []byte(`patterns:
  - name: hex
    expr: "[0-9a-f]+"
  - name: bin
    expr: "[01]+"
`), 0644))

	out, err := run(t, "", "patterns", "import", src)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 patterns\n", out)

	out, err = run(t, "", "patterns", "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "bin"`)
	assert.Contains(t, out, `"name": "hex"`)
}

func TestGraphCmd(t *testing.T) {
	out, err := run(t, "", "graph", "ab", "--input", "a")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, "class s1 active;")

	_, err = run(t, "", "graph")
	assert.Error(t, err)
}

func TestInspectCmd(t *testing.T) {
	out, err := run(t, "", "inspect", "a.", "--input", "ab", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Pattern `a.`")
	assert.Contains(t, out, "**Verdict:** accepted")
}
