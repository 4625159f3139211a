package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()
	return out.String(), err
}

func TestTokensCommand(t *testing.T) {
	out, err := run(t, "var x = 12;", "tokens")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"Keyword", "var"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"NaturalLiteral", "12"}, strings.Fields(lines[3]))

	_, err = run(t, "var x = #;", "tokens", "-")
	assert.ErrorContains(t, err, "unexpected character '#' at position 8")
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.sl")
	require.NoError(t, os.WriteFile(path, []byte("var x = 1;"), 0o644))

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)

	var tree map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "program", tree["type"])
	assert.Len(t, tree["statements"], 1)

	out, err = run(t, "print 1;", "parse", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "type: printStatement")
}

func TestParseCommandPartial(t *testing.T) {
	out, err := run(t, "var a = 1; var b = 2", "parse", "-f", "yaml")
	assert.ErrorContains(t, err, "Expected ';' after variable declaration.")
	assert.Contains(t, out, "identifier: a")
	assert.NotContains(t, out, "identifier: b")

	_, err = run(t, "print ((1));", "parse", "--max-depth", "2")
	assert.ErrorContains(t, err, "Maximum nesting depth exceeded.")

	_, err = run(t, "print ((1));", "parse", "--max-depth", "0")
	assert.NoError(t, err)
}

func TestRootConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "simplelang.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("format = \"dump\"\n"), 0o644))

	out, err := run(t, "print 1;", "parse", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "PrintStmt")

	out, err = run(t, "print 1;", "parse", "--config", cfg, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "printStatement"`)

	_, err = run(t, "print 1;", "parse", "--log-level", "noisy")
	assert.ErrorContains(t, err, "invalid log_level")

	_, err = run(t, "print 1;", "parse", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestParseCommandHelp(t *testing.T) {
	out, err := run(t, "", "parse", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "maximum nesting depth, 0 for no limit (default 256)")

	_, err = run(t, "print "+strings.Repeat("(", 300)+"1"+strings.Repeat(")", 300)+";", "parse")
	assert.ErrorContains(t, err, "Maximum nesting depth exceeded.")
}
