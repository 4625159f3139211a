package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "simplelang.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(writeConfig(t, "log_level = \"debug\"\nformat = \"yaml\"\nmax_depth = 32\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "debug", Format: "yaml", MaxDepth: 32}, cfg)

	cfg, err = LoadConfig(writeConfig(t, "format = \"dump\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, "dump", cfg.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		data   string
		errMsg string
	}{
		{"format = \"xml\"\n", "invalid format"},
		{"log_level = \"loud\"\n", "invalid log_level"},
		{"max_depth = -1\n", "invalid max_depth"},
		{"colour = true\n", "unknown config key"},
		{"format = \n", "failed to read config"},
	}

	for _, c := range cases {
		_, err := LoadConfig(writeConfig(t, c.data))
		require.Error(t, err, c.data)
		assert.Contains(t, err.Error(), c.errMsg, c.data)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
