package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := InitConfig(path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[search]
min_word_length = 4
workers = 2

[grid]
rows = 5
cols = 5

[dict]
path = "/usr/share/dict/words"

[score]
points = [0, 1, 2, 3]
extra_letter = 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Search.MinWordLength)
	assert.Equal(t, 2, cfg.Search.Workers)
	assert.Equal(t, GridConfig{Rows: 5, Cols: 5}, cfg.Grid)
	assert.Equal(t, "/usr/share/dict/words", cfg.Dict.Path)
	assert.Equal(t, []int{0, 1, 2, 3}, cfg.Score.Points)
	assert.Equal(t, 5, cfg.Score.ExtraLetter)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultConfig().Display, cfg.Display)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[search]
min_word_length = "three"
workers = 3

[grid]
rows = 5
cols = 6

[display]
show_paths = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Search.MinWordLength, "bad value falls back to the default")
	assert.Equal(t, 3, cfg.Search.Workers)
	assert.Equal(t, GridConfig{Rows: 5, Cols: 6}, cfg.Grid)
	assert.True(t, cfg.Display.ShowPaths)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeConfig(t, "this is [[ not toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSanitize(t *testing.T) {
	cfg := &Config{
		Search: SearchConfig{MinWordLength: 0, Workers: -2},
		Grid:   GridConfig{Rows: 0, Cols: 4},
	}
	cfg.Sanitize()

	def := DefaultConfig()
	assert.Equal(t, def.Search, cfg.Search)
	assert.Equal(t, def.Grid, cfg.Grid)
	assert.Equal(t, def.Dict, cfg.Dict)
	assert.Equal(t, def.Score.Points, cfg.Score.Points)
	assert.Equal(t, def.Server, cfg.Server)
}

func TestLoadConfigWithPriority(t *testing.T) {
	path := writeConfig(t, "[grid]\nrows = 3\ncols = 3\n")

	cfg, used := LoadConfigWithPriority(path, nil)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.Grid.Rows)

	cfg, used = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
}
