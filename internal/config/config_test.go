package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(50), cfg.PageSize)
	assert.NotEmpty(t, cfg.Server)
	assert.Equal(t, "q", cfg.Keys.Quit)
	assert.Equal(t, " ", cfg.Keys.ToggleSelect)
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Server = "https://archive.example.com"
	cfg.Token = "secret"
	cfg.PageSize = 25
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://archive.example.com", loaded.Server)
	assert.Equal(t, "secret", loaded.Token)
	assert.Equal(t, int64(25), loaded.PageSize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_AppliesDefaultsForUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server": "http://a"}`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://a", cfg.Server)
	assert.Equal(t, int64(50), cfg.PageSize)
	assert.Equal(t, "d", cfg.Keys.Delete)
}

func TestThemeLoader_LoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	theme := `arctui:
  header: "blue"
  statusError: "maroon"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(theme), 0o600))

	loader := NewThemeLoader(dir)
	got, err := loader.LoadThemeFromFile("custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "blue", got.Header)
	assert.Equal(t, "maroon", got.StatusError)
}

func TestThemeLoader_MissingFile(t *testing.T) {
	loader := NewThemeLoader(t.TempDir())
	_, err := loader.LoadThemeFromFile("missing.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestThemeLoader_MissingSection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("other: {}"), 0o600))

	loader := NewThemeLoader(dir)
	_, err := loader.LoadThemeFromFile("bad.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing arctui section")
}

func TestThemeLoader_ListAvailableThemes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("arctui: {}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("arctui: {}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte(""), 0o600))

	loader := NewThemeLoader(dir)
	themes, err := loader.ListAvailableThemes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.yaml", "b.yml"}, themes)
}
