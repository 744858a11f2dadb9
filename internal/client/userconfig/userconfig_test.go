package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Save(&UserConfig{ServerURL: "https://hive.example.com"}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://hive.example.com", cfg.ServerURL)
}

func TestSetServerURL(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, SetServerURL("https://hive.example.com"))

	data, err := os.ReadFile(filepath.Join(home, ".config", "devhive", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "server_url: https://hive.example.com")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "devhive")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0644))

	_, err := Load()
	assert.Error(t, err)
}
