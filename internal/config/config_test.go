package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 15, cfg.RequestTimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.FileExists(t, path)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(path, Default()))

	t.Setenv("TRAVELINE_API_URL", "https://api.example.test/api")
	t.Setenv("TRAVELINE_STORAGE_TYPE", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test/api", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.StorageType)
}

func TestLoadReadsDotEnvBesideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, Save(path, Default()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRAVELINE_REQUEST_TIMEOUT=42\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TRAVELINE_REQUEST_TIMEOUT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.RequestTimeoutSeconds)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.StorageType = "redis"
	require.NoError(t, Save(path, cfg))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage type")
}

func TestResolvePath(t *testing.T) {
	t.Setenv("TRAVELINE_CONFIG", "/etc/traveline.json")
	assert.Equal(t, "custom.json", ResolvePath("custom.json"))
	assert.Equal(t, "/etc/traveline.json", ResolvePath(""))

	t.Setenv("TRAVELINE_CONFIG", "")
	assert.Equal(t, DefaultPath, ResolvePath(""))
}
