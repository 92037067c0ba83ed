package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AbsentFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8088/api", cfg.APIBaseURL)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	body := "api_base_url: https://library.example.com/api\ntheme: dark\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://library.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	body := "api_base_url: https://file.example.com/api\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0o644))

	t.Setenv("ELIB_API_URL", "https://env.example.com/api")
	t.Setenv("ELIB_THEME", "dark")
	t.Setenv("ELIB_REQUEST_TIMEOUT", "3s")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(":\tnope"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.StateDir = dir
	cfg.Theme = "dark"
	require.NoError(t, Save(cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Theme)
}
