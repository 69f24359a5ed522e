package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Server)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erpview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: http://erp.local:9000\ntimeout: 5s\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://erp.local:9000", cfg.Server)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "snapshots.db", cfg.DB)

	t.Setenv("ERPVIEW_SERVER", "https://erp.example.com")
	t.Setenv("ERPVIEW_TIMEOUT", "2m")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://erp.example.com", cfg.Server)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("ERPVIEW_SERVER", "not a url")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("ERPVIEW_SERVER", "")
	t.Setenv("ERPVIEW_TIMEOUT", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "ERPVIEW_TIMEOUT")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	t.Setenv("ERPVIEW_TIMEOUT", "")
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("ERPVIEW_CORS_ORIGINS", "http://localhost:3000, https://erp.example.com,")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://erp.example.com"}, cfg.CORSOrigins)

	t.Setenv("ERPVIEW_CORS_ORIGINS", "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(""))
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ERPVIEW_LISTEN=:9999\nERPVIEW_DB=from-file.db\n"), 0o644))

	t.Setenv("ERPVIEW_LISTEN", "")
	t.Setenv("ERPVIEW_DB", "already-set.db")
	os.Unsetenv("ERPVIEW_LISTEN")
	require.NoError(t, LoadEnvFile(path))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, "already-set.db", cfg.DB)
}
