package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cafepos_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfigFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, defaults(), cfg)
}

func TestLoadConfigMalformedFileFallsBackToDefaults(t *testing.T) {
	path := writeConfigFile(t, "{not json}")

	cfg, err := loadConfigFrom(path)
	require.Error(t, err)
	assert.Equal(t, defaults(), cfg)
	assert.NotZero(t, cfg.Port)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigFillsOmittedFields(t *testing.T) {
	path := writeConfigFile(t, `{"port": 9000}`)

	cfg, err := loadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, defaults().DatabasePath, cfg.DatabasePath)
	// Omitting the key must not read as false.
	assert.True(t, cfg.OpenBrowser)
}

func TestLoadConfigKeepsExplicitOpenBrowserFalse(t *testing.T) {
	path := writeConfigFile(t, `{"openBrowser": false}`)

	cfg, err := loadConfigFrom(path)
	require.NoError(t, err)
	assert.False(t, cfg.OpenBrowser)
}
