package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Nil(t, cfg.Schema)
	assert.Equal(t, ",", cfg.DecimalSeparator)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 32, cfg.MaxUploadMB)
	assert.Empty(t, cfg.Sheet)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sheet: Anlagen
format: yaml
schema:
  numeric: [MW, GWhA]
  multi_value: Kantone
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Anlagen", cfg.Sheet)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, ",", cfg.DecimalSeparator)
	require.NotNil(t, cfg.Schema)
	assert.Equal(t, []string{"MW", "GWhA"}, cfg.Schema.Numeric)
	assert.Equal(t, "Kantone", cfg.Schema.MultiValue)
	assert.Empty(t, cfg.Schema.Geometry)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: [unclosed"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
