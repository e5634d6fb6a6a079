package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := &service{filePath: filepath.Join(t.TempDir(), "config.toml")}

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ExportWorkers)
	assert.Equal(t, 300, cfg.DebounceMillis)
	assert.Equal(t, 24, cfg.CacheValidityHours)
	assert.True(t, cfg.UISettings.ShowGlyphs)
	assert.NotEmpty(t, cfg.Sources.Emoji)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := &service{filePath: filepath.Join(t.TempDir(), "nested", "config.toml")}

	cfg := DefaultConfig()
	cfg.ExportWorkers = 8
	cfg.ExportDir = "/tmp/exports"
	cfg.Sources.Icons = "https://example.com/icons.json"
	cfg.UISettings.ShowStatusBar = false
	require.NoError(t, s.Save(cfg))

	back, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, back.ExportWorkers)
	assert.Equal(t, "/tmp/exports", back.ExportDir)
	assert.Equal(t, "https://example.com/icons.json", back.Sources.Icons)
	assert.False(t, back.UISettings.ShowStatusBar)
}

func TestPartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("export_workers = 2\n"), 0644))

	s := &service{filePath: path}
	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ExportWorkers)
	assert.Equal(t, 300, cfg.DebounceMillis, "unset fields keep their defaults")
	assert.NotEmpty(t, cfg.DataDir)
}

func TestMalformedFileErrorsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("export_workers = [broken"), 0644))

	s := &service{filePath: path}
	cfg, err := s.Load()
	require.Error(t, err)
	require.NotNil(t, cfg, "caller still gets usable defaults")
	assert.Equal(t, 5, cfg.ExportWorkers)
}
