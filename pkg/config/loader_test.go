package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), cfg.Season)
	assert.Equal(t, 300, cfg.RefreshSeconds)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval())
	assert.NotEmpty(t, cfg.APIBaseURL)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("LAZYF1_SEASON", "2024")
	t.Setenv("LAZYF1_REFRESH_SECONDS", "60")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 2024, cfg.Season)
	assert.Equal(t, 60, cfg.RefreshSeconds)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("season: 2022\nrefresh_seconds: 120\n"), 0644))
	t.Setenv("LAZYF1_CONFIG", path)
	t.Setenv("LAZYF1_SEASON", "2023")

	cfg, err := Load()

	require.NoError(t, err)
	// env wins over file, file wins over defaults
	assert.Equal(t, 2023, cfg.Season)
	assert.Equal(t, 120, cfg.RefreshSeconds)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("LAZYF1_REFRESH_SECONDS", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LAZYF1_REFRESH_SECONDS", "300")
	t.Setenv("LAZYF1_SEASON", "1900")
	_, err = Load()
	assert.Error(t, err)
}
