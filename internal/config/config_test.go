package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courtside.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-25"}, cfg.Scrape.Seasons)
	assert.Equal(t, "Regular Season", cfg.Scrape.SeasonType)
	assert.Equal(t, 3*time.Second, cfg.Scrape.SettleTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_file = /var/log/courtside.log

[scrape]
target_url = https://stats.example.com/boxscores
seasons = 2022-23,2023-24,2024-25
season_type = Playoffs
settle_timeout = 5s

[database]
dsn = postgres://test@localhost/test

[scheduler]
enabled = true
daily_hour = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://stats.example.com/boxscores", cfg.Scrape.TargetURL)
	assert.Equal(t, []string{"2022-23", "2023-24", "2024-25"}, cfg.Scrape.Seasons)
	assert.Equal(t, "Playoffs", cfg.Scrape.SeasonType)
	assert.Equal(t, 5*time.Second, cfg.Scrape.SettleTimeout)
	assert.Equal(t, "postgres://test@localhost/test", cfg.Database.DSN)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 4, cfg.Scheduler.DailyHour)
	assert.Equal(t, "/var/log/courtside.log", cfg.LogFile)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "8080", cfg.Server.RESTPort)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COURTSIDE_TARGET_URL", "https://override.example.com")
	t.Setenv("COURTSIDE_DSN", "postgres://env@localhost/env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.com", cfg.Scrape.TargetURL)
	assert.Equal(t, "postgres://env@localhost/env", cfg.Database.DSN)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/courtside.ini")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Scrape.Seasons = nil
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Scrape.SeasonType = ""
	assert.Error(t, cfg.Validate())
}
