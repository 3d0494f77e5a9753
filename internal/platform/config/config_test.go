package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 30, cfg.SyncBootstrapDays)
	assert.Equal(t, 60*time.Second, cfg.SyncTimeout)
	assert.Equal(t, time.Hour, cfg.ExpirySweepInterval)
	assert.Zero(t, cfg.AutoSyncInterval)
	assert.Equal(t, "10-M", cfg.SyncRateLimit)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.BankAPI.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIME_ZONE", "Asia/Seoul")
	t.Setenv("SYNC_BOOTSTRAP_DAYS", "7")
	t.Setenv("AUTO_SYNC_INTERVAL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://club.example, https://admin.example ,")
	t.Setenv("BANK_API_BASE_URL", "https://bank.example/api")
	t.Setenv("BANK_API_CODE", "088")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	assert.Equal(t, 7, cfg.SyncBootstrapDays)
	assert.Equal(t, 15*time.Minute, cfg.AutoSyncInterval)
	assert.Equal(t, []string{"https://club.example", "https://admin.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.BankAPI.Enabled())
	assert.Equal(t, "088", cfg.BankAPI.BankCode)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("time zone", func(t *testing.T) {
		t.Setenv("TIME_ZONE", "Mars/Olympus")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "TIME_ZONE")
	})
	t.Run("duration", func(t *testing.T) {
		t.Setenv("SYNC_TIMEOUT", "soon")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "SYNC_TIMEOUT")
	})
	t.Run("bootstrap days falls back", func(t *testing.T) {
		t.Setenv("SYNC_BOOTSTRAP_DAYS", "-3")
		cfg, err := load(viper.New())
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.SyncBootstrapDays)
	})
}
