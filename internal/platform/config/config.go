package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // TIME_ZONE must resolve in minimal containers

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BankAPIConfig describes the OAuth2-secured bank open API.
type BankAPIConfig struct {
	BaseURL      string `mapstructure:"BANK_API_BASE_URL"`
	TokenURL     string `mapstructure:"BANK_API_TOKEN_URL"`
	ClientID     string `mapstructure:"BANK_API_CLIENT_ID"`
	ClientSecret string `mapstructure:"BANK_API_CLIENT_SECRET"`
	BankCode     string `mapstructure:"BANK_API_CODE"`
}

// Enabled reports whether enough is configured to talk to the bank API.
func (b BankAPIConfig) Enabled() bool {
	return b.BaseURL != "" && b.BankCode != ""
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level
	MigrationsPath string

	// Calendar days (sync windows, expected dates) are computed in this zone.
	TimeZone string
	Location *time.Location

	SyncBootstrapDays   int
	SyncTimeout         time.Duration
	ExpirySweepInterval time.Duration
	AutoSyncInterval    time.Duration // 0 disables automatic sync
	SyncRateLimit       string        // ulule/limiter format, e.g. "10-M"
	CORSAllowedOrigins  []string

	BankAPI           BankAPIConfig
	StatementDir      string
	StatementBankCode string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("TIME_ZONE", "UTC")
	v.SetDefault("SYNC_BOOTSTRAP_DAYS", 30)
	v.SetDefault("SYNC_TIMEOUT", "60s")
	v.SetDefault("EXPIRY_SWEEP_INTERVAL", "1h")
	v.SetDefault("AUTO_SYNC_INTERVAL", "0s")
	v.SetDefault("SYNC_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("BANK_API_BASE_URL", "")
	v.SetDefault("BANK_API_TOKEN_URL", "")
	v.SetDefault("BANK_API_CLIENT_ID", "")
	v.SetDefault("BANK_API_CLIENT_SECRET", "")
	v.SetDefault("BANK_API_CODE", "")
	v.SetDefault("STATEMENT_DIR", "")
	v.SetDefault("STATEMENT_BANK_CODE", "")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		TimeZone:          v.GetString("TIME_ZONE"),
		SyncBootstrapDays: v.GetInt("SYNC_BOOTSTRAP_DAYS"),
		SyncRateLimit:     v.GetString("SYNC_RATE_LIMIT"),
		StatementDir:      v.GetString("STATEMENT_DIR"),
		StatementBankCode: v.GetString("STATEMENT_BANK_CODE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	if cfg.SyncBootstrapDays <= 0 {
		log.Printf("Warning: SYNC_BOOTSTRAP_DAYS must be positive, got %d. Defaulting to 30.\n", cfg.SyncBootstrapDays)
		cfg.SyncBootstrapDays = 30
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SYNC_TIMEOUT", &cfg.SyncTimeout},
		{"EXPIRY_SWEEP_INTERVAL", &cfg.ExpirySweepInterval},
		{"AUTO_SYNC_INTERVAL", &cfg.AutoSyncInterval},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.BankAPI = BankAPIConfig{
		BaseURL:      v.GetString("BANK_API_BASE_URL"),
		TokenURL:     v.GetString("BANK_API_TOKEN_URL"),
		ClientID:     v.GetString("BANK_API_CLIENT_ID"),
		ClientSecret: v.GetString("BANK_API_CLIENT_SECRET"),
		BankCode:     v.GetString("BANK_API_CODE"),
	}
	if cfg.BankAPI.BaseURL != "" && cfg.BankAPI.TokenURL == "" {
		log.Println("Warning: BANK_API_TOKEN_URL not set. Bank API requests will fail to authenticate.")
	}
	if !cfg.BankAPI.Enabled() && cfg.StatementDir == "" {
		log.Println("Warning: neither BANK_API_* nor STATEMENT_DIR is set. No bank gateway is available.")
	}

	return cfg, nil
}
