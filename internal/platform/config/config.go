package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool
	// MigrationsPath is a golang-migrate source URL such as file://migrations.
	MigrationsPath string

	InvoiceCacheSize int
	InvoiceCacheTTL  time.Duration
	// InvoiceEventBuffer bounds the queue between writes and the event drain.
	InvoiceEventBuffer int

	RateLimit          limiter.Rate
	CORSAllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("INVOICE_CACHE_SIZE", 256)
	v.SetDefault("INVOICE_CACHE_TTL", "5m")
	v.SetDefault("INVOICE_EVENT_BUFFER", 64)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Environment variables override values from the .env file, which override defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		InvoiceCacheSize:   v.GetInt("INVOICE_CACHE_SIZE"),
		InvoiceEventBuffer: v.GetInt("INVOICE_EVENT_BUFFER"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set.", slog.String("default", cfg.Port))
	}

	ttlStr := v.GetString("INVOICE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid INVOICE_CACHE_TTL %q: %w", ttlStr, err)
	}
	cfg.InvoiceCacheTTL = ttl

	if cfg.InvoiceCacheSize < 0 {
		return nil, fmt.Errorf("invalid INVOICE_CACHE_SIZE %d: must not be negative", cfg.InvoiceCacheSize)
	}
	if cfg.InvoiceEventBuffer <= 0 {
		return nil, fmt.Errorf("invalid INVOICE_EVENT_BUFFER %d: must be positive", cfg.InvoiceEventBuffer)
	}

	rateStr := v.GetString("RATE_LIMIT")
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", rateStr, err)
	}
	cfg.RateLimit = rate

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
