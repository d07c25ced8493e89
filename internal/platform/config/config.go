package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	RedisURL string

	// HubCurrency is the fixed pivot for two-hop conversions and cached hub amounts.
	// It is independent of the default currency flagged in the currencies table.
	HubCurrency         string
	ReportingCurrencies []string
	ConversionOfferTTL  time.Duration
	RateLoadMaxRetries  int

	RateLimit          string
	CORSAllowedOrigins []string

	PostHogAPIKey   string
	PostHogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "biz-finance-tracker")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("HUB_CURRENCY", "SGD")
	v.SetDefault("REPORTING_CURRENCIES", "SGD,INR,USD")
	v.SetDefault("CONVERSION_OFFER_TTL", "15m")
	v.SetDefault("RATE_LOAD_MAX_RETRIES", 2)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://app.posthog.com")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RedisURL:           v.GetString("REDIS_URL"),
		HubCurrency:        strings.ToUpper(strings.TrimSpace(v.GetString("HUB_CURRENCY"))),
		RateLoadMaxRetries: v.GetInt("RATE_LOAD_MAX_RETRIES"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		PostHogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PostHogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if len(cfg.HubCurrency) != 3 {
		return nil, fmt.Errorf("HUB_CURRENCY must be a 3 letter currency code, got %q", cfg.HubCurrency)
	}
	cfg.ReportingCurrencies = splitList(v.GetString("REPORTING_CURRENCIES"), strings.ToUpper)
	for _, c := range cfg.ReportingCurrencies {
		if len(c) != 3 {
			return nil, fmt.Errorf("REPORTING_CURRENCIES contains invalid code %q", c)
		}
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"), nil)

	ttlStr := v.GetString("CONVERSION_OFFER_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 15 * time.Minute
		log.Printf("Warning: Invalid value for CONVERSION_OFFER_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.ConversionOfferTTL = ttl

	if cfg.RateLoadMaxRetries < 0 {
		cfg.RateLoadMaxRetries = 0
	}

	return cfg, nil
}

func splitList(raw string, transform func(string) string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if transform != nil {
			part = transform(part)
		}
		out = append(out, part)
	}
	return out
}
