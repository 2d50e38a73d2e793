package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"sproutlog/internal/database"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the process needs, read once at startup.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	// RabbitMQURL may be empty, which turns domain events off.
	RabbitMQURL string

	GeocoderBaseURL   string
	ForecastBaseURL   string
	LookupTimeout     time.Duration
	FallbackLatitude  float64
	FallbackLongitude float64
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", database.DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=sproutlog port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("GEOCODER_BASE_URL", "http://api.zippopotam.us/us")
	v.SetDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("LOOKUP_TIMEOUT", "10s")
	v.SetDefault("FALLBACK_LATITUDE", 39.32)
	v.SetDefault("FALLBACK_LONGITUDE", -82.10)
}

// LoadDotEnv loads a .env file into the environment when one exists.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
}

// Load reads configuration from v, which is expected to have env binding
// enabled. Defaults are applied first.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:           v.GetString("APP_PORT"),
		DatabaseDriver:    strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		GeocoderBaseURL:   strings.TrimRight(v.GetString("GEOCODER_BASE_URL"), "/"),
		ForecastBaseURL:   v.GetString("FORECAST_BASE_URL"),
		FallbackLatitude:  v.GetFloat64("FALLBACK_LATITUDE"),
		FallbackLongitude: v.GetFloat64("FALLBACK_LONGITUDE"),
	}

	switch cfg.DatabaseDriver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid DATABASE_DRIVER %q: want %s or %s", cfg.DatabaseDriver, database.DriverPostgres, database.DriverSQLite)
	}

	var err error
	if cfg.TokenTTL, err = parseDuration(v, "TOKEN_TTL"); err != nil {
		return nil, err
	}
	if cfg.LookupTimeout, err = parseDuration(v, "LOOKUP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
