package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sproutlog/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "http://api.zippopotam.us/us", cfg.GeocoderBaseURL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.ForecastBaseURL)
	assert.Equal(t, 39.32, cfg.FallbackLatitude)
	assert.Equal(t, -82.10, cfg.FallbackLongitude)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "file:garden.db")
	t.Setenv("LOOKUP_TIMEOUT", "3s")
	t.Setenv("GEOCODER_BASE_URL", "http://localhost:9000/us/")
	t.Setenv("FALLBACK_LATITUDE", "40.1")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:garden.db", cfg.DatabaseDSN)
	assert.Equal(t, 3*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "http://localhost:9000/us", cfg.GeocoderBaseURL)
	assert.Equal(t, 40.1, cfg.FallbackLatitude)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"unknown driver":    {"DATABASE_DRIVER", "mysql"},
		"bad duration":      {"TOKEN_TTL", "forever"},
		"negative duration": {"LOOKUP_TIMEOUT", "-1s"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := config.Load(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SPROUTLOG_DOTENV_PROBE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SPROUTLOG_DOTENV_PROBE") })

	config.LoadDotEnv(path)
	assert.Equal(t, "from-file", os.Getenv("SPROUTLOG_DOTENV_PROBE"))
}
