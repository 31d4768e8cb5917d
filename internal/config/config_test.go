package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Empty(t, cfg.HTTP.TrustedProxies)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, AuthModeAPIKey, cfg.Auth.Mode)
	assert.Equal(t, DefaultAPIKeyHeader, cfg.Auth.Header)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Zero(t, cfg.RateLimit.RequestsPerSecond)
	assert.True(t, cfg.Audit.Enabled)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_CONNECTION_STRING", "Data Source=/tmp/catalog.db")
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://books.example.com")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.10")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, AuthModeNone, cfg.Auth.Mode)
	assert.Equal(t, []string{"http://localhost:3000", "https://books.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.HTTP.TrustedProxies)
}

func TestParseConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain path", "./library.db", "./library.db"},
		{"data source", "Data Source=./library.db", "./library.db"},
		{"with extra options", "Data Source=/var/lib/library.db;Cache=Shared", "/var/lib/library.db"},
		{"lowercase key", "datasource=books.db", "books.db"},
		{"surrounding spaces", "  ./library.db  ", "./library.db"},
		{"in-memory", ":memory:", ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseConnectionString(tt.input))
		})
	}
}
