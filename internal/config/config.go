package config

import (
	"strings"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone   AuthMode = "none"   // No authentication required
	AuthModeAPIKey AuthMode = "apikey" // API key required on every non-public route (default)
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		CORS
		RateLimit
		Audit
		Log
	}

	HTTP struct {
		Port int32
		Host string

		// Proxies whose X-Forwarded-For is believed. Empty trusts none and
		// the client IP is always the connection's remote address.
		TrustedProxies []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path         string
		MaxOpenConns int
		MaxIdleConns int
		BusyTimeout  int // milliseconds SQLite waits on a locked database
	}
	Auth struct {
		Mode       AuthMode
		APIKey     string // Static key accepted in addition to stored keys
		Header     string
		BcryptCost int
	}
	CORS struct {
		AllowedOrigins []string
	}
	RateLimit struct {
		RequestsPerSecond float64 // 0 disables rate limiting
		Burst             int
	}
	Audit struct {
		Enabled bool
	}
	Log struct {
		Level  string
		Format string // "console" or "json"
	}
)

// ParseConnectionString extracts the database file path from either a plain
// path or an ADO-style "Data Source=./library.db;..." connection string.
func ParseConnectionString(conn string) string {
	conn = strings.TrimSpace(conn)
	if !strings.Contains(conn, "=") {
		return conn
	}
	for _, part := range strings.Split(conn, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "data source", "datasource", "filename":
			return strings.TrimSpace(value)
		}
	}
	return conn
}

// splitList turns a comma separated setting into a trimmed slice.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("http_trusted_proxies", "")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("database_connection_string", DefaultDatabasePath)
	v.SetDefault("database_max_open_conns", 4)
	v.SetDefault("database_max_idle_conns", 2)
	v.SetDefault("database_busy_timeout", 5000)

	// Auth defaults
	v.SetDefault("auth_mode", "apikey")
	v.SetDefault("auth_api_key", "")
	v.SetDefault("auth_api_key_header", DefaultAPIKeyHeader)
	v.SetDefault("auth_bcrypt_cost", 10)

	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("rate_limit_rps", 0) // Disabled
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("audit_enabled", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),

			TrustedProxies: splitList(v.GetString("HTTP_TRUSTED_PROXIES")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:         ParseConnectionString(v.GetString("DATABASE_CONNECTION_STRING")),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			BusyTimeout:  v.GetInt("DATABASE_BUSY_TIMEOUT"),
		},
		Auth: Auth{
			Mode:       AuthMode(v.GetString("AUTH_MODE")),
			APIKey:     v.GetString("AUTH_API_KEY"),
			Header:     v.GetString("AUTH_API_KEY_HEADER"),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimit{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
