// Package config loads and validates the application configuration using Viper.
//
// Configuration is layered: built-in defaults < YAML config file < environment
// variables. Environment variables use the CHURCH_ prefix (e.g.,
// CHURCH_DATABASE_HOST overrides database.host in the YAML). This layering
// allows the same binary to run with a config.yaml in local development and
// with pure environment variables in containerized deployments — no
// recompilation or different binaries needed.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Security  SecurityConfig  `mapstructure:"security"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Rates     RatesConfig     `mapstructure:"rates"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode"`
	MaxConnections     int    `mapstructure:"max_connections"`
	MinIdleConnections int    `mapstructure:"min_idle_connections"`
}

// StorageConfig holds media storage configuration. Uploaded images (banners,
// sermon covers, leader portraits, gallery photos) are written through the
// storage backend; only the local filesystem backend is supported.
type StorageConfig struct {
	DefaultBackend string             `mapstructure:"default_backend"`
	Local          LocalStorageConfig `mapstructure:"local"`
}

// LocalStorageConfig holds local filesystem storage configuration
type LocalStorageConfig struct {
	BasePath      string `mapstructure:"base_path"`
	ServeDirectly bool   `mapstructure:"serve_directly"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// JWTSecret signs admin session tokens. Required for serve.
	JWTSecret string `mapstructure:"jwt_secret"`
	// TokenTTL is the lifetime of an issued token (default 24h)
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORS         CORSConfig         `mapstructure:"cors"`
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
	TLS          TLSConfig          `mapstructure:"tls"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
}

// RateLimitingConfig holds rate limiting configuration. When redis_addr is
// set the limiter uses a Redis-backed sliding window shared across replicas;
// otherwise it falls back to a per-process token bucket.
type RateLimitingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	Burst             int    `mapstructure:"burst"`
	RedisAddr         string `mapstructure:"redis_addr"`
	RedisPassword     string `mapstructure:"redis_password"`
	RedisDB           int    `mapstructure:"redis_db"`
}

// TLSConfig holds TLS/HTTPS configuration
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled     bool            `mapstructure:"enabled"`
	ServiceName string          `mapstructure:"service_name"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	Profiling   ProfilingConfig `mapstructure:"profiling"`
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	PrometheusPort int  `mapstructure:"prometheus_port"`
}

// ProfilingConfig holds profiling configuration
type ProfilingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// AuditConfig holds audit logging configuration
type AuditConfig struct {
	// Enabled determines if audit recording is active
	Enabled bool `mapstructure:"enabled"`
	// File optionally mirrors every audit row to an append-only JSONL file
	File AuditFileConfig `mapstructure:"file"`
	// Webhook optionally forwards audit rows to an external collector
	Webhook AuditWebhookConfig `mapstructure:"webhook"`
}

// AuditFileConfig holds the file audit shipper configuration
type AuditFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// AuditWebhookConfig holds the webhook audit shipper configuration
type AuditWebhookConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// BatchSize > 0 batches entries before sending; 0 sends one per request
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// RatesConfig holds exchange-rate cache configuration
type RatesConfig struct {
	// Enabled toggles the daily background refresh. Manual refresh via the
	// update-rates subcommand works regardless.
	Enabled bool `mapstructure:"enabled"`
	// RefreshAt is the daily trigger time in 24h "HH:MM" form, server-local.
	RefreshAt string `mapstructure:"refresh_at"`
	// MisfireGraceMinutes is how late a missed trigger may still fire (default 15)
	MisfireGraceMinutes int `mapstructure:"misfire_grace_minutes"`
	// APIURL is the upstream rate table endpoint (USD base)
	APIURL string `mapstructure:"api_url"`
	// RequestTimeout bounds a single upstream fetch (default 10s)
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// bindEnvVars explicitly binds environment variables to config keys.
// This is necessary because AutomaticEnv() doesn't work well with nested structs during Unmarshal.
// viper.BindEnv only errors when called with zero keys; since every key here is a non-empty
// hardcoded string, any error indicates a programming bug and is surfaced to the caller.
func bindEnvVars(v *viper.Viper) error {
	keys := []string{
		// Database
		"database.host",
		"database.port",
		"database.name",
		"database.user",
		"database.password",
		"database.ssl_mode",
		"database.max_connections",
		"database.min_idle_connections",

		// Server
		"server.host",
		"server.port",
		"server.base_url",
		"server.read_timeout",
		"server.write_timeout",

		// Storage
		"storage.default_backend",
		"storage.local.base_path",
		"storage.local.serve_directly",

		// Auth
		"auth.jwt_secret",
		"auth.token_ttl",

		// Security
		"security.cors.allowed_origins",
		"security.cors.allowed_methods",
		"security.rate_limiting.enabled",
		"security.rate_limiting.requests_per_minute",
		"security.rate_limiting.burst",
		"security.rate_limiting.redis_addr",
		"security.rate_limiting.redis_password",
		"security.rate_limiting.redis_db",
		"security.tls.enabled",
		"security.tls.cert_file",
		"security.tls.key_file",

		// Logging
		"logging.level",
		"logging.format",
		"logging.output",

		// Telemetry
		"telemetry.enabled",
		"telemetry.service_name",
		"telemetry.metrics.enabled",
		"telemetry.metrics.prometheus_port",
		"telemetry.profiling.enabled",
		"telemetry.profiling.port",

		// Audit
		"audit.enabled",
		"audit.file.enabled",
		"audit.file.path",
		"audit.file.max_size_mb",
		"audit.file.max_backups",
		"audit.webhook.enabled",
		"audit.webhook.url",
		"audit.webhook.timeout",
		"audit.webhook.batch_size",
		"audit.webhook.flush_interval",

		// Exchange rates
		"rates.enabled",
		"rates.refresh_at",
		"rates.misfire_grace_minutes",
		"rates.api_url",
		"rates.request_timeout",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", key, err)
		}
	}
	return nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file path if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.yaml in common locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/church-backend")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment variables
	}

	// Enable environment variable support
	v.SetEnvPrefix("CHURCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind environment variables for nested structures
	// This is necessary because AutomaticEnv() doesn't work well with Unmarshal()
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	// Unmarshal configuration
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Expand environment variables in sensitive fields
	cfg.Database.Password = expandEnv(cfg.Database.Password)
	cfg.Auth.JWTSecret = expandEnv(cfg.Auth.JWTSecret)
	cfg.Security.RateLimiting.RedisPassword = expandEnv(cfg.Security.RateLimiting.RedisPassword)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "church_site")
	v.SetDefault("database.user", "church")
	v.SetDefault("database.ssl_mode", "require")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_idle_connections", 5)

	// Storage defaults
	v.SetDefault("storage.default_backend", "local")
	v.SetDefault("storage.local.base_path", "./media")
	v.SetDefault("storage.local.serve_directly", true)

	// Auth defaults
	v.SetDefault("auth.token_ttl", "24h")

	// Security defaults
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("security.rate_limiting.enabled", true)
	v.SetDefault("security.rate_limiting.requests_per_minute", 60)
	v.SetDefault("security.rate_limiting.burst", 10)
	v.SetDefault("security.rate_limiting.redis_db", 0)
	v.SetDefault("security.tls.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.service_name", "church-backend")
	v.SetDefault("telemetry.metrics.enabled", true)
	v.SetDefault("telemetry.metrics.prometheus_port", 9090)
	v.SetDefault("telemetry.profiling.enabled", false)
	v.SetDefault("telemetry.profiling.port", 6060)

	// Audit defaults
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.file.enabled", false)
	v.SetDefault("audit.file.path", "./data/audit.log")
	v.SetDefault("audit.file.max_size_mb", 100)
	v.SetDefault("audit.file.max_backups", 5)
	v.SetDefault("audit.webhook.enabled", false)
	v.SetDefault("audit.webhook.timeout", "10s")
	v.SetDefault("audit.webhook.batch_size", 0)
	v.SetDefault("audit.webhook.flush_interval", "5s")

	// Exchange rate defaults
	v.SetDefault("rates.enabled", true)
	v.SetDefault("rates.refresh_at", "02:00")
	v.SetDefault("rates.misfire_grace_minutes", 15)
	v.SetDefault("rates.api_url", "https://api.exchangerate-api.com/v4/latest/USD")
	v.SetDefault("rates.request_timeout", "10s")
}

// expandEnv expands environment variables in the format ${VAR_NAME}
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}

	// Validate database
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}

	// Validate storage backend
	if c.Storage.DefaultBackend != "local" {
		return fmt.Errorf("invalid storage backend: %s (only local is supported)", c.Storage.DefaultBackend)
	}
	if c.Storage.Local.BasePath == "" {
		return fmt.Errorf("storage.local.base_path is required")
	}

	// Validate TLS if enabled
	if c.Security.TLS.Enabled {
		if c.Security.TLS.CertFile == "" {
			return fmt.Errorf("security.tls.cert_file is required when TLS is enabled")
		}
		if c.Security.TLS.KeyFile == "" {
			return fmt.Errorf("security.tls.key_file is required when TLS is enabled")
		}
	}

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	// Validate rate refresh schedule. A bad value does not fail startup for
	// the scheduler itself (the job degrades to disabled) but is rejected
	// here so misconfiguration is caught where it is cheapest to fix.
	if c.Rates.RefreshAt != "" {
		if _, _, err := ParseClockTime(c.Rates.RefreshAt); err != nil {
			return fmt.Errorf("invalid rates.refresh_at: %w", err)
		}
	}
	if c.Rates.Enabled && c.Rates.APIURL == "" {
		return fmt.Errorf("rates.api_url is required when rates.enabled is true")
	}

	// Validate audit shippers
	if c.Audit.Webhook.Enabled && c.Audit.Webhook.URL == "" {
		return fmt.Errorf("audit.webhook.url is required when audit.webhook.enabled is true")
	}
	if c.Audit.File.Enabled && c.Audit.File.Path == "" {
		return fmt.Errorf("audit.file.path is required when audit.file.enabled is true")
	}

	return nil
}

// ParseClockTime parses a 24-hour "HH:MM" string into its hour and minute
// components. Used for the daily rate refresh trigger.
func ParseClockTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM (24h): %w", err)
	}
	return t.Hour(), t.Minute(), nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// GetAddress returns the server address in host:port format
func (c *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
