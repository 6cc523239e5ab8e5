// Package config provides configuration management for the primaries server.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	AP      APConfig      `mapstructure:"ap" validate:"required"`
	Sheets  SheetsConfig  `mapstructure:"sheets" validate:"required"`
	Poll    PollConfig    `mapstructure:"poll" validate:"required"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// APConfig represents Associated Press API configuration. BootstrapURL is
// the first request of the session; every later request uses the pagination
// cursor the previous response reported.
type APConfig struct {
	BootstrapURL      string  `mapstructure:"bootstrap_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
}

// SheetsConfig represents Google Sheets source configuration. ReadRange is
// formatted "{Sheet Name}!A2:N".
type SheetsConfig struct {
	SpreadsheetID string `mapstructure:"spreadsheet_id" validate:"required"`
	ReadRange     string `mapstructure:"read_range" validate:"required"`
	ClientID      string `mapstructure:"client_id" validate:"required"`
	ClientSecret  string `mapstructure:"client_secret" validate:"required"`
	RefreshToken  string `mapstructure:"refresh_token" validate:"required"`
}

// PollConfig represents fetch-cycle scheduling
type PollConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds" validate:"required,gt=0"`
}

// ServerConfig represents the push server configuration
type ServerConfig struct {
	Port       int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	SocketPath string `mapstructure:"socket_path" validate:"required,startswith=/"`
	HealthPort int    `mapstructure:"health_port" validate:"required,min=1,max=65535"`
}

// ArchiveConfig represents the optional snapshot history archive
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// PollInterval returns the fetch-cycle interval as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

// APTimeout returns the AP HTTP timeout as a duration
func (c *Config) APTimeout() time.Duration {
	return time.Duration(c.AP.TimeoutSeconds) * time.Second
}
