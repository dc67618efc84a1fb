// internal/common/config/config.go
package config

import (
	"fmt"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	Server     ServerConfig            `mapstructure:"server"`
	Chat       ChatConfig              `mapstructure:"chat"`
	RateLimit  RateLimitConfig         `mapstructure:"rate_limit"`
	Calculator CalculatorConfig        `mapstructure:"calculator"`
	Camunda    CamundaConfig           `mapstructure:"camunda"`
	Database   DatabaseConfig          `mapstructure:"database"`
	Workers    map[string]WorkerConfig `mapstructure:"workers"`
	Logging    LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // milliseconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// ChatConfig holds the values interpolated into Luna's replies and the
// limits applied to visitor messages.
type ChatConfig struct {
	SchedulingURL    string `mapstructure:"scheduling_url"`
	SupportEmail     string `mapstructure:"support_email"`
	MaxMessageLength int    `mapstructure:"max_message_length"`
	MinReplyDelay    int    `mapstructure:"min_reply_delay"` // milliseconds
	MaxReplyDelay    int    `mapstructure:"max_reply_delay"` // milliseconds

	// CatalogPath points at an intent catalog JSON with responses that
	// replaces the built-in rule table.
	CatalogPath string `mapstructure:"catalog_path"`
}

// CalculatorConfig bounds the ROI calculator sliders.
type CalculatorConfig struct {
	MonthlyRevenue RangeConfig `mapstructure:"monthly_revenue"`
	WastePercent   RangeConfig `mapstructure:"waste_percent"`
	MarginPercent  RangeConfig `mapstructure:"margin_percent"`
}

type RangeConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type RateLimitConfig struct {
	Requests int `mapstructure:"requests"`
	Window   int `mapstructure:"window"` // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// Enabled reports whether intent analytics should be stored.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether rate limiting has a backing store.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	MaxJobsActive    int  `mapstructure:"max_jobs_active"`
	Timeout          int  `mapstructure:"timeout"`           // milliseconds
	MaxRetries       int  `mapstructure:"max_retries"`       // For error handling
	RequireAnalytics bool `mapstructure:"require_analytics"` // fail the job when the event is not stored
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
