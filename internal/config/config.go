// Package config loads glucowise configuration from YAML, .env files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	TimeZone    string            `yaml:"timezone"`
	Auth        AuthConfig        `yaml:"auth"`
	Dexcom      DexcomConfig      `yaml:"dexcom"`
	Nutritionix NutritionixConfig `yaml:"nutritionix"`
	Reminders   RemindersConfig   `yaml:"reminders"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

// DatabaseConfig configures storage.
type DatabaseConfig struct {
	// Path of the SQLite file; ":memory:" keeps everything in memory.
	Path string `yaml:"path"`
}

// AuthConfig configures bearer tokens.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  string `yaml:"token_ttl"`
}

// DexcomConfig configures CGM import.
type DexcomConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Region is "us" or "ous" (outside the US).
	Region       string `yaml:"region"`
	PollInterval string `yaml:"poll_interval"`
	// UserEmail is the account readings are imported into.
	UserEmail string `yaml:"user_email"`
}

// NutritionixConfig configures food lookups.
type NutritionixConfig struct {
	AppID  string `yaml:"app_id"`
	AppKey string `yaml:"app_key"`
}

// RemindersConfig configures the reminder scheduler.
type RemindersConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			ShutdownTimeout: "10s",
			Mode:            "release",
		},
		Database: DatabaseConfig{
			Path: "glucowise.db",
		},
		TimeZone: "Local",
		Auth: AuthConfig{
			TokenTTL: "72h",
		},
		Dexcom: DexcomConfig{
			Region:       "us",
			PollInterval: "5m",
		},
		Reminders: RemindersConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadEnvFile loads variables from a .env file into the environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"GLUCOWISE_DB", &c.Database.Path},
		{"GLUCOWISE_ADDR", &c.Server.Addr},
		{"GLUCOWISE_TZ", &c.TimeZone},
		{"JWT_SECRET", &c.Auth.JWTSecret},
		{"DEXCOM_USERNAME", &c.Dexcom.Username},
		{"DEXCOM_PASSWORD", &c.Dexcom.Password},
		{"DEXCOM_REGION", &c.Dexcom.Region},
		{"DEXCOM_USER_EMAIL", &c.Dexcom.UserEmail},
		{"NUTRITIONIX_APP_ID", &c.Nutritionix.AppID},
		{"NUTRITIONIX_APP_KEY", &c.Nutritionix.AppKey},
		{"LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetReadTimeout returns the HTTP read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 15*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// GetTokenTTL returns the bearer token lifetime as a duration.
func (c *Config) GetTokenTTL() time.Duration {
	return parseDuration(c.Auth.TokenTTL, 72*time.Hour)
}

// GetPollInterval returns the Dexcom poll interval as a duration.
func (c *Config) GetPollInterval() time.Duration {
	return parseDuration(c.Dexcom.PollInterval, 5*time.Minute)
}

// Location returns the time zone entries are bucketed into days in.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// DexcomEnabled reports whether Dexcom credentials are configured.
func (c *Config) DexcomEnabled() bool {
	return c.Dexcom.Username != "" && c.Dexcom.Password != ""
}

// NutritionixEnabled reports whether Nutritionix credentials are configured.
func (c *Config) NutritionixEnabled() bool {
	return c.Nutritionix.AppID != "" && c.Nutritionix.AppKey != ""
}

// Validate validates the configuration for running the server.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set JWT_SECRET or auth.jwt_secret)")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch strings.ToLower(c.Dexcom.Region) {
	case "", "us", "ous":
	default:
		return fmt.Errorf("invalid dexcom region %q (want us or ous)", c.Dexcom.Region)
	}
	if c.DexcomEnabled() && c.Dexcom.UserEmail == "" {
		return fmt.Errorf("dexcom.user_email is required when Dexcom credentials are set")
	}
	return nil
}
