// Package config loads service configuration from a TOML file, a .env file
// and environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the complete service configuration.
type Config struct {
	Spanner SpannerConfig `toml:"spanner"`
	Server  ServerConfig  `toml:"server"`
	Auth    AuthConfig    `toml:"auth"`
	Log     LogConfig     `toml:"log"`
	Cleanup CleanupConfig `toml:"cleanup"`
}

// SpannerConfig selects the database.
type SpannerConfig struct {
	Database string `toml:"database"`
}

// ServerConfig controls the gRPC and HTTP listeners.
type ServerConfig struct {
	GRPCPort        string        `toml:"grpc_port"`
	HTTPPort        string        `toml:"http_port"`
	GinMode         string        `toml:"gin_mode"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// AuthConfig controls sessions, password hashing and login throttling.
type AuthConfig struct {
	JWTSecret       string        `toml:"jwt_secret"`
	SessionTTL      time.Duration `toml:"session_ttl"`
	BcryptCost      int           `toml:"bcrypt_cost"`
	MaxFailures     int           `toml:"max_failures"`
	LockoutDuration time.Duration `toml:"lockout_duration"`
	LoginRatePerSec float64       `toml:"login_rate_per_sec"`
	LoginBurst      int           `toml:"login_burst"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// CleanupConfig controls abandoned cart release.
type CleanupConfig struct {
	AbandonedAfter time.Duration `toml:"abandoned_after"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every zero field with its default.
func (c *Config) SetDefaults() {
	if c.Spanner.Database == "" {
		c.Spanner.Database = "projects/test-project/instances/dev-instance/databases/backoffice-db"
	}
	if c.Server.GRPCPort == "" {
		c.Server.GRPCPort = "9090"
	}
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8080"
	}
	if c.Server.GinMode == "" {
		c.Server.GinMode = "release"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 10 * time.Minute
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
	if c.Auth.MaxFailures == 0 {
		c.Auth.MaxFailures = 5
	}
	if c.Auth.LockoutDuration == 0 {
		c.Auth.LockoutDuration = 2 * time.Hour
	}
	if c.Auth.LoginRatePerSec == 0 {
		c.Auth.LoginRatePerSec = 1
	}
	if c.Auth.LoginBurst == 0 {
		c.Auth.LoginBurst = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Cleanup.AbandonedAfter == 0 {
		c.Cleanup.AbandonedAfter = 24 * time.Hour
	}
}

// Load reads the optional .env file, the optional TOML file at path,
// applies environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path into cfg.
func LoadTOML(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides overrides file values with environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("SPANNER_DATABASE"); v != "" {
		c.Spanner.Database = v
	}
	if v := os.Getenv("GRPC_PORT"); v != "" {
		c.Server.GRPCPort = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		c.Server.HTTPPort = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.GinMode = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	durations := map[string]*time.Duration{
		"SESSION_TTL":      &c.Auth.SessionTTL,
		"LOCKOUT_DURATION": &c.Auth.LockoutDuration,
		"ABANDONED_AFTER":  &c.Cleanup.AbandonedAfter,
	}
	for key, dst := range durations {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v := os.Getenv("LOGIN_MAX_FAILURES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGIN_MAX_FAILURES: %w", err)
		}
		c.Auth.MaxFailures = n
	}
	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !strings.HasPrefix(c.Spanner.Database, "projects/") {
		errs = append(errs, ValidationError{"spanner.database", "must be projects/P/instances/I/databases/D"})
	}
	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, ValidationError{"auth.jwt_secret", "must be at least 32 characters"})
	}
	if c.Auth.MaxFailures < 1 {
		errs = append(errs, ValidationError{"auth.max_failures", "must be at least 1"})
	}
	if c.Auth.LockoutDuration < time.Minute {
		errs = append(errs, ValidationError{"auth.lockout_duration", "must be at least 1m"})
	}
	if c.Auth.SessionTTL < time.Minute {
		errs = append(errs, ValidationError{"auth.session_ttl", "must be at least 1m"})
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, ValidationError{"auth.bcrypt_cost", "must be between 4 and 31"})
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("invalid level '%s'", c.Log.Level)})
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, ValidationError{"log.format", "must be json or text"})
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, ValidationError{"server.gin_mode", "must be debug, release or test"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
