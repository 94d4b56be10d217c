// Package config loads runtime settings from an optional cosmocash.yaml,
// a .env file and COSMOCASH_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var (
	validBackends  = []string{BackendMemory, BackendSQLite, BackendPostgres}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	Port        int    `mapstructure:"port"`
	Backend     string `mapstructure:"backend"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	StaticPath  string `mapstructure:"static_path"`
	LogLevel    string `mapstructure:"log_level"`
	Metrics     bool   `mapstructure:"metrics"`

	// AsyncWrites moves storage writes off the request path.
	AsyncWrites bool `mapstructure:"async_writes"`
}

// Load reads the configuration. An empty path looks for cosmocash.yaml in
// the working directory and carries on without it; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("sqlite_path", "./data/cosmocash.db")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("static_path", "./static")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics", true)
	v.SetDefault("async_writes", true)

	// environment overrides, e.g. COSMOCASH_PORT=9000
	v.SetEnvPrefix("COSMOCASH")
	v.AutomaticEnv()
	if err := v.BindEnv("log_level", "COSMOCASH_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind log level: %w", err)
	}

	if path == "" {
		v.SetConfigName("cosmocash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Backend = strings.ToLower(c.Backend)
	c.LogLevel = strings.ToLower(c.LogLevel)
	return &c, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch c.Backend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "sqlite path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			problems = append(problems, "postgres DSN is required when using postgres backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
