package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Port:       8080,
		Backend:    BackendSQLite,
		SQLitePath: "./test.db",
		LogLevel:   "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid sqlite config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid memory config",
			mutate: func(c *Config) {
				c.Backend = BackendMemory
				c.SQLitePath = ""
			},
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = 0 },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.Backend = "sheets" },
			wantErr:     true,
			errorString: "invalid backend 'sheets'",
		},
		{
			name:        "sqlite without path",
			mutate:      func(c *Config) { c.SQLitePath = "" },
			wantErr:     true,
			errorString: "sqlite path cannot be empty",
		},
		{
			name:        "postgres without dsn",
			mutate:      func(c *Config) { c.Backend = BackendPostgres },
			wantErr:     true,
			errorString: "postgres DSN is required",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	c := Config{Port: -1, Backend: "nope", LogLevel: "loud"}
	err := c.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	for _, want := range []string{"invalid port", "invalid backend", "invalid log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %q", want, err)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Port != 8080 || c.Backend != BackendSQLite || c.SQLitePath != "./data/cosmocash.db" {
			t.Errorf("Unexpected defaults %+v", c)
		}
		if c.LogLevel != "info" || !c.Metrics {
			t.Errorf("Unexpected defaults %+v", c)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("Defaults should validate: %v", err)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("COSMOCASH_PORT", "9090")
		t.Setenv("COSMOCASH_BACKEND", "MEMORY")
		t.Setenv("LOG_LEVEL", "debug")

		c, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Port != 9090 || c.Backend != BackendMemory || c.LogLevel != "debug" {
			t.Errorf("Environment not applied: %+v", c)
		}
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cosmocash.yaml")
		yaml := "port: 7070\nbackend: postgres\npostgres_dsn: postgres://localhost/cosmocash\nmetrics: false\n"
		if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Port != 7070 || c.Backend != BackendPostgres || c.Metrics {
			t.Errorf("File not applied: %+v", c)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing config file")
		}
	})
}
