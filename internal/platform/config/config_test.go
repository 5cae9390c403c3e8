package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithEnv("", envMap(nil))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v want defaults", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "taskmanager.yaml", `
port: "9090"
store: postgres
log_level: debug
shutdown_timeout: 3s
postgres:
  dsn: postgres://file
  max_conns: 4
`)
	cfg, err := LoadWithEnv(path, envMap(map[string]string{
		EnvPostgresDSN:     "postgres://env",
		EnvPostgresMaxConn: "8",
	}))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.Store != StorePostgres || cfg.LogLevel != "debug" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Postgres.DSN != "postgres://env" || cfg.Postgres.MaxConns != 8 {
		t.Fatalf("env did not override postgres: %+v", cfg.Postgres)
	}
	if d, err := cfg.ShutdownGrace(); err != nil || d != 3*time.Second {
		t.Fatalf("grace=%v err=%v", d, err)
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "taskmanager.toml", `
port = "7070"
store = "postgres"

[postgres]
dsn = "postgres://toml"
`)
	cfg, err := LoadWithEnv(path, envMap(map[string]string{EnvPort: "6060"}))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Port != "6060" || cfg.Store != StorePostgres || cfg.Postgres.DSN != "postgres://toml" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unset key lost its default: log_level=%q", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil)); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadWithEnv(writeFile(t, "cfg.json", "{}"), envMap(nil)); err == nil || !strings.Contains(err.Error(), "unsupported extension") {
		t.Fatalf("err=%v want unsupported extension", err)
	}
	if _, err := LoadWithEnv(writeFile(t, "bad.yaml", "port: [1"), envMap(nil)); err == nil {
		t.Fatalf("expected yaml parse error")
	}
	if _, err := LoadWithEnv("", envMap(map[string]string{EnvPostgresMaxConn: "lots"})); err == nil {
		t.Fatalf("expected error for non-numeric %s", EnvPostgresMaxConn)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory ok", func(*Config) {}, ""},
		{"postgres ok", func(c *Config) { c.Store = StorePostgres; c.Postgres.DSN = "postgres://x" }, ""},
		{"postgres without dsn", func(c *Config) { c.Store = StorePostgres }, "requires a dsn"},
		{"unknown store", func(c *Config) { c.Store = "redis" }, "unknown store"},
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"bad timeout", func(c *Config) { c.ShutdownTimeout = "soon" }, "invalid shutdown_timeout"},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = "0s" }, "must be positive"},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		switch {
		case tc.wantErr == "" && err != nil:
			t.Errorf("%s: unexpected err=%v", tc.name, err)
		case tc.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tc.wantErr)):
			t.Errorf("%s: err=%v want contains %q", tc.name, err, tc.wantErr)
		}
	}
}
