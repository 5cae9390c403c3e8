// Package config loads server configuration: defaults, then an optional YAML or TOML
// file, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Environment variables read by Load.
const (
	EnvPort            = "PORT"
	EnvStore           = "STORE"
	EnvPostgresDSN     = "PG_DSN"
	EnvPostgresMaxConn = "PG_MAX_CONNS"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

type Config struct {
	Port     string         `yaml:"port" toml:"port"`
	Store    string         `yaml:"store" toml:"store"`
	Postgres PostgresConfig `yaml:"postgres" toml:"postgres"`
	LogLevel string         `yaml:"log_level" toml:"log_level"`

	// ShutdownTimeout is a Go duration string such as "10s".
	ShutdownTimeout string `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn" toml:"dsn"`
	MaxConns int32  `yaml:"max_conns" toml:"max_conns"`
}

func Default() Config {
	return Config{
		Port:            "8080",
		Store:           StoreMemory,
		LogLevel:        "info",
		ShutdownTimeout: "10s",
	}
}

// Load reads path (if non-empty) and applies environment overrides from os.Getenv.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(b), cfg); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q (want .yaml, .yml or .toml)", path, filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		cfg.Port = v
	}
	if v := getenv(EnvStore); v != "" {
		cfg.Store = v
	}
	if v := getenv(EnvPostgresDSN); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := getenv(EnvPostgresMaxConn); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPostgresMaxConn, err)
		}
		cfg.Postgres.MaxConns = int32(n)
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvShutdownTimeout); v != "" {
		cfg.ShutdownTimeout = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("store %q requires a dsn (%s)", StorePostgres, EnvPostgresDSN)
		}
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StoreMemory, StorePostgres)
	}
	if c.Postgres.MaxConns < 0 {
		return fmt.Errorf("postgres max_conns must be >= 0")
	}
	if _, err := c.ShutdownGrace(); err != nil {
		return err
	}
	return nil
}

// ShutdownGrace parses ShutdownTimeout.
func (c Config) ShutdownGrace() (time.Duration, error) {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid shutdown_timeout %q: %w", c.ShutdownTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("shutdown_timeout must be positive")
	}
	return d, nil
}
