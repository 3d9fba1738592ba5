package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"gopkg.in/yaml.v3"
)

const envPrefix = "REWORKDESK_"

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config defines server configuration.
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Transport  TransportConfig   `yaml:"transport"`
	Store      StoreConfig       `yaml:"store"`
	Log        LogConfig         `yaml:"log"`
	Seed       SeedConfig        `yaml:"seed"`
	Candidates record.Candidates `yaml:"candidates"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type SeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			DSN:     ":memory:",
		},
		Log: LogConfig{
			Level: "info",
		},
		Seed: SeedConfig{
			Enabled: true,
		},
		Candidates: record.DefaultCandidates(),
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(envPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv(envPrefix + "SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv(envPrefix + "SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sSERVER_PORT: %w", envPrefix, err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv(envPrefix + "TRANSPORT"); mode != "" {
		cfg.Transport.Mode = strings.ToLower(mode)
	}
	if backend := os.Getenv(envPrefix + "STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = strings.ToLower(backend)
	}
	if dsn := os.Getenv(envPrefix + "STORE_DSN"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if level := os.Getenv(envPrefix + "LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv(envPrefix + "LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if seedStr := os.Getenv(envPrefix + "SEED"); seedStr != "" {
		enabled, err := strconv.ParseBool(seedStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sSEED: %w", envPrefix, err)
		}
		cfg.Seed.Enabled = enabled
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and the listen port.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("%w: unknown transport mode %q", ErrInvalidConfig, c.Transport.Mode)
	}
	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: sqlite backend requires a dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
