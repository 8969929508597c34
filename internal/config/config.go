package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Transport  TransportConfig  `yaml:"transport"`
	Dashboard  DashboardConfig  `yaml:"dashboard"`
	Source     SourceConfig     `yaml:"source"`
	Validation ValidationConfig `yaml:"validation"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"PORTFOLIO_SERVER_HOST"`
	Port int    `yaml:"port" env:"PORTFOLIO_SERVER_PORT"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"PORTFOLIO_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"PORTFOLIO_LOG_LEVEL"`
	// Path, when set, sends logs to a size-capped file.
	Path string `yaml:"path" env:"PORTFOLIO_LOG_PATH"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled" env:"PORTFOLIO_AUTH_ENABLED"`
	// DefaultTenant is used for every request when auth is disabled.
	DefaultTenant string `yaml:"default_tenant" env:"PORTFOLIO_DEFAULT_TENANT"`
}

type TransportConfig struct {
	// Mode is "http" or "stdio" (MCP over stdin/stdout).
	Mode string `yaml:"mode" env:"PORTFOLIO_TRANSPORT_MODE"`
}

type DashboardConfig struct {
	PageSize int `yaml:"page_size" env:"PORTFOLIO_PAGE_SIZE"`
}

// SourceConfig points the dashboard at a remote record store. When URL is
// empty the local SQLite store is used.
type SourceConfig struct {
	URL     string        `yaml:"url" env:"PORTFOLIO_SOURCE_URL"`
	Token   string        `yaml:"token" env:"PORTFOLIO_SOURCE_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env:"PORTFOLIO_SOURCE_TIMEOUT"`
}

type ValidationConfig struct {
	ClampSpent bool `yaml:"clamp_spent" env:"PORTFOLIO_CLAMP_SPENT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "portfolio.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			DefaultTenant: "default",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Dashboard: DashboardConfig{
			PageSize: 5,
		},
		Source: SourceConfig{
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PORTFOLIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Dashboard.PageSize <= 0 {
		return fmt.Errorf("invalid dashboard page size %d", c.Dashboard.PageSize)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if !c.Auth.Enabled && c.Auth.DefaultTenant == "" {
		return fmt.Errorf("default tenant required when auth is disabled")
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
