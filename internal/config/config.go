// Package config loads the configuration of the insta-proxy binary.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional YAML file, a .env file, then process environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/instagram-api-client/pkg/cache"
	"github.com/Sternrassler/instagram-api-client/pkg/client"
	"github.com/Sternrassler/instagram-api-client/pkg/instagram"
)

// Config holds all settings of the proxy.
type Config struct {
	API     APIConfig     `yaml:"api" envPrefix:"INSTAGRAM_API_"`
	Redis   RedisConfig   `yaml:"redis" envPrefix:"REDIS_"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
}

// APIConfig configures the upstream aggregation API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Key     string        `yaml:"key" env:"KEY"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	// StopAtLastPage ends list fetches at the first page without a cursor.
	StopAtLastPage bool `yaml:"stop_at_last_page" env:"STOP_AT_LAST_PAGE"`
}

// RedisConfig configures the cache backend.
type RedisConfig struct {
	URL      string        `yaml:"url" env:"URL"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
}

// Default returns the configuration used when no source overrides it.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://instagram-scraper-api2.p.rapidapi.com",
			Timeout: client.DefaultTimeout,
		},
		Redis: RedisConfig{
			URL:      "redis://localhost:6379/0",
			CacheTTL: cache.DefaultTTL,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. yamlPath and envFile are optional; a
// missing .env file is not an error, a missing YAML file is.
func Load(yamlPath, envFile string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		if err := cfg.LoadFromFile(yamlPath); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile merges a YAML file into c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("INSTAGRAM_API_BASE_URL is required"))
	}
	if c.API.Key == "" {
		errs = append(errs, errors.New("INSTAGRAM_API_KEY is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api timeout must be positive"))
	}
	if c.Redis.URL == "" {
		errs = append(errs, errors.New("REDIS_URL is required"))
	}
	if c.Redis.CacheTTL <= 0 {
		errs = append(errs, errors.New("cache ttl must be positive"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// Instagram returns the library configuration.
func (c *Config) Instagram() instagram.Config {
	cfg := instagram.DefaultConfig(c.API.BaseURL, c.API.Key)
	cfg.Upstream.Timeout = c.API.Timeout
	cfg.CacheTTL = c.Redis.CacheTTL
	cfg.StopAtLastPage = c.API.StopAtLastPage
	return cfg
}
