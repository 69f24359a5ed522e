package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every erpview command.
type Config struct {
	Server   string        `yaml:"server"`
	Timeout  time.Duration `yaml:"timeout"`
	DB       string        `yaml:"db"`
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file"`
	Listen   string        `yaml:"listen"`

	// CORSOrigins are the browser origins allowed to call the ledger API.
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns a configuration pointing at a local ERP backend.
func Default() *Config {
	return &Config{
		Server:   "http://127.0.0.1:8000",
		Timeout:  30 * time.Second,
		DB:       "snapshots.db",
		LogLevel: "info",
		Listen:   ":8890",

		CORSOrigins: []string{"*"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (if any), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ERPVIEW_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("ERPVIEW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ERPVIEW_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("ERPVIEW_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("ERPVIEW_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ERPVIEW_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("ERPVIEW_LISTEN"); v != "" {
		c.Listen = v
	}
	if v, ok := os.LookupEnv("ERPVIEW_CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadEnvFile adds the variables in a dotenv file to the environment.
// Variables already set are kept, and a missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server must be an absolute URL, got %q", c.Server)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
