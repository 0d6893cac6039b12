package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mohammadpnp/candidate-onboarding/internal/logging"
	"gopkg.in/yaml.v3"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	Port        string         `yaml:"port"`
	DatabaseURL string         `yaml:"database_url"`
	BodyLimit   string         `yaml:"body_limit"`
	Onboarding  Onboarding     `yaml:"onboarding"`
	Log         logging.Config `yaml:"log"`
}

type Onboarding struct {
	MaxRows        int           `yaml:"max_rows"`
	ProcessTimeout time.Duration `yaml:"process_timeout"`
	Lease          time.Duration `yaml:"lease"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
}

// Load reads defaults from the environment and overlays the YAML file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BodyLimit:   getEnv("BODY_LIMIT", "10M"),
		Onboarding: Onboarding{
			MaxRows:        parseIntEnv("ONBOARDING_MAX_ROWS", 5000),
			ProcessTimeout: time.Duration(parseIntEnv("ONBOARDING_PROCESS_TIMEOUT_SECONDS", 300)) * time.Second,
			Lease:          time.Duration(parseIntEnv("ONBOARDING_LEASE_SECONDS", 600)) * time.Second,
			BcryptCost:     parseIntEnv("BCRYPT_COST", 10),
		},
		Log: logging.Config{
			Level: os.Getenv("LOG_LEVEL"),
			Dev:   os.Getenv("LOG_DEV") == "1",
		},
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.Log.Dev {
			cfg.Log.Level = "debug"
		}
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks the settings the HTTP service cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.Onboarding.MaxRows <= 0 {
		return fmt.Errorf("onboarding.max_rows must be positive, got %d", c.Onboarding.MaxRows)
	}
	if c.Onboarding.ProcessTimeout <= 0 || c.Onboarding.Lease <= 0 {
		return errors.New("onboarding timeouts must be positive")
	}
	// Runs do not renew their claim, so it must outlive the longest run.
	if c.Onboarding.Lease < c.Onboarding.ProcessTimeout {
		return fmt.Errorf("onboarding.lease (%s) must not be shorter than onboarding.process_timeout (%s)",
			c.Onboarding.Lease, c.Onboarding.ProcessTimeout)
	}
	return nil
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
