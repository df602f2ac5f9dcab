// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default timings. The waits mirror the pacing the target site family
// tolerates: a short settle after navigation, a longer settle for the
// async-rendered offers panel, and a long fixed wait after a bot challenge.
const (
	DefaultAddress           = ":8080"
	DefaultNavigationTimeout = 30 * time.Second
	DefaultRequestDelay      = 3 * time.Second
	DefaultProductSettle     = 1500 * time.Millisecond
	DefaultOfferSettle       = 2500 * time.Millisecond
	DefaultProfileSettle     = 2 * time.Second
	DefaultOfferWaitTimeout  = 10 * time.Second
	DefaultChallengeWait     = 30 * time.Second
	DefaultUserAgent         = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
)

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes. Environment variables
// referenced as ${VAR} are expanded before parsing.
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultAddress
	}

	if cfg.Browser.UserAgent == "" {
		cfg.Browser.UserAgent = DefaultUserAgent
	}
	if cfg.Browser.ViewportWidth == 0 {
		cfg.Browser.ViewportWidth = 1440
	}
	if cfg.Browser.ViewportHeight == 0 {
		cfg.Browser.ViewportHeight = 900
	}
	if cfg.Browser.NavigationTimeout == 0 {
		cfg.Browser.NavigationTimeout = DefaultNavigationTimeout
	}

	if cfg.Run.RequestDelay == 0 {
		cfg.Run.RequestDelay = DefaultRequestDelay
	}
	if cfg.Run.ProductSettle == 0 {
		cfg.Run.ProductSettle = DefaultProductSettle
	}
	if cfg.Run.OfferSettle == 0 {
		cfg.Run.OfferSettle = DefaultOfferSettle
	}
	if cfg.Run.ProfileSettle == 0 {
		cfg.Run.ProfileSettle = DefaultProfileSettle
	}
	if cfg.Run.OfferWaitTimeout == 0 {
		cfg.Run.OfferWaitTimeout = DefaultOfferWaitTimeout
	}
	if cfg.Run.ChallengeWait == 0 {
		cfg.Run.ChallengeWait = DefaultChallengeWait
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
