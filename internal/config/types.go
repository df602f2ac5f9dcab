// internal/config/types.go
package config

import (
	"fmt"
	"time"
)

// Config is the top-level service configuration.
type Config struct {
	Server   ServerConfig  `yaml:"server" json:"server"`
	Browser  BrowserConfig `yaml:"browser" json:"browser"`
	Run      RunConfig     `yaml:"run" json:"run"`
	Export   *ExportConfig `yaml:"export,omitempty" json:"export,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// ServerConfig controls the HTTP control surface.
type ServerConfig struct {
	Address string `yaml:"address" json:"address"`
}

// BrowserConfig controls the shared Chrome session.
type BrowserConfig struct {
	Headless          bool          `yaml:"headless" json:"headless"`
	UserAgent         string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	ViewportWidth     int           `yaml:"viewport_width,omitempty" json:"viewport_width,omitempty"`
	ViewportHeight    int           `yaml:"viewport_height,omitempty" json:"viewport_height,omitempty"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout,omitempty" json:"navigation_timeout,omitempty"`
}

// RunConfig holds per-run defaults. The start request may override the
// request delay and the platform-only skip policy.
type RunConfig struct {
	RequestDelay     time.Duration `yaml:"request_delay,omitempty" json:"request_delay,omitempty"`
	MinInterval      time.Duration `yaml:"min_interval,omitempty" json:"min_interval,omitempty"`
	ProductSettle    time.Duration `yaml:"product_settle,omitempty" json:"product_settle,omitempty"`
	OfferSettle      time.Duration `yaml:"offer_settle,omitempty" json:"offer_settle,omitempty"`
	ProfileSettle    time.Duration `yaml:"profile_settle,omitempty" json:"profile_settle,omitempty"`
	OfferWaitTimeout time.Duration `yaml:"offer_wait_timeout,omitempty" json:"offer_wait_timeout,omitempty"`
	ChallengeWait    time.Duration `yaml:"challenge_wait,omitempty" json:"challenge_wait,omitempty"`
	SkipPlatformOnly *bool         `yaml:"skip_platform_only,omitempty" json:"skip_platform_only,omitempty"`
}

// SkipPlatform reports the effective platform-only skip policy (default on).
func (rc *RunConfig) SkipPlatform() bool {
	if rc.SkipPlatformOnly == nil {
		return true
	}
	return *rc.SkipPlatformOnly
}

// ExportConfig selects an optional sink for a completed run's rows.
type ExportConfig struct {
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
	Table  string `yaml:"table,omitempty" json:"table,omitempty"`
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.Browser.NavigationTimeout < 0 {
		return fmt.Errorf("navigation timeout cannot be negative")
	}
	if c.Run.RequestDelay < 0 {
		return fmt.Errorf("request delay cannot be negative")
	}
	if c.Export != nil {
		switch c.Export.Format {
		case "json", "csv", "excel", "sqlite":
		default:
			return fmt.Errorf("unsupported export format: %s", c.Export.Format)
		}
		if c.Export.File == "" {
			return fmt.Errorf("export file cannot be empty")
		}
	}
	return nil
}
