// Package config loads podcatalog settings from a yaml file and command line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the full process configuration.
type Settings struct {
	Server     ServerSettings     `yaml:"server"`
	Catalog    CatalogSettings    `yaml:"catalog"`
	ImageRelay ImageRelaySettings `yaml:"image_relay"`
	Logging    LoggingSettings    `yaml:"logging"`
}

// ServerSettings configures the HTTP listener and static frontend.
type ServerSettings struct {
	Listen          string        `yaml:"listen"`
	DistDir         string        `yaml:"dist_dir"`
	CORS            string        `yaml:"cors"` // "any" or "private"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CatalogSettings configures the remote catalog source.
type CatalogSettings struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ImageRelaySettings bounds the image relay. MaxRedirects 0 disables
// redirects.
type ImageRelaySettings struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRedirects int           `yaml:"max_redirects"`
	MaxBytes     int64         `yaml:"max_bytes"`
	RatePerSec   float64       `yaml:"rate_per_sec"`
	Burst        int           `yaml:"burst"`
}

// LoggingSettings configures log output. An empty File logs to stdout only.
type LoggingSettings struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Debug      bool   `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Server: ServerSettings{
			Listen:          ":3001",
			DistDir:         "dist",
			CORS:            "any",
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogSettings{
			URL:     "https://podcast-api.netlify.app/",
			Timeout: 30 * time.Second,
		},
		ImageRelay: ImageRelaySettings{
			Timeout:      15 * time.Second,
			MaxRedirects: 5,
			MaxBytes:     10 << 20,
			RatePerSec:   20,
			Burst:        60,
		},
		Logging: LoggingSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a yaml file on top of the defaults.
func Load(fileName string) (*Settings, error) {
	res := Default()
	data, err := os.ReadFile(fileName) // nolint
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}
	return &res, nil
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	var errs []error

	if strings.TrimSpace(s.Server.Listen) == "" {
		errs = append(errs, errors.New("server.listen is required"))
	}
	switch s.Server.CORS {
	case "any", "private":
	default:
		errs = append(errs, fmt.Errorf("server.cors must be \"any\" or \"private\", got %q", s.Server.CORS))
	}

	u, err := url.Parse(s.Catalog.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("catalog.url must be an http(s) url, got %q", s.Catalog.URL))
	}
	if s.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("catalog.timeout must be positive"))
	}

	if s.ImageRelay.Timeout <= 0 {
		errs = append(errs, errors.New("image_relay.timeout must be positive"))
	}
	if s.ImageRelay.MaxBytes <= 0 {
		errs = append(errs, errors.New("image_relay.max_bytes must be positive"))
	}
	if s.ImageRelay.MaxRedirects < 0 {
		errs = append(errs, errors.New("image_relay.max_redirects cannot be negative"))
	}
	if s.ImageRelay.RatePerSec <= 0 || s.ImageRelay.Burst <= 0 {
		errs = append(errs, errors.New("image_relay.rate_per_sec and burst must be positive"))
	}

	return errors.Join(errs...)
}
