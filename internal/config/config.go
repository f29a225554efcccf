package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "http://localhost:5000"
	defaultTimeout = 15 * time.Second
)

type Config struct {
	// BaseURL is the storefront API host, e.g. https://api.sweetshop.example.
	BaseURL string
	// Timeout bounds each HTTP call.
	Timeout time.Duration
}

// Load reads configuration from a .env file when present, then the
// environment, falling back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on environment variables")
	}

	cfg := Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
	}

	if v := os.Getenv("SWEETSHOP_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SWEETSHOP_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		} else {
			logrus.WithField("value", v).Warn("invalid SWEETSHOP_HTTP_TIMEOUT, using default")
		}
	}

	return cfg
}
