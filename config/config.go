// Package config loads the settings that tell the test harness where the Petstore service is
// and how long to wait for it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BaseURLEnvVar is consulted for the base URL when neither a flag nor a config file sets it.
const BaseURLEnvVar = "PETSTORE_URL"

const (
	defaultRequestTimeout     = 30 * time.Second
	defaultStatusQueryTimeout = 10 * time.Second
)

// Config contains everything the harness needs to reach the service under test.
type Config struct {
	// BaseURL is the root of the API, for instance http://localhost:8080/api/v3.
	BaseURL string `yaml:"base_url"`

	// RequestTimeout limits each request made by a test. Zero means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// StatusQueryTimeout is how long to keep retrying the initial connection to the service.
	StatusQueryTimeout time.Duration `yaml:"status_query_timeout"`
}

func Default() Config {
	return Config{
		BaseURL:            os.Getenv(BaseURLEnvVar),
		RequestTimeout:     defaultRequestTimeout,
		StatusQueryTimeout: defaultStatusQueryTimeout,
	}
}

// Load reads a YAML config file. Settings that the file leaves out keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.StatusQueryTimeout <= 0 {
		cfg.StatusQueryTimeout = defaultStatusQueryTimeout
	}
	if cfg.RequestTimeout < 0 {
		return cfg, fmt.Errorf("request_timeout cannot be negative")
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to run the tests.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required (use -url, a config file, or $%s)", BaseURLEnvVar)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL %q must start with http:// or https://", c.BaseURL)
	}
	return nil
}
