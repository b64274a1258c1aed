package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL  = "https://eodhd.com/api"
	DefaultTimeout  = 30 * time.Second
	DefaultTokenEnv = "EODHD_API_TOKEN"
	DefaultEnvFile  = ".env"
)

// Config holds the settings that are not supplied per invocation.
type Config struct {
	BaseURL  string        `json:"base_url"`
	Timeout  time.Duration `json:"timeout"`
	TokenEnv string        `json:"token_env"`
	EnvFile  string        `json:"env_file"`
	Debug    bool          `json:"debug"`
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// DefaultConfig loads .env (if present) into the process environment and
// returns the defaults overridden by EODHD_* variables.
func DefaultConfig() *Config {
	// Existing variables win over the file.
	_ = godotenv.Load(DefaultEnvFile)

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the defaults and the given lookup.
func FromEnv(lookup LookupFunc) *Config {
	cfg := &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		TokenEnv: DefaultTokenEnv,
		EnvFile:  DefaultEnvFile,
		Debug:    false,
	}
	cfg.loadFromEnv(lookup)
	return cfg
}

func (c *Config) loadFromEnv(lookup LookupFunc) {
	if lookup == nil {
		return
	}

	if val, ok := lookup("EODHD_BASE_URL"); ok && val != "" {
		c.BaseURL = val
	}
	if val, ok := lookup("EODHD_TIMEOUT"); ok && val != "" {
		if secs, err := strconv.Atoi(val); err == nil {
			c.Timeout = time.Duration(secs) * time.Second
		}
	}
	if val, ok := lookup("EODHD_DEBUG"); ok && val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Validate checks the values a request depends on.
func (c *Config) Validate() error {
	if err := ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if strings.TrimSpace(c.TokenEnv) == "" {
		return fmt.Errorf("token environment variable name is empty")
	}
	return nil
}

// ValidateBaseURL accepts absolute http and https URLs only.
func ValidateBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q has no host", raw)
	}
	return nil
}
