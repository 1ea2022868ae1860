package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	applog "myspace/internal/log"
)

const (
	BackendAPI     = "api"
	BackendFixture = "fixture"
)

type Config struct {
	// HTTP Server
	Port string

	// Upstream time-tracking API
	APIURL     string
	APITimeout time.Duration

	// Backend selection
	DataBackend string
	FixtureDir  string

	// Display
	Timezone          string
	CurrencySymbol    string
	DayReloadInterval time.Duration

	// Cache for month payloads; size 0 disables it
	CacheTTL  time.Duration
	CacheSize int

	// Rate limiting
	RateLimitRPM int

	// Extra reverse proxy networks whose forwarding headers are trusted
	TrustedProxies []string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),

		APIURL:     getEnv("API_URL", "http://localhost:8080"),
		APITimeout: getEnvDuration("API_TIMEOUT", 10*time.Second),

		DataBackend: getEnv("DATA_BACKEND", BackendAPI),
		FixtureDir:  getEnv("FIXTURE_DIR", "./data"),

		Timezone:          getEnv("TIMEZONE", "Local"),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "$"),
		DayReloadInterval: getEnvDuration("DAY_RELOAD_INTERVAL", 120*time.Second),

		CacheTTL:  getEnvDuration("CACHE_TTL", time.Minute),
		CacheSize: getEnvInt("CACHE_SIZE", 64),

		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 120),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{BackendAPI, BackendFixture}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate API URL if backend is api
	if c.DataBackend == BackendAPI {
		if c.APIURL == "" {
			errors = append(errors, "API URL cannot be empty when using api backend")
		} else if parsedURL, err := url.Parse(c.APIURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.APITimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 100ms", c.APITimeout))
	} else if c.APITimeout > 2*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 2 minutes", c.APITimeout))
	}

	// Validate fixture directory if backend is fixture
	if c.DataBackend == BackendFixture {
		if c.FixtureDir == "" {
			errors = append(errors, "fixture directory cannot be empty when using fixture backend")
		} else if info, err := os.Stat(c.FixtureDir); err != nil {
			errors = append(errors, fmt.Sprintf("fixture directory does not exist: %s", c.FixtureDir))
		} else if !info.IsDir() {
			errors = append(errors, fmt.Sprintf("fixture path is not a directory: %s", c.FixtureDir))
		}
	}

	// Validate display settings
	if _, err := c.Location(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}
	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}
	if c.DayReloadInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid day reload interval %v: must be at least 1 second", c.DayReloadInterval))
	} else if c.DayReloadInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid day reload interval %v: must be at most 24 hours", c.DayReloadInterval))
	}

	// Validate cache configuration
	if c.CacheSize < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must not be negative", c.CacheSize))
	} else if c.CacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 10000", c.CacheSize))
	}
	if c.CacheSize > 0 && c.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be positive when the cache is enabled", c.CacheTTL))
	}

	if c.RateLimitRPM < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitRPM))
	}

	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errors = append(errors, fmt.Sprintf("invalid trusted proxy '%s': must be a CIDR such as 203.0.113.0/24", cidr))
		}
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves the viewer time zone used for "today".
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Timezone)
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
