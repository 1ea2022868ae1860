package backend

import (
	"fmt"

	"myspace/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		APIURL:     appConfig.APIURL,
		APITimeout: appConfig.APITimeout,

		DataDirectory: appConfig.FixtureDir,

		CacheSize: appConfig.CacheSize,
		CacheTTL:  appConfig.CacheTTL,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case APIBackend:
		if c.APIURL == "" {
			return fmt.Errorf("API URL is required for api backend")
		}
		if c.APITimeout <= 0 {
			return fmt.Errorf("API timeout must be positive for api backend")
		}
	case FixtureBackend:
		// DataDirectory defaults to "data" when empty
	}

	if c.CacheSize > 0 && c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when the cache is enabled")
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{APIBackend, FixtureBackend}
}
