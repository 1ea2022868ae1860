package backend

import (
	"context"
	"fmt"

	"myspace/internal/cache"
	applog "myspace/internal/log"
	"myspace/internal/source/api"
	"myspace/internal/source/fixture"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
	caches *cache.Manager
}

// NewFactory creates a new backend factory. Month caches built by the
// factory are registered with caches when it is non-nil.
func NewFactory(logger *applog.Logger, caches *cache.Manager) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
		caches: caches,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case APIBackend:
		result, err = f.createAPIBackend(config)
	case FixtureBackend:
		result, err = f.createFixtureBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheSize > 0 {
		cached := NewCached(result.Backend, config.CacheSize, config.CacheTTL)
		if f.caches != nil {
			cached.Register(f.caches)
		}
		result.Backend = cached
		f.logger.Info("Enabled month payload cache",
			"size", config.CacheSize,
			"ttl", config.CacheTTL.String())
	}

	return result, nil
}

func (f *DefaultFactory) createAPIBackend(config Config) (*BackendResult, error) {
	client, err := api.NewClient(config.APIURL, config.APITimeout, api.WithLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API client: %w", err)
	}

	f.logger.Info("Initialized API backend",
		"api_url", config.APIURL,
		"timeout", config.APITimeout.String())

	return &BackendResult{
		Backend: client,
		Cleanup: nil, // http.Client holds no resources worth releasing
	}, nil
}

func (f *DefaultFactory) createFixtureBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := fixture.NewFromDir(dataDir)

	f.logger.Info("Initialized fixture backend", "data_directory", dataDir)

	return &BackendResult{
		Backend: store,
		Cleanup: nil,
	}, nil
}
