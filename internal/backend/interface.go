package backend

import (
	"context"
	"time"

	"myspace/internal/source"
)

// Backend is the unified data source consumed by pages and the CLI
type Backend interface {
	source.Reader
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// API specific
	APIURL     string
	APITimeout time.Duration

	// Fixture specific
	DataDirectory string

	// Month payload cache; size 0 disables it
	CacheSize int
	CacheTTL  time.Duration
}

// BackendType represents the type of backend
type BackendType string

const (
	APIBackend     BackendType = "api"
	FixtureBackend BackendType = "fixture"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case APIBackend, FixtureBackend:
		return true
	default:
		return false
	}
}
