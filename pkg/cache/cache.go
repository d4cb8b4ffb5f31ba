// Package cache provides the caching layer shared by the data-retrieval
// clients and the rendering pipeline. Backends range from a no-op cache for
// tests through a file cache for CLI usage to Redis for server deployments.
package cache

import (
	"context"
	"time"
)

// Cache is the backend-agnostic storage contract. A miss is not an error:
// Get reports it through the second return value.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the entity classes the pipeline stores.
// Keeping key construction behind an interface lets deployments namespace
// keys (see ScopedKeyer) without touching callers.
type Keyer interface {
	// HTTPKey keys a raw upstream HTTP response.
	HTTPKey(namespace, key string) string
	// FigureKey keys a composed figure for one protein and view.
	FigureKey(protein string, opts FigureKeyOpts) string
	// ArtifactKey keys an exported artifact derived from a figure.
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// FigureKeyOpts are the inputs that change a composed figure's identity.
type FigureKeyOpts struct {
	ViewStart int
	ViewEnd   int
	Width     float64
	Tracks    string
	Mode      string
}

// ArtifactKeyOpts are the inputs that change an exported artifact's identity.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
}

// DefaultKeyer hashes option structs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// FigureKey generates a key for figure caching.
func (k *DefaultKeyer) FigureKey(protein string, opts FigureKeyOpts) string {
	return hashKey("figure", protein, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}
