// Package adapter defines the capability every search backend implements
// (spec.md §4.A). Concrete adapters live under internal/engines; the
// registry only ever depends on this interface.
package adapter

import (
	"context"
	"net/http"

	"metasearch/engine/models"
)

// Adapter is the uniform contract every backend implements. Implementations
// must be stateless beyond their immutable construction-time fields (they
// are shared across concurrent calls) and must never panic — every failure
// becomes a *models.EngineError.
type Adapter interface {
	// ID is the stable unique identifier used as the key in config and in
	// the breaker/throttle registries.
	ID() string
	// Name is for display only.
	Name() string
	// Categories declares which query categories this engine matches.
	Categories() []string
	// Search executes one query against this backend. It must honour
	// query.SafeSearch and query.Language where the backend supports them,
	// and must paginate consistently when query.Page > 1.
	Search(ctx context.Context, query models.SearchQuery, client *http.Client, cfg models.EngineConfig) ([]models.SearchResult, error)
}
