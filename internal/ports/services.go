// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter on anything that may block
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

// LocationCatalog lists preset birth locations.
type LocationCatalog interface {
	// List returns every city, grouped by region in catalog order.
	List(ctx context.Context) ([]domain.City, error)

	// Find looks a city up by name, ignoring case.
	// Returns domain.ErrNotFound if no city matches.
	Find(ctx context.Context, name string) (domain.City, error)

	// Regions returns region names in catalog order.
	Regions(ctx context.Context) ([]string, error)
}

// Cache defines the contract for caching operations.
// The Horizons adapter caches raw ephemeris rows here; computed charts are never cached.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with optional TTL.
	// A TTL of 0 means the cache default applies.
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error

	// Delete removes a value from the cache.
	// Does not return an error if the key does not exist.
	Delete(ctx context.Context, key string) error
}
