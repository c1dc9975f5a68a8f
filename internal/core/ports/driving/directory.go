package driving

import (
	"context"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// DirectoryService exposes the shared in-memory contact directory cache.
// The cache is read-mostly: only its own load/refresh mutates it, as an
// atomic whole-collection swap.
type DirectoryService interface {
	// LoadOrRefresh returns the directory, fetching it from the
	// provider when the cache is cold or forceRefresh is set. Calling
	// with forceRefresh=false when data is present returns the cache
	// without an external call. On fetch failure the previous
	// collection is retained and the error returned.
	LoadOrRefresh(ctx context.Context, forceRefresh bool) ([]domain.Contact, error)

	// Contacts returns the current cached collection, which may be
	// empty when the cache is cold. Always a consistent snapshot.
	Contacts() []domain.Contact

	// Loaded reports whether a collection has been loaded.
	Loaded() bool
}
