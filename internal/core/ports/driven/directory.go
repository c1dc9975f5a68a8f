package driven

import (
	"context"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// DirectoryProvider fetches the full contact directory from an external
// source. Implementations include the SQLite store, a JSON contacts
// file, Google People and GitHub organisation members.
type DirectoryProvider interface {
	// FetchAll returns every contact the source knows about.
	// forceRefresh asks the provider to bypass any source-side cache.
	// On error no partial result is returned.
	FetchAll(ctx context.Context, forceRefresh bool) ([]domain.Contact, error)
}
