package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// Ensure DirectoryService implements the interface.
var _ driving.DirectoryService = (*DirectoryService)(nil)

// DirectoryService caches the most recently loaded contact directory.
// The collection is replaced wholesale on refresh: readers always see
// either the fully pre-refresh or the fully post-refresh collection,
// never a mix. Only LoadOrRefresh mutates it.
type DirectoryService struct {
	provider driven.DirectoryProvider

	mu       sync.RWMutex
	contacts []domain.Contact
	loaded   bool

	// group collapses concurrent fetches into one provider call.
	group singleflight.Group
}

// NewDirectoryService creates a directory cache over the given provider.
func NewDirectoryService(provider driven.DirectoryProvider) *DirectoryService {
	return &DirectoryService{provider: provider}
}

// LoadOrRefresh returns the directory, fetching from the provider when
// the cache is cold or forceRefresh is set. With forceRefresh=false and
// data already present this is a no-op that returns the cache. On fetch
// failure the previous collection is retained unchanged and the error
// is returned; no partial merge is attempted.
func (s *DirectoryService) LoadOrRefresh(ctx context.Context, forceRefresh bool) ([]domain.Contact, error) {
	if !forceRefresh && s.Loaded() {
		logger.Debug("directory cache warm, skipping fetch")
		return s.Contacts(), nil
	}

	// Forced and non-forced fetches collapse separately: a forced
	// refresh must not be handed the result of an in-flight warm load.
	key := "fetch"
	if forceRefresh {
		key = "fetch-forced"
	}

	contacts, err, _ := s.group.Do(key, func() (any, error) {
		fetched, err := s.provider.FetchAll(ctx, forceRefresh)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
		}
		s.mu.Lock()
		s.contacts = fetched
		s.loaded = true
		s.mu.Unlock()
		logger.Info("directory refreshed: %d contacts", len(fetched))
		return fetched, nil
	})
	if err != nil {
		logger.Warn("directory fetch failed: %v", err)
		return nil, err
	}
	return contacts.([]domain.Contact), nil
}

// Contacts returns the current cached collection as a consistent
// snapshot. The slice is replaced wholesale on refresh and its elements
// are never mutated, so the returned header is safe to read.
func (s *DirectoryService) Contacts() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contacts
}

// Loaded reports whether a collection has been loaded.
func (s *DirectoryService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
