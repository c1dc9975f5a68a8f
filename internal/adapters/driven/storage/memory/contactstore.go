// Package memory provides in-memory implementations of driven port
// interfaces. Useful for tests and as a seeded demo directory.
package memory

import (
	"context"
	"sync"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
)

// Ensure ContactStore implements the interface.
var _ driven.DirectoryProvider = (*ContactStore)(nil)

// ContactStore is an in-memory implementation of driven.DirectoryProvider.
type ContactStore struct {
	mu       sync.RWMutex
	contacts map[string]domain.Contact
	order    []string
}

// NewContactStore creates a new in-memory contact store.
func NewContactStore() *ContactStore {
	return &ContactStore{contacts: make(map[string]domain.Contact)}
}

// FetchAll returns every stored contact in insertion order.
func (s *ContactStore) FetchAll(_ context.Context, _ bool) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Contact, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contacts[id])
	}
	return out, nil
}

// Put stores or replaces a contact.
func (s *ContactStore) Put(contact domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contacts[contact.ID]; !exists {
		s.order = append(s.order, contact.ID)
	}
	s.contacts[contact.ID] = contact
}

// Get retrieves a contact by ID.
func (s *ContactStore) Get(id string) (domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return domain.Contact{}, domain.ErrNotFound
	}
	return c, nil
}

// Delete removes a contact. Unknown IDs are a no-op.
func (s *ContactStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return
	}
	delete(s.contacts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored contacts.
func (s *ContactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}
