package mcp

import (
	"context"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// mockDirectory implements driving.DirectoryService for testing.
type mockDirectory struct {
	contacts []domain.Contact
	err      error
	loads    int
	forced   int
}

func (m *mockDirectory) LoadOrRefresh(_ context.Context, forceRefresh bool) ([]domain.Contact, error) {
	m.loads++
	if forceRefresh {
		m.forced++
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.contacts, nil
}

func (m *mockDirectory) Contacts() []domain.Contact { return m.contacts }
func (m *mockDirectory) Loaded() bool               { return m.loads > 0 }

func testDirectory() *mockDirectory {
	return &mockDirectory{contacts: []domain.Contact{
		{ID: "c1", Name: "Alice Smith", Emails: []string{"alice@example.com"}, Organization: "Example Corp"},
		{ID: "c2", Name: "Bob Jones", Emails: []string{"bob@acme.example"}, Organization: "Acme"},
		{ID: "c3", Name: "Carol White"},
	}}
}
