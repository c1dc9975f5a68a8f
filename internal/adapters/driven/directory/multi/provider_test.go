package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// stubProvider implements driven.DirectoryProvider for testing.
type stubProvider struct {
	contacts []domain.Contact
	err      error
	calls    int
}

func (s *stubProvider) FetchAll(_ context.Context, _ bool) ([]domain.Contact, error) {
	s.calls++
	return s.contacts, s.err
}

func TestProvider_MergesAndSortsByName(t *testing.T) {
	a := &stubProvider{contacts: []domain.Contact{
		{ID: "g:1", Name: "Charlie Brown"},
		{ID: "g:2", Name: "alice smith"},
	}}
	b := &stubProvider{contacts: []domain.Contact{
		{ID: "gh:1", Name: "Bob Jones"},
	}}

	p := NewProvider(a, b)
	contacts, err := p.FetchAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "alice smith", contacts[0].Name)
	assert.Equal(t, "Bob Jones", contacts[1].Name)
	assert.Equal(t, "Charlie Brown", contacts[2].Name)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestProvider_DeduplicatesByID(t *testing.T) {
	a := &stubProvider{contacts: []domain.Contact{
		{ID: "c1", Name: "Alice Smith", Organization: "Example Corp"},
	}}
	b := &stubProvider{contacts: []domain.Contact{
		{ID: "c1", Name: "Alice S."},
		{ID: "c2", Name: "Bob"},
	}}

	p := NewProvider(a, b)
	contacts, err := p.FetchAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
}

func TestProvider_PartialFailureKeepsSuccessfulSubset(t *testing.T) {
	a := &stubProvider{contacts: []domain.Contact{{ID: "c1", Name: "Alice"}}}
	b := &stubProvider{err: errors.New("github down")}

	p := NewProvider(a, b)
	contacts, err := p.FetchAll(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Alice", contacts[0].Name)
}

func TestProvider_AllSourcesFailing(t *testing.T) {
	boom := errors.New("boom")
	a := &stubProvider{err: boom}
	b := &stubProvider{err: errors.New("also down")}

	p := NewProvider(a, b)
	contacts, err := p.FetchAll(context.Background(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, contacts)
}

func TestProvider_SingleProviderPassthrough(t *testing.T) {
	a := &stubProvider{contacts: []domain.Contact{
		{ID: "c2", Name: "Zed"},
		{ID: "c1", Name: "Alice"},
	}}

	p := NewProvider(a)
	contacts, err := p.FetchAll(context.Background(), true)
	require.NoError(t, err)
	// Single provider results are passed through unmerged
	require.Len(t, contacts, 2)
	assert.Equal(t, "Zed", contacts[0].Name)
}

func TestProvider_NoProviders(t *testing.T) {
	p := NewProvider()
	contacts, err := p.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
