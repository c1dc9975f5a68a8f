package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// mockProvider implements driven.DirectoryProvider for testing.
type mockProvider struct {
	mu       sync.Mutex
	contacts []domain.Contact
	err      error
	calls    int
}

func (m *mockProvider) FetchAll(_ context.Context, _ bool) ([]domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.contacts, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockProvider) set(contacts []domain.Contact, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = contacts
	m.err = err
}

func testContacts() []domain.Contact {
	return []domain.Contact{
		{ID: "1", Name: "Alice Smith", Emails: []string{"alice@x.com"}},
		{ID: "2", Name: "Bob Alicecorp", Organization: "Alice Corp"},
	}
}

func TestDirectoryService_LoadOrRefresh_ColdCache(t *testing.T) {
	provider := &mockProvider{contacts: testContacts()}
	svc := NewDirectoryService(provider)

	require.False(t, svc.Loaded())

	contacts, err := svc.LoadOrRefresh(context.Background(), false)

	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.True(t, svc.Loaded())
	assert.Equal(t, 1, provider.callCount())
}

func TestDirectoryService_LoadOrRefresh_WarmCacheIsNoOp(t *testing.T) {
	provider := &mockProvider{contacts: testContacts()}
	svc := NewDirectoryService(provider)

	_, err := svc.LoadOrRefresh(context.Background(), false)
	require.NoError(t, err)

	contacts, err := svc.LoadOrRefresh(context.Background(), false)

	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, 1, provider.callCount(), "warm cache must not call the provider")
}

func TestDirectoryService_LoadOrRefresh_ForceRefetches(t *testing.T) {
	provider := &mockProvider{contacts: testContacts()}
	svc := NewDirectoryService(provider)

	_, err := svc.LoadOrRefresh(context.Background(), false)
	require.NoError(t, err)

	provider.set([]domain.Contact{{ID: "3", Name: "Carol"}}, nil)
	contacts, err := svc.LoadOrRefresh(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Carol", contacts[0].Name)
	assert.Equal(t, 2, provider.callCount())
}

func TestDirectoryService_LoadOrRefresh_FailureRetainsPrevious(t *testing.T) {
	provider := &mockProvider{contacts: testContacts()}
	svc := NewDirectoryService(provider)

	_, err := svc.LoadOrRefresh(context.Background(), false)
	require.NoError(t, err)

	provider.set(nil, errors.New("network down"))
	_, err = svc.LoadOrRefresh(context.Background(), true)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	// Previous collection retained unchanged.
	assert.Len(t, svc.Contacts(), 2)
	assert.True(t, svc.Loaded())
}

func TestDirectoryService_LoadOrRefresh_InitialFailure(t *testing.T) {
	provider := &mockProvider{err: errors.New("boom")}
	svc := NewDirectoryService(provider)

	_, err := svc.LoadOrRefresh(context.Background(), false)

	require.Error(t, err)
	assert.False(t, svc.Loaded())
	assert.Empty(t, svc.Contacts())

	// A later successful refresh recovers.
	provider.set(testContacts(), nil)
	contacts, err := svc.LoadOrRefresh(context.Background(), false)

	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

// blockingProvider holds non-forced fetches open until released,
// recording the force flag of every call.
type blockingProvider struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	forces  []bool
}

func (p *blockingProvider) FetchAll(_ context.Context, forceRefresh bool) ([]domain.Contact, error) {
	p.mu.Lock()
	p.forces = append(p.forces, forceRefresh)
	first := len(p.forces) == 1
	p.mu.Unlock()
	if first {
		close(p.started)
	}
	if !forceRefresh {
		<-p.release
	}
	return []domain.Contact{{ID: "1", Name: "Alice Smith"}}, nil
}

func TestDirectoryService_ForcedRefreshNotCollapsedIntoWarmLoad(t *testing.T) {
	provider := &blockingProvider{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewDirectoryService(provider)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.LoadOrRefresh(context.Background(), false)
	}()
	<-provider.started

	// The cold load is still in flight; a forced refresh must reach
	// the provider itself rather than being handed the cold load's
	// result. It would block forever here if the two were collapsed.
	contacts, err := svc.LoadOrRefresh(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, contacts, 1)

	close(provider.release)
	wg.Wait()

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.forces, 2)
	assert.Contains(t, provider.forces, true)
}

func TestDirectoryService_Contacts_SnapshotSurvivesRefresh(t *testing.T) {
	provider := &mockProvider{contacts: testContacts()}
	svc := NewDirectoryService(provider)

	_, err := svc.LoadOrRefresh(context.Background(), false)
	require.NoError(t, err)
	before := svc.Contacts()

	provider.set([]domain.Contact{{ID: "9", Name: "Zed"}}, nil)
	_, err = svc.LoadOrRefresh(context.Background(), true)
	require.NoError(t, err)

	// The earlier snapshot still reads the pre-refresh collection.
	require.Len(t, before, 2)
	assert.Equal(t, "Alice Smith", before[0].Name)
	assert.Equal(t, "Zed", svc.Contacts()[0].Name)
}
