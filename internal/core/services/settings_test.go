package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.data[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.data[key].(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Watch(func()) (func(), error) {
	return func() {}, nil
}
func (m *mockConfigStore) Path() string { return "" }

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore())

	settings, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := newMockConfigStore()
	store.data["search.overlay_debounce_ms"] = int64(80)
	store.data["search.directory_debounce_ms"] = int64(400)
	store.data["search.max_results"] = int64(5)
	store.data["search.hotkey"] = "alt+p"
	store.data["directory.github_org"] = "veldt-labs"
	svc := NewSettingsService(store)

	settings, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 80*time.Millisecond, settings.Search.OverlayDebounce)
	assert.Equal(t, 400*time.Millisecond, settings.Search.DirectoryDebounce)
	assert.Equal(t, 5, settings.Search.MaxResults)
	assert.Equal(t, "alt+p", settings.Search.Hotkey)
	assert.Equal(t, "veldt-labs", settings.Directory.GitHubOrg)
}

func TestSettingsService_Get_InvalidStoredSettings(t *testing.T) {
	store := newMockConfigStore()
	// Directory debounce shorter than overlay debounce is inconsistent.
	store.data["search.overlay_debounce_ms"] = int64(500)
	store.data["search.directory_debounce_ms"] = int64(100)
	svc := NewSettingsService(store)

	_, err := svc.Get(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Update_RoundTrips(t *testing.T) {
	store := newMockConfigStore()
	svc := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Search.MaxResults = 7
	settings.Search.Hotkey = "ctrl+shift+k"
	settings.Directory.ContactsFile = "/tmp/contacts.json"

	require.NoError(t, svc.Update(context.Background(), settings))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got.Search.MaxResults)
	assert.Equal(t, "ctrl+shift+k", got.Search.Hotkey)
	assert.Equal(t, "/tmp/contacts.json", got.Directory.ContactsFile)
}

func TestSettingsService_Update_RejectsInvalid(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Search.MaxResults = 0

	err := svc.Update(context.Background(), settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
