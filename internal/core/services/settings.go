package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyOverlayDebounce   = "search.overlay_debounce_ms"
	keyDirectoryDebounce = "search.directory_debounce_ms"
	keyMaxResults        = "search.max_results"
	keyHotkey            = "search.hotkey"
	keyContactsFile      = "directory.contacts_file"
	keyGitHubOrg         = "directory.github_org"
	keyGitHubToken       = "directory.github_token"
	keyGoogleEnabled     = "directory.google_enabled"
)

// SettingsService manages application settings over a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves the current application settings, falling back to
// defaults for anything unset.
func (s *SettingsService) Get(_ context.Context) (domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	settings.Search.OverlayDebounce = s.getDuration(keyOverlayDebounce, settings.Search.OverlayDebounce)
	settings.Search.DirectoryDebounce = s.getDuration(keyDirectoryDebounce, settings.Search.DirectoryDebounce)
	settings.Search.MaxResults = s.getInt(keyMaxResults, settings.Search.MaxResults)
	settings.Search.Hotkey = s.getString(keyHotkey, settings.Search.Hotkey)

	settings.Directory.ContactsFile = s.configStore.GetString(keyContactsFile)
	settings.Directory.GitHubOrg = s.configStore.GetString(keyGitHubOrg)
	settings.Directory.GitHubToken = s.configStore.GetString(keyGitHubToken)
	settings.Directory.GoogleEnabled = s.configStore.GetBool(keyGoogleEnabled)

	if err := settings.Validate(); err != nil {
		return domain.AppSettings{}, fmt.Errorf("stored settings invalid: %w", err)
	}
	return settings, nil
}

// Update validates and persists new settings.
func (s *SettingsService) Update(_ context.Context, settings domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	pairs := []struct {
		key   string
		value any
	}{
		{keyOverlayDebounce, settings.Search.OverlayDebounce.Milliseconds()},
		{keyDirectoryDebounce, settings.Search.DirectoryDebounce.Milliseconds()},
		{keyMaxResults, settings.Search.MaxResults},
		{keyHotkey, settings.Search.Hotkey},
		{keyContactsFile, settings.Directory.ContactsFile},
		{keyGitHubOrg, settings.Directory.GitHubOrg},
		{keyGitHubToken, settings.Directory.GitHubToken},
		{keyGoogleEnabled, settings.Directory.GoogleEnabled},
	}
	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}
	return nil
}

// getDuration reads a millisecond count, keeping the fallback for
// missing or non-positive values.
func (s *SettingsService) getDuration(key string, fallback time.Duration) time.Duration {
	if ms := s.configStore.GetInt(key); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}
