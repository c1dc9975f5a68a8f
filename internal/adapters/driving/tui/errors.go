package tui

import "errors"

// ErrMissingQuickSearch is returned when the quick-search service is not provided.
var ErrMissingQuickSearch = errors.New("tui: quick-search service is required")

// ErrMissingDirectoryService is returned when the directory service is not provided.
var ErrMissingDirectoryService = errors.New("tui: directory service is required")

// ErrMissingSettingsService is returned when the settings service is not provided.
var ErrMissingSettingsService = errors.New("tui: settings service is required")
