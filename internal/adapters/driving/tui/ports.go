// Package tui provides an interactive terminal user interface for rolodex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// QuickSearch drives the hotkey-triggered search overlay.
	QuickSearch driving.QuickSearch

	// Directory provides the contact collection.
	Directory driving.DirectoryService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	quickSearch driving.QuickSearch,
	directory driving.DirectoryService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		QuickSearch: quickSearch,
		Directory:   directory,
		Settings:    settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.QuickSearch == nil {
		return ErrMissingQuickSearch
	}
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
