package mcp

import (
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory provides the contact collection.
	Directory driving.DirectoryService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	return nil
}
