package driving

import (
	"context"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings, falling back to defaults for
	// anything unset.
	Get(ctx context.Context) (domain.AppSettings, error)

	// Update validates and persists new settings.
	Update(ctx context.Context, settings domain.AppSettings) error
}
