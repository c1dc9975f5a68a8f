package domain

import (
	"fmt"
	"time"
)

// Timing defaults. The overlay debounce is shorter than the directory
// view's filter debounce.
const (
	DefaultOverlayDebounce   = 150 * time.Millisecond
	DefaultDirectoryDebounce = 300 * time.Millisecond
	DefaultFocusDelay        = 50 * time.Millisecond
	DefaultActivateDelay     = 100 * time.Millisecond
)

// SearchSettings holds quick-search behaviour configuration.
type SearchSettings struct {
	// OverlayDebounce is the quiet interval before an overlay keystroke
	// triggers an evaluation.
	OverlayDebounce time.Duration

	// DirectoryDebounce is the quiet interval for the full directory
	// view's filter input.
	DirectoryDebounce time.Duration

	// MaxResults bounds the overlay result set.
	MaxResults int

	// Hotkey is the combination that opens the overlay.
	Hotkey string
}

// DirectorySettings holds directory source configuration.
type DirectorySettings struct {
	// ContactsFile is an optional path to a JSON contacts file.
	ContactsFile string

	// GitHubOrg is an optional GitHub organisation to list members from.
	GitHubOrg string

	// GitHubToken authenticates GitHub API calls.
	GitHubToken string

	// GoogleEnabled enables the Google People source.
	GoogleEnabled bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search configures quick-search behaviour.
	Search SearchSettings

	// Directory configures contact sources.
	Directory DirectorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			OverlayDebounce:   DefaultOverlayDebounce,
			DirectoryDebounce: DefaultDirectoryDebounce,
			MaxResults:        DefaultResultLimit,
			Hotkey:            DefaultHotkey().String(),
		},
	}
}

// Validate checks the settings for internal consistency.
func (s AppSettings) Validate() error {
	if s.Search.OverlayDebounce <= 0 {
		return fmt.Errorf("%w: overlay debounce must be positive", ErrInvalidInput)
	}
	if s.Search.DirectoryDebounce < s.Search.OverlayDebounce {
		return fmt.Errorf("%w: directory debounce must not be shorter than overlay debounce", ErrInvalidInput)
	}
	if s.Search.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive", ErrInvalidInput)
	}
	hotkey, err := ParseHotkey(s.Search.Hotkey)
	if err != nil {
		return fmt.Errorf("%w: unparseable hotkey %q", ErrInvalidInput, s.Search.Hotkey)
	}
	if hotkey.Modifiers == ModNone {
		// A bare key would open the overlay on plain typing.
		return fmt.Errorf("%w: hotkey %q needs a modifier", ErrInvalidInput, s.Search.Hotkey)
	}
	return nil
}
