// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDirectory is the browsable contact directory.
	ViewDirectory ViewType = iota
	// ViewDetail shows a single contact.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDirectory:
		return "directory"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// OverlayShown is sent when the quick-search overlay opens.
type OverlayShown struct{}

// OverlayHidden is sent when the quick-search overlay closes.
type OverlayHidden struct{}

// FocusQuery requests focus on the overlay query input.
type FocusQuery struct{}

// ClearQuery requests the overlay query input be emptied.
type ClearQuery struct{}

// HintShown replaces the overlay result area with the idle hint.
type HintShown struct{}

// EmptyShown replaces the overlay result area with the no-matches state.
type EmptyShown struct {
	Query string
}

// ResultsShown carries ranked matches to the overlay result area.
type ResultsShown struct {
	Matches  []domain.ScoredMatch
	Selected int
}

// ContactSelected signals a contact was committed for detail display.
type ContactSelected struct {
	ID string
}

// DirectoryLoaded carries the contact directory from the service.
type DirectoryLoaded struct {
	Contacts []domain.Contact
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
