package driven

import "github.com/veldt-labs/rolodex-cli/internal/core/domain"

// PresentationPort is the complete set of UI-facing effects the
// quick-search core performs. The core holds no display state of its
// own; it only invokes this port.
//
// Implementations must be safe to call from timer and fetch callbacks.
type PresentationPort interface {
	// ShowOverlay makes the search overlay visible.
	ShowOverlay()

	// HideOverlay hides the search overlay.
	HideOverlay()

	// FocusQueryInput moves input focus to the query field.
	FocusQueryInput()

	// ClearQueryInput empties the query field.
	ClearQueryInput()

	// RenderHint shows the static type-to-search hint for a blank query.
	RenderHint()

	// RenderEmpty shows the computed no-matches state for a query.
	RenderEmpty(query string)

	// RenderResults shows the ranked result list with the selection
	// cursor at selected (-1 means no selection).
	RenderResults(matches []domain.ScoredMatch, selected int)
}
