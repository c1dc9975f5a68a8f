package driving

import (
	"context"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// QuickSearch drives the hotkey-triggered typeahead overlay.
// All session state (query, result set, selection cursor, pending
// evaluation) is scoped to one overlay lifetime: created on Open,
// discarded on Close.
type QuickSearch interface {
	// Open creates a fresh search session and shows the overlay.
	// A no-op when the overlay is already open. Opening warms the
	// directory cache in the background if it is cold.
	Open(ctx context.Context)

	// Close discards the session unconditionally, including any
	// pending scheduled evaluation, and hides the overlay.
	Close()

	// IsOpen reports whether a session is active.
	IsOpen() bool

	// SetQuery feeds a raw keystroke value. Non-blank input schedules
	// a debounced evaluation, superseding any prior pending one; blank
	// input clears the result set synchronously without any delay.
	SetQuery(raw string)

	// MoveUp moves the selection cursor up. No wraparound.
	MoveUp()

	// MoveDown moves the selection cursor down. No wraparound.
	MoveDown()

	// Hover moves the cursor directly to index i (mouse side-channel).
	// Out-of-range indices are ignored.
	Hover(i int)

	// Commit hands the selected contact's identifier to the detail
	// view and closes the overlay. A no-op when nothing is selected.
	Commit(ctx context.Context)

	// Results returns the current ordered result set.
	Results() []domain.ScoredMatch

	// Cursor returns the selection index, -1 when nothing is selected.
	Cursor() int

	// Query returns the current trimmed query.
	Query() string
}
