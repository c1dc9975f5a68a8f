package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// Ensure QuickSearchService implements the interface.
var _ driving.QuickSearch = (*QuickSearchService)(nil)

// QuickSearchConfig holds the tunable parameters of the overlay.
// Zero values fall back to the domain defaults.
type QuickSearchConfig struct {
	// Debounce is the quiet interval before a keystroke triggers an
	// evaluation. Shorter than the directory view's filter debounce.
	Debounce time.Duration

	// FocusDelay defers the focus request so the overlay can become
	// visible first.
	FocusDelay time.Duration

	// MaxResults bounds the result set.
	MaxResults int

	// Hotkey opens the overlay.
	Hotkey domain.Hotkey
}

// withDefaults fills unset fields from the domain defaults.
func (c QuickSearchConfig) withDefaults() QuickSearchConfig {
	if c.Debounce <= 0 {
		c.Debounce = domain.DefaultOverlayDebounce
	}
	if c.FocusDelay <= 0 {
		c.FocusDelay = domain.DefaultFocusDelay
	}
	if c.MaxResults <= 0 {
		c.MaxResults = domain.DefaultResultLimit
	}
	if c.Hotkey.Key == "" {
		c.Hotkey = domain.DefaultHotkey()
	}
	return c
}

// searchSession is the mutable state bundle scoped to one overlay
// lifetime: created on open, discarded unconditionally on close.
type searchSession struct {
	// id guards late callbacks: anything scheduled for a dead or
	// superseded session is a no-op on arrival.
	id uuid.UUID

	// query is the current trimmed input.
	query string

	// results is the bounded, score-ordered result set.
	results []domain.ScoredMatch

	// cursor is the selection index; -1 iff results is empty.
	cursor int

	// timer is the pending debounced evaluation, nil when none.
	timer *time.Timer

	// gen increments on every (re)schedule and clear, invalidating
	// superseded evaluations outright.
	gen uint64
}

// QuickSearchService orchestrates the hotkey-triggered typeahead
// overlay: session lifecycle, debounced evaluation with strict
// supersession, cursor navigation and the commit handoff.
//
// All failures degrade to "no results"; nothing propagates as a hard
// failure to the embedding application.
type QuickSearchService struct {
	directory driving.DirectoryService
	detail    driven.DetailView
	present   driven.PresentationPort
	cfg       QuickSearchConfig

	mu          sync.Mutex
	sess        *searchSession
	unsubscribe func()
}

// NewQuickSearchService creates the overlay controller.
func NewQuickSearchService(
	directory driving.DirectoryService,
	detail driven.DetailView,
	present driven.PresentationPort,
	cfg QuickSearchConfig,
) *QuickSearchService {
	return &QuickSearchService{
		directory: directory,
		detail:    detail,
		present:   present,
		cfg:       cfg.withDefaults(),
	}
}

// Attach subscribes the controller to a key event source for the global
// hotkey and in-overlay navigation keys. Returns the service for
// chaining.
func (s *QuickSearchService) Attach(keys driven.KeyEventSource) *QuickSearchService {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.unsubscribe = keys.Subscribe(s.handleKey)
	return s
}

// Detach removes the key subscription.
func (s *QuickSearchService) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// handleKey routes keyboard events. The hotkey opens the overlay and
// suppresses default handling; while open, navigation keys are
// consumed and everything else falls through to the query input.
func (s *QuickSearchService) handleKey(ev domain.KeyEvent) bool {
	if !s.IsOpen() {
		if s.cfg.Hotkey.Matches(ev) {
			s.Open(context.Background())
			return true
		}
		return false
	}

	switch ev.Key {
	case "esc":
		s.Close()
		return true
	case "up":
		s.MoveUp()
		return true
	case "down":
		s.MoveDown()
		return true
	case "enter":
		s.Commit(context.Background())
		return true
	default:
		return false
	}
}

// Open creates a fresh search session and shows the overlay. A no-op
// when already open. If the directory cache is cold a background warm
// is triggered (not forced).
func (s *QuickSearchService) Open(ctx context.Context) {
	s.mu.Lock()
	if s.sess != nil {
		s.mu.Unlock()
		return
	}
	sess := &searchSession{id: uuid.New(), cursor: -1}
	s.sess = sess
	s.mu.Unlock()

	logger.Section("Quick Search")
	logger.Debug("session %s opened", sess.id)

	s.present.ShowOverlay()
	s.present.ClearQueryInput()
	s.present.RenderHint()

	// Focus after the overlay has had a chance to become visible.
	time.AfterFunc(s.cfg.FocusDelay, func() {
		defer degrade("focus")
		if s.isCurrent(sess.id) {
			s.present.FocusQueryInput()
		}
	})

	if !s.directory.Loaded() {
		go s.warm(ctx, sess.id)
	}
}

// warm loads a cold directory cache in the background. A slow or failed
// fetch never blocks input; failure degrades to an empty search surface
// recoverable by reopening.
func (s *QuickSearchService) warm(ctx context.Context, id uuid.UUID) {
	defer degrade("warm")

	if _, err := s.directory.LoadOrRefresh(ctx, false); err != nil {
		logger.Warn("cache warm failed: %v", err)
		return
	}

	// Population was delayed behind the fetch: re-evaluate the current
	// query, unless a newer evaluation is already scheduled.
	s.mu.Lock()
	sess := s.sess
	if sess == nil || sess.id != id || sess.query == "" || sess.timer != nil {
		s.mu.Unlock()
		return
	}
	gen := sess.gen
	s.mu.Unlock()
	s.evaluate(id, gen)
}

// Close discards the session unconditionally, cancelling any pending
// scheduled evaluation, and hides the overlay.
func (s *QuickSearchService) Close() {
	s.mu.Lock()
	if s.sess == nil {
		s.mu.Unlock()
		return
	}
	logger.Debug("session %s closed", s.sess.id)
	s.discardLocked()
	s.mu.Unlock()

	s.present.HideOverlay()
}

// discardLocked drops the session. Callers hold s.mu.
func (s *QuickSearchService) discardLocked() {
	if s.sess.timer != nil {
		s.sess.timer.Stop()
	}
	s.sess = nil
}

// IsOpen reports whether a session is active.
func (s *QuickSearchService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess != nil
}

// isCurrent reports whether id identifies the live session.
func (s *QuickSearchService) isCurrent(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess != nil && s.sess.id == id
}

// SetQuery feeds a raw keystroke value. Blank input clears the result
// set synchronously with no debounce delay. Non-blank input supersedes
// any pending evaluation and schedules a new one after the quiet
// interval; only the most recently scheduled evaluation may execute.
func (s *QuickSearchService) SetQuery(raw string) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil {
		s.mu.Unlock()
		return
	}

	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	sess.gen++
	sess.query = strings.TrimSpace(raw)

	if sess.query == "" {
		sess.results = nil
		sess.cursor = -1
		s.mu.Unlock()
		s.present.RenderHint()
		return
	}

	id, gen := sess.id, sess.gen
	sess.timer = time.AfterFunc(s.cfg.Debounce, func() {
		defer degrade("evaluate")
		s.evaluate(id, gen)
	})
	s.mu.Unlock()
}

// evaluate runs one scoring pass against the directory cache snapshot.
// Superseded or dead-session evaluations return without effect, so the
// visible result set always reflects the latest input, never a stale
// one resolving out of order.
func (s *QuickSearchService) evaluate(id uuid.UUID, gen uint64) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil || sess.id != id || sess.gen != gen {
		s.mu.Unlock()
		return
	}
	sess.timer = nil

	query := sess.query
	contacts := s.directory.Contacts()
	results := domain.RankContacts(contacts, query, s.cfg.MaxResults)

	sess.results = results
	if len(results) > 0 {
		sess.cursor = 0
	} else {
		sess.cursor = -1
	}
	cursor := sess.cursor
	s.mu.Unlock()

	logger.Debug("query %q: %d of %d contacts matched", query, len(results), len(contacts))

	if len(results) == 0 {
		s.present.RenderEmpty(query)
		return
	}
	s.present.RenderResults(results, cursor)
}

// MoveUp moves the selection cursor up. No wraparound; a no-op at the
// first result and with an empty result set.
func (s *QuickSearchService) MoveUp() {
	s.moveCursor(-1)
}

// MoveDown moves the selection cursor down. No wraparound.
func (s *QuickSearchService) MoveDown() {
	s.moveCursor(1)
}

func (s *QuickSearchService) moveCursor(delta int) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil || len(sess.results) == 0 {
		s.mu.Unlock()
		return
	}
	next := sess.cursor + delta
	if next < 0 {
		next = 0
	}
	if max := len(sess.results) - 1; next > max {
		next = max
	}
	sess.cursor = next
	results, cursor := sess.results, sess.cursor
	s.mu.Unlock()

	s.present.RenderResults(results, cursor)
}

// Hover moves the cursor directly to index i, independent of the
// keyboard. Out-of-range indices are ignored.
func (s *QuickSearchService) Hover(i int) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil || i < 0 || i >= len(sess.results) {
		s.mu.Unlock()
		return
	}
	sess.cursor = i
	results, cursor := sess.results, sess.cursor
	s.mu.Unlock()

	s.present.RenderResults(results, cursor)
}

// Commit hands the selected contact's identifier to the detail view
// and closes the overlay. The handoff is optimistic and fire-and-forget.
// A no-op when nothing is selected.
func (s *QuickSearchService) Commit(ctx context.Context) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil || sess.cursor < 0 || sess.cursor >= len(sess.results) {
		s.mu.Unlock()
		return
	}
	contact := sess.results[sess.cursor].Contact
	s.discardLocked()
	s.mu.Unlock()

	s.present.HideOverlay()

	logger.Debug("committed contact %s", contact.ID)
	s.detail.OpenAndSelect(ctx, contact.ID)
}

// Results returns the current ordered result set.
func (s *QuickSearchService) Results() []domain.ScoredMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil
	}
	return s.sess.results
}

// Cursor returns the selection index, -1 when nothing is selected.
func (s *QuickSearchService) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return -1
	}
	return s.sess.cursor
}

// Query returns the current trimmed query.
func (s *QuickSearchService) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.query
}

// degrade recovers a panic from an asynchronous boundary callback.
// Overlay failures must never propagate to the embedding application.
func degrade(where string) {
	if r := recover(); r != nil {
		logger.Warn("recovered in %s: %v", where, r)
	}
}
