package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/messages"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// Ensure adapters implement their driven ports.
var (
	_ driven.PresentationPort = (*Presenter)(nil)
	_ driven.DetailView       = (*Presenter)(nil)
	_ driven.KeyEventSource   = (*KeySource)(nil)
)

// Presenter bridges the quick-search core to the Bubbletea program.
// Core callbacks arrive on arbitrary goroutines; the presenter turns
// them into messages delivered through the program's mailbox so all
// model updates stay on the Bubbletea loop.
type Presenter struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewPresenter creates a presenter with no sender attached. Calls made
// before SetSender are dropped.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// SetSender attaches the message sender, normally program.Send.
func (p *Presenter) SetSender(send func(tea.Msg)) {
	p.mu.Lock()
	p.send = send
	p.mu.Unlock()
}

// post delivers a message to the program if a sender is attached.
func (p *Presenter) post(msg tea.Msg) {
	p.mu.RLock()
	send := p.send
	p.mu.RUnlock()

	if send == nil {
		logger.Debug("presenter: dropping %T, no sender attached", msg)
		return
	}
	send(msg)
}

// ShowOverlay makes the quick-search overlay visible.
func (p *Presenter) ShowOverlay() {
	p.post(messages.OverlayShown{})
}

// HideOverlay dismisses the quick-search overlay.
func (p *Presenter) HideOverlay() {
	p.post(messages.OverlayHidden{})
}

// FocusQueryInput places keyboard focus in the overlay query input.
func (p *Presenter) FocusQueryInput() {
	p.post(messages.FocusQuery{})
}

// ClearQueryInput empties the overlay query input.
func (p *Presenter) ClearQueryInput() {
	p.post(messages.ClearQuery{})
}

// RenderHint shows the idle guidance text in the overlay.
func (p *Presenter) RenderHint() {
	p.post(messages.HintShown{})
}

// RenderEmpty shows the no-matches state for the given query.
func (p *Presenter) RenderEmpty(query string) {
	p.post(messages.EmptyShown{Query: query})
}

// RenderResults shows ranked matches with the given selection.
func (p *Presenter) RenderResults(matches []domain.ScoredMatch, selected int) {
	p.post(messages.ResultsShown{Matches: matches, Selected: selected})
}

// OpenAndSelect navigates the main UI to the given contact. Delivery
// is best effort; a closed program simply drops the message.
func (p *Presenter) OpenAndSelect(_ context.Context, id string) {
	p.post(messages.ContactSelected{ID: id})
}

// KeySource fans key events out to subscribed handlers. The app feeds
// it from the Bubbletea update loop; the quick-search core subscribes
// to observe keys before the views do.
type KeySource struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]driven.KeyHandler
}

// NewKeySource creates an empty key source.
func NewKeySource() *KeySource {
	return &KeySource{handlers: make(map[int]driven.KeyHandler)}
}

// Subscribe registers a handler. The returned function cancels the
// subscription.
func (k *KeySource) Subscribe(h driven.KeyHandler) func() {
	k.mu.Lock()
	id := k.nextID
	k.nextID++
	k.handlers[id] = h
	k.mu.Unlock()

	return func() {
		k.mu.Lock()
		delete(k.handlers, id)
		k.mu.Unlock()
	}
}

// Dispatch offers the event to handlers in subscription order.
// Returns true if any handler consumed it.
func (k *KeySource) Dispatch(ev domain.KeyEvent) bool {
	k.mu.Lock()
	handlers := make([]driven.KeyHandler, 0, len(k.handlers))
	for id := 0; id < k.nextID; id++ {
		if h, ok := k.handlers[id]; ok {
			handlers = append(handlers, h)
		}
	}
	k.mu.Unlock()

	for _, h := range handlers {
		if h(ev) {
			return true
		}
	}
	return false
}

// keyEventFrom translates a Bubbletea key message into a key event.
func keyEventFrom(msg tea.KeyMsg) domain.KeyEvent {
	hk, err := domain.ParseHotkey(msg.String())
	if err != nil {
		return domain.KeyEvent{Key: msg.String()}
	}
	return domain.KeyEvent{Key: hk.Key, Modifiers: hk.Modifiers}
}
