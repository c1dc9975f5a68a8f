package driven

import "github.com/veldt-labs/rolodex-cli/internal/core/domain"

// KeyHandler consumes a keyboard event. It returns true when the event
// was handled, which suppresses default handling by the event source.
type KeyHandler func(ev domain.KeyEvent) bool

// KeyEventSource delivers process-wide keyboard events. The quick-search
// controller subscribes to it for the global hotkey and the in-overlay
// navigation keys; the core never registers with a display surface
// directly.
type KeyEventSource interface {
	// Subscribe registers a handler and returns a function that removes
	// it. Handlers are invoked in registration order until one returns
	// true.
	Subscribe(h KeyHandler) (cancel func())
}
