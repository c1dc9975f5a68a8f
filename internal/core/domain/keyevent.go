package domain

import "strings"

// Modifier is a bitmask of modifier keys held during a key event.
type Modifier uint8

// Modifier flags.
const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has returns true if all the given flags are set.
func (m Modifier) Has(flags Modifier) bool {
	return m&flags == flags
}

// KeyEvent is a single keyboard event delivered by a KeyEventSource.
// Key is the lowercase key name ("a", "enter", "esc", "up", "down").
type KeyEvent struct {
	Key       string
	Modifiers Modifier
}

// Hotkey is a dedicated modifier+key combination that opens the
// quick-search overlay.
type Hotkey struct {
	Key       string
	Modifiers Modifier
}

// DefaultHotkey is the combination that opens the overlay.
func DefaultHotkey() Hotkey {
	return Hotkey{Key: "k", Modifiers: ModCtrl}
}

// Matches reports whether the event is exactly this hotkey.
func (h Hotkey) Matches(ev KeyEvent) bool {
	return ev.Modifiers == h.Modifiers && strings.EqualFold(ev.Key, h.Key)
}

// String returns a human-readable form such as "ctrl+k".
func (h Hotkey) String() string {
	var parts []string
	if h.Modifiers.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if h.Modifiers.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if h.Modifiers.Has(ModShift) {
		parts = append(parts, "shift")
	}
	parts = append(parts, strings.ToLower(h.Key))
	return strings.Join(parts, "+")
}

// ParseHotkey parses a combination such as "ctrl+k" or "alt+shift+p".
// The last segment is the key; everything before it must be a modifier.
func ParseHotkey(s string) (Hotkey, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Hotkey{}, ErrInvalidInput
	}

	h := Hotkey{Key: parts[len(parts)-1]}
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl":
			h.Modifiers |= ModCtrl
		case "alt":
			h.Modifiers |= ModAlt
		case "shift":
			h.Modifiers |= ModShift
		default:
			return Hotkey{}, ErrInvalidInput
		}
	}
	return h, nil
}
