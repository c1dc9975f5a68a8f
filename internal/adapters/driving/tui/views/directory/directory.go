// Package directory provides the browsable contact directory view.
// Unlike the overlay it lists the whole directory, with an optional
// filter evaluated on a slower debounce.
package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/components/input"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/components/list"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/keymap"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/messages"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
)

// filterElapsed fires when the filter debounce interval passes.
type filterElapsed struct {
	gen uint64
}

// View is the contact directory view.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	filter *input.QueryInput
	list   *list.MatchList

	directory driving.DirectoryService
	ctx       context.Context

	contacts []domain.Contact
	debounce time.Duration
	gen      uint64

	width  int
	height int
	err    error
}

// NewView creates a new directory view.
func NewView(s *styles.Styles, km *keymap.KeyMap, directory driving.DirectoryService, debounce time.Duration) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if debounce <= 0 {
		debounce = domain.DefaultDirectoryDebounce
	}

	filter := input.NewQueryInput(s)
	filter.Focus()

	return &View{
		styles:    s,
		keymap:    km,
		filter:    filter,
		list:      list.NewMatchList(s),
		directory: directory,
		ctx:       context.Background(),
		debounce:  debounce,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for directory loads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the directory.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.filter.Init(), v.loadCmd(false))
}

// loadCmd fetches the directory off the update loop.
func (v *View) loadCmd(forceRefresh bool) tea.Cmd {
	return func() tea.Msg {
		contacts, err := v.directory.LoadOrRefresh(v.ctx, forceRefresh)
		return messages.DirectoryLoaded{Contacts: contacts, Err: err}
	}
}

// Update handles messages for the directory view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DirectoryLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.contacts = msg.Contacts
			v.applyFilter()
		}
		return v, nil

	case filterElapsed:
		// A newer keystroke supersedes this evaluation
		if msg.gen == v.gen {
			v.applyFilter()
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if keyStr == "up" {
			v.list.MoveUp()
			return v, nil
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if keyStr == "down" {
			v.list.MoveDown()
			return v, nil
		}
	case keymap.Matches(keyStr, v.keymap.Select):
		if m := v.list.SelectedMatch(); m != nil {
			id := m.Contact.ID
			return v, func() tea.Msg { return messages.ContactSelected{ID: id} }
		}
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.loadCmd(true)
	}

	// Everything else goes to the filter input
	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)

	if v.filter.Value() != before {
		v.gen++
		gen := v.gen
		if strings.TrimSpace(v.filter.Value()) == "" {
			// Clearing the filter shows the whole directory at once
			v.applyFilter()
			return v, cmd
		}
		debounceCmd := tea.Tick(v.debounce, func(time.Time) tea.Msg {
			return filterElapsed{gen: gen}
		})
		return v, tea.Batch(cmd, debounceCmd)
	}
	return v, cmd
}

// applyFilter recomputes the visible rows from the current filter.
func (v *View) applyFilter() {
	query := strings.TrimSpace(v.filter.Value())
	if query == "" {
		matches := make([]domain.ScoredMatch, 0, len(v.contacts))
		for _, c := range v.contacts {
			matches = append(matches, domain.ScoredMatch{Contact: c})
		}
		v.setMatches(matches)
		return
	}
	v.setMatches(domain.RankContacts(v.contacts, query, len(v.contacts)))
}

// setMatches replaces rows, preserving a valid selection.
func (v *View) setMatches(matches []domain.ScoredMatch) {
	selected := -1
	if len(matches) > 0 {
		selected = 0
	}
	v.list.SetMatches(matches, selected)
}

// View renders the directory view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Contacts"))
	b.WriteString("\n\n")
	b.WriteString(v.filter.View())
	b.WriteString("\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Directory unavailable: " + v.err.Error()))
	case len(v.contacts) == 0:
		b.WriteString(v.styles.Muted.Render("No contacts loaded"))
	case v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("No contacts match the filter"))
	default:
		b.WriteString(v.list.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render(fmt.Sprintf("%d of %d contacts", v.list.Count(), len(v.contacts))))
	}

	return b.String()
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width / 2)
	v.list.SetWidth(width - 4)
}

// Selected returns the selected match, or nil.
func (v *View) Selected() *domain.ScoredMatch {
	return v.list.SelectedMatch()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Count returns the number of visible rows.
func (v *View) Count() int {
	return v.list.Count()
}
