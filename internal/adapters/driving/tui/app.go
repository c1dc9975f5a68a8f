package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/keymap"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/messages"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/views/detail"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/views/directory"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/views/overlay"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the active keybindings.
	keymap *keymap.KeyMap

	// presenter receives overlay callbacks from the search core.
	presenter *Presenter

	// keys feeds key events to the search core before the views.
	keys *KeySource

	// directoryView is the browsable contact directory.
	directoryView *directory.View

	// detailView shows a single contact.
	detailView *detail.View

	// overlayView is the quick-search overlay.
	overlayView *overlay.View

	// currentView tracks which base view is active.
	currentView messages.ViewType

	// overlayOpen mirrors the core session state for rendering.
	overlayOpen bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. The
// presenter and key source must be the same instances wired into the
// quick-search service.
func NewApp(ports *Ports, presenter *Presenter, keys *KeySource, settings domain.AppSettings) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if presenter == nil {
		presenter = NewPresenter()
	}
	if keys == nil {
		keys = NewKeySource()
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap().WithQuickSearchKey(settings.Search.Hotkey)

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		presenter:     presenter,
		keys:          keys,
		directoryView: directory.NewView(s, km, ports.Directory, settings.Search.DirectoryDebounce),
		detailView:    detail.NewView(s),
		overlayView:   overlay.NewView(s, ports.QuickSearch),
		currentView:   messages.ViewDirectory,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.directoryView.WithContext(ctx)
	a.overlayView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("rolodex - Contacts"),
		a.directoryView.Init(),
		a.overlayView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.directoryView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		a.overlayView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		if a.overlayOpen {
			a.overlayView, cmd = a.overlayView.Update(msg)
		}
		return a, cmd

	case messages.OverlayShown:
		a.overlayOpen = true
		return a, nil

	case messages.OverlayHidden:
		a.overlayOpen = false
		return a, nil

	case messages.FocusQuery, messages.ClearQuery,
		messages.HintShown, messages.EmptyShown, messages.ResultsShown:
		a.overlayView, cmd = a.overlayView.Update(msg)
		return a, cmd

	case messages.ContactSelected:
		// Defer the locate so the overlay teardown and any in-flight
		// directory swap land first.
		id := msg.ID
		return a, tea.Tick(domain.DefaultActivateDelay, func(time.Time) tea.Msg {
			return locateContact{id: id}
		})

	case locateContact:
		return a.handleLocateContact(msg)

	case messages.DirectoryLoaded:
		a.err = msg.Err
		a.directoryView, cmd = a.directoryView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewDirectory:
		a.directoryView, cmd = a.directoryView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// handleKeyMsg routes keyboard input. The search core sees every key
// first through the key source; a consumed key never reaches a view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Global quit
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if a.keys.Dispatch(keyEventFrom(msg)) {
		return a, nil
	}

	// Overlay owns the keyboard while open
	if a.overlayOpen {
		var cmd tea.Cmd
		a.overlayView, cmd = a.overlayView.Update(msg)
		return a, cmd
	}

	switch a.currentView {
	case messages.ViewDirectory:
		if keymap.Matches(keyStr, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		var cmd tea.Cmd
		a.directoryView, cmd = a.directoryView.Update(msg)
		return a, cmd

	case messages.ViewDetail, messages.ViewHelp:
		if keymap.Matches(keyStr, a.keymap.Back) {
			a.currentView = messages.ViewDirectory
			return a, nil
		}
		if keymap.Matches(keyStr, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}
	return a, nil
}

// locateContact carries a committed contact ID to the deferred locate.
type locateContact struct {
	id string
}

// handleLocateContact resolves a committed contact ID against the
// directory and navigates to the detail view. A miss is dropped
// without retrying; the directory may have been swapped since the
// commit.
func (a *App) handleLocateContact(msg locateContact) (tea.Model, tea.Cmd) {
	for _, c := range a.ports.Directory.Contacts() {
		if c.ID == msg.id {
			contact := c
			a.detailView.SetContact(&contact)
			a.currentView = messages.ViewDetail
			return a, nil
		}
	}
	logger.Debug("committed contact %s not in directory, dropping", msg.id)
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	// The overlay is modal while open
	if a.overlayOpen {
		return a.overlayView.View()
	}

	switch a.currentView {
	case messages.ViewDirectory:
		return a.directoryView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.directoryView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Global:
  ` + a.keymap.QuickSearch.Help().Key + `      Quick search
  ctrl+c      Quit

Directory:
  (type)      Filter contacts
  ↑/↓         Navigate
  enter       Open contact
  ctrl+r      Refresh directory

Quick search:
  (type)      Search as you type
  ↑/↓         Move selection
  enter       Open selected contact
  esc         Dismiss

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	a.presenter.SetSender(p.Send)
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// OverlayOpen returns whether the quick-search overlay is visible.
func (a *App) OverlayOpen() bool {
	return a.overlayOpen
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.directoryView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.overlayView.SetDimensions(width, height)
}
