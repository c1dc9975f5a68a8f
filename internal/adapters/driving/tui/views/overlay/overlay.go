// Package overlay provides the quick-search overlay view. The overlay
// floats above whichever view is active, owns the query input and
// renders the ranked matches coming back from the search core.
package overlay

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/components/input"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/components/list"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/messages"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
)

// mode is the overlay result area state.
type mode int

const (
	modeHint mode = iota
	modeEmpty
	modeResults
)

// panelWidth is the preferred overlay panel width.
const panelWidth = 64

// View is the quick-search overlay.
type View struct {
	styles *styles.Styles
	input  *input.QueryInput
	list   *list.MatchList

	quickSearch driving.QuickSearch
	ctx         context.Context

	mode       mode
	emptyQuery string

	width  int
	height int

	// Geometry of the last render, used for mouse hit-testing.
	panelX      int
	panelY      int
	panelW      int
	panelH      int
	firstRowY   int
	rowsVisible int
}

// NewView creates a new overlay view.
func NewView(s *styles.Styles, quickSearch driving.QuickSearch) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	in := input.NewQueryInput(s)
	in.SetWidth(panelWidth - 4)

	ml := list.NewMatchList(s)
	ml.SetWidth(panelWidth - 4)

	return &View{
		styles:      s,
		input:       in,
		list:        ml,
		quickSearch: quickSearch,
		ctx:         context.Background(),
		mode:        modeHint,
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for commit calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the overlay.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles presenter messages and keyboard input.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.FocusQuery:
		return v, v.input.Focus()

	case messages.ClearQuery:
		v.input.Reset()
		return v, nil

	case messages.HintShown:
		v.mode = modeHint
		v.list.SetMatches(nil, -1)
		return v, nil

	case messages.EmptyShown:
		v.mode = modeEmpty
		v.emptyQuery = msg.Query
		v.list.SetMatches(nil, -1)
		return v, nil

	case messages.ResultsShown:
		v.mode = modeResults
		v.list.SetMatches(msg.Matches, msg.Selected)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		v.handleMouseMsg(msg)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg forwards typing to the input and mirrors the resulting
// query into the search core. Navigation keys never reach here; the
// core consumes them through its key subscription.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	before := v.input.Value()

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)

	if v.input.Value() != before && v.quickSearch != nil {
		v.quickSearch.SetQuery(v.input.Value())
	}
	return v, cmd
}

// handleMouseMsg implements hover tracking, click-to-commit and
// dismiss on outside click.
func (v *View) handleMouseMsg(msg tea.MouseMsg) {
	if v.quickSearch == nil {
		return
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if row, ok := v.HitTest(msg.X, msg.Y); ok {
			v.quickSearch.Hover(row)
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if row, ok := v.HitTest(msg.X, msg.Y); ok {
			v.quickSearch.Hover(row)
			v.quickSearch.Commit(v.ctx)
			return
		}
		if !v.Contains(msg.X, msg.Y) {
			v.quickSearch.Close()
		}

	case tea.MouseActionRelease:
	}
}

// View renders the overlay panel centred in the terminal.
func (v *View) View() string {
	pw := panelWidth
	if pw > v.width-4 {
		pw = v.width - 4
	}
	if pw < 24 {
		pw = 24
	}
	v.input.SetWidth(pw - 4)
	v.list.SetWidth(pw - 4)

	body := v.input.View() + "\n"
	switch v.mode {
	case modeHint:
		body += v.styles.Hint.Render("Start typing to search your contacts")
	case modeEmpty:
		body += v.styles.Muted.Render("No contacts match \"" + v.emptyQuery + "\"")
	case modeResults:
		body += v.list.View()
	}

	panel := v.styles.Overlay.Width(pw).Render(body)

	// Record geometry for hit-testing before centring
	v.panelW = lipgloss.Width(panel)
	v.panelH = lipgloss.Height(panel)
	v.panelX = (v.width - v.panelW) / 2
	v.panelY = (v.height - v.panelH) / 2
	// Border, then the input's two lines (text and underline)
	v.firstRowY = v.panelY + 1 + 2
	v.rowsVisible = v.list.Count()

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}

// Contains reports whether the point lies inside the overlay panel.
func (v *View) Contains(x, y int) bool {
	return x >= v.panelX && x < v.panelX+v.panelW &&
		y >= v.panelY && y < v.panelY+v.panelH
}

// HitTest maps a screen coordinate to a result row index. Returns
// false when the point is outside the result rows.
func (v *View) HitTest(x, y int) (int, bool) {
	if v.mode != modeResults || !v.Contains(x, y) {
		return 0, false
	}
	row := y - v.firstRowY
	if row < 0 || row >= v.rowsVisible {
		return 0, false
	}
	return row, true
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// Matches returns the currently rendered matches.
func (v *View) Matches() []domain.ScoredMatch {
	return v.list.Matches()
}

// Selected returns the rendered selection index, -1 if none.
func (v *View) Selected() int {
	return v.list.Selected()
}
