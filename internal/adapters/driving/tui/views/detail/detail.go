// Package detail provides the single-contact detail view, the landing
// target of a quick-search commit.
package detail

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// View shows the fields of one contact.
type View struct {
	styles  *styles.Styles
	contact *domain.Contact

	width  int
	height int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(_ tea.Msg) (*View, tea.Cmd) {
	return v, nil
}

// SetContact sets the contact to display.
func (v *View) SetContact(contact *domain.Contact) {
	v.contact = contact
}

// Contact returns the displayed contact, or nil.
func (v *View) Contact() *domain.Contact {
	return v.contact
}

// View renders the contact detail.
func (v *View) View() string {
	if v.contact == nil {
		return v.styles.Muted.Render("No contact selected")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.contact.DisplayName()))
	b.WriteString("\n\n")

	if len(v.contact.Emails) > 0 {
		b.WriteString(v.styles.Muted.Render("Email"))
		b.WriteString("\n")
		for _, email := range v.contact.Emails {
			b.WriteString("  " + v.styles.Email.Render(email) + "\n")
		}
		b.WriteString("\n")
	}

	if v.contact.Organization != "" {
		b.WriteString(v.styles.Muted.Render("Organisation"))
		b.WriteString("\n  " + v.styles.Normal.Render(v.contact.Organization) + "\n\n")
	}

	if v.contact.PhotoURL != "" {
		b.WriteString(v.styles.Muted.Render("Photo"))
		b.WriteString("\n  " + v.styles.Normal.Render(v.contact.PhotoURL) + "\n\n")
	}

	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
