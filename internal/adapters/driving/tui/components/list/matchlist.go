// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// MatchList displays ranked contact matches in a navigable list.
type MatchList struct {
	matches  []domain.ScoredMatch
	selected int
	styles   *styles.Styles
	width    int
}

// NewMatchList creates a new match list component.
func NewMatchList(s *styles.Styles) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MatchList{
		matches:  nil,
		selected: -1,
		styles:   s,
		width:    60,
	}
}

// View renders the match list, one contact per row.
func (m *MatchList) View() string {
	if len(m.matches) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.matches))
	for i := range m.matches {
		lines = append(lines, m.renderRow(i, &m.matches[i]))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats a single match as name, email and organisation.
func (m *MatchList) renderRow(index int, match *domain.ScoredMatch) string {
	indicator := "  "
	if index == m.selected {
		indicator = "> "
	}

	name := match.Contact.DisplayName()
	email := match.Contact.PrimaryEmail()
	org := match.Contact.Organization

	maxNameLen := m.width / 3
	if maxNameLen < 12 {
		maxNameLen = 12
	}
	name = truncate(name, maxNameLen)

	if index == m.selected {
		row := fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, email)
		if org != "" {
			row += "  " + org
		}
		return m.styles.Selected.Render(truncate(row, m.width))
	}

	row := m.styles.Normal.Render(fmt.Sprintf("%s%-*s", indicator, maxNameLen, name))
	if email != "" {
		row += "  " + m.styles.Email.Render(truncate(email, m.width/3))
	}
	if org != "" {
		row += "  " + m.styles.Organisation.Render(truncate(org, m.width/4))
	}
	return row
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// SetMatches replaces the list contents and selection.
func (m *MatchList) SetMatches(matches []domain.ScoredMatch, selected int) {
	m.matches = matches
	m.selected = clamp(selected, matches)
}

// Matches returns the current matches.
func (m *MatchList) Matches() []domain.ScoredMatch {
	return m.matches
}

// Selected returns the index of the selected match, -1 if none.
func (m *MatchList) Selected() int {
	return m.selected
}

// SetSelected sets the selected index.
func (m *MatchList) SetSelected(index int) {
	m.selected = clamp(index, m.matches)
}

// SelectedMatch returns the currently selected match, or nil if none.
func (m *MatchList) SelectedMatch() *domain.ScoredMatch {
	if m.selected < 0 || m.selected >= len(m.matches) {
		return nil
	}
	return &m.matches[m.selected]
}

// MoveUp moves selection up.
func (m *MatchList) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown moves selection down.
func (m *MatchList) MoveDown() {
	if m.selected < len(m.matches)-1 {
		m.selected++
	}
}

// SetWidth sets the component width.
func (m *MatchList) SetWidth(width int) {
	m.width = width
}

// Count returns the number of matches.
func (m *MatchList) Count() int {
	return len(m.matches)
}

// IsEmpty returns whether the list is empty.
func (m *MatchList) IsEmpty() bool {
	return len(m.matches) == 0
}

// clamp bounds index into the match slice, mapping anything out of
// range to -1 (no selection).
func clamp(index int, matches []domain.ScoredMatch) int {
	if index < 0 || index >= len(matches) {
		return -1
	}
	return index
}
