package gridview

import "github.com/charmbracelet/lipgloss"

// Styles provides the lipgloss styles the slot renderers draw with.
// Zero-value styles render plain text, so a partially-filled Styles works.
type Styles struct {
	Header      lipgloss.Style // column title line
	Cell        lipgloss.Style // default cell text
	SelectedRow lipgloss.Style // rows in the selection set
	CursorRow   lipgloss.Style // the keyboard cursor row
	Footer      lipgloss.Style // summary line
	FilterInput lipgloss.Style // filter input line
	Muted       lipgloss.Style // de-emphasized chrome (scroll hints, counts)

	SortAsc  string // header indicator for ascending sort
	SortDesc string // header indicator for descending sort
	Selected string // row marker for selected rows
}

// DefaultStyles is a dark-terminal default.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Cell:        lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		CursorRow:   lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FilterInput: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		SortAsc:  "▲",
		SortDesc: "▼",
		Selected: "✓",
	}
}
