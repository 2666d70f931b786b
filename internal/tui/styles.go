package tui

import "github.com/charmbracelet/lipgloss"

// Status is the display state of one record row.
type Status string

const (
	StatusPending   Status = "pending"
	StatusLoading   Status = "loading"
	StatusVCard     Status = "vcard"
	StatusEncoding  Status = "encoding"
	StatusRendering Status = "rendering"
	StatusGenerated Status = "generated"
	StatusFailed    Status = "failed"
)

// Active reports whether a record is part way through the pipeline.
func (s Status) Active() bool {
	switch s {
	case StatusLoading, StatusVCard, StatusEncoding, StatusRendering:
		return true
	}
	return false
}

var (
	// HeaderStyle styles the title and column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	statusStyles = map[Status]lipgloss.Style{
		StatusGenerated: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		StatusFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		StatusPending:   lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for a record status.
func StatusStyle(status Status) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	if status.Active() {
		return activeStyle
	}
	return lipgloss.NewStyle()
}
