package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Member state colors
	StateAlive   = lipgloss.Color("#10B981") // Green
	StateBusy    = lipgloss.Color("#F59E0B") // Amber
	StateOffline = lipgloss.Color("#9CA3AF") // Gray
	StateFailed  = lipgloss.Color("#F87171") // Red

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)
)

// MemberState returns the style for a member state name.
func MemberState(state string) lipgloss.Style {
	switch state {
	case "alive":
		return lipgloss.NewStyle().Foreground(StateAlive)
	case "busy":
		return lipgloss.NewStyle().Foreground(StateBusy)
	case "offline":
		return lipgloss.NewStyle().Foreground(StateOffline)
	case "failed":
		return lipgloss.NewStyle().Foreground(StateFailed)
	default:
		return Muted
	}
}
