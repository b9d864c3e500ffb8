package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Accent    = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Gallery rows
	BucketHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	BucketUnknown = lipgloss.NewStyle().
			Bold(true).
			Foreground(Muted).
			Italic(true)

	Photo = lipgloss.NewStyle()

	PhotoSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	PhotoHighlighted = lipgloss.NewStyle().
				Foreground(Warning)

	PhotoDate = lipgloss.NewStyle().
			Foreground(Muted)

	PhotoModel = lipgloss.NewStyle().
			Foreground(Accent)

	NotesMark = lipgloss.NewStyle().
			Foreground(Secondary).
			SetString("✎")

	EditedMark = lipgloss.NewStyle().
			Foreground(Warning).
			SetString("*")

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Notes block in the detail view
	Notes = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Secondary).
		PaddingLeft(1)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// BucketStyle returns the header style for a month group
func BucketStyle(unknown bool) lipgloss.Style {
	if unknown {
		return BucketUnknown
	}
	return BucketHeader
}
