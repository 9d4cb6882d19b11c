package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, red and white with a warm accent
var (
	Primary   = lipgloss.Color("#E11D48") // Merah
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#FACC15") // Yellow
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// RankColors maps rank names to their badge color.
var RankColors = map[string]lipgloss.Style{
	"BRONZE":   lipgloss.NewStyle().Foreground(lipgloss.Color("#CD7F32")).Bold(true),
	"SILVER":   lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5E1")).Bold(true),
	"GOLD":     lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Bold(true),
	"PLATINUM": lipgloss.NewStyle().Foreground(lipgloss.Color("#67E8F9")).Bold(true),
	"DIAMOND":  lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Bold(true),
	"MASTER":   lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC")).Bold(true),
}

// RankStyle returns the badge style of a rank name.
func RankStyle(name string) lipgloss.Style {
	if s, ok := RankColors[name]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(Text).Bold(true)
}

// Typography
var (
	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)

// Chat bubbles
var (
	UserBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	TutorBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	HelpBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
