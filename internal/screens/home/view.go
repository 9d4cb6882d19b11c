package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/ui/theme"
)

const titleFull = ` ██╗  ██╗ █████╗ ██████╗ ████████╗██╗   ██╗
 ██║ ██╔╝██╔══██╗██╔══██╗╚══██╔══╝██║   ██║
 █████╔╝ ███████║██████╔╝   ██║   ██║   ██║
 ██╔═██╗ ██╔══██║██╔══██╗   ██║   ██║   ██║
 ██║  ██╗██║  ██║██║  ██║   ██║   ╚██████╔╝
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝`

const titleCompact = "K · A · R · T · U"

// contentWidth returns the uniform inner width shared by every section.
func contentWidth(frameWidth int) int {
	return max(min(frameWidth-6, 60), 20)
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art))
}

// renderStatsBar shows rank, points and the size of the active pool.
func renderStatsBar(st dashboard, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	stats := theme.RankStyle(st.rank).Render(st.rank) + "  " +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d pts", st.points)) + "  " +
		dim.Render(fmt.Sprintf("%d cards in pool", st.pool))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderChatNote explains why chat is unavailable.
func renderChatNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key to enable chat (see kartu --help)")
}

// renderFrame wraps content in a double border, centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func joinSections(sections []string) string {
	return strings.Join(sections, "\n\n")
}
