package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/ui/theme"
)

// MascotVariant selects which flashcard mascot to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default red card
	MascotCelebrating                      // Gold, star eyes: rank above SILVER
	MascotAlert                            // Amber, exclamation: points below the starting line
)

const mascotIdle = `┌───────┐
│ ◉   ◉ │
│   ▽   │
│ ID⇄EN │
└───────┘`

const mascotCelebrating = `┌───────┐
│ ★   ★ │
│   ▿   │
│ ID⇄EN │
└─╥═══╥─┘
  ╚═══╝`

const mascotAlert = `┌───────┐
│ ◉   ◉ │ !
│   ○   │
│ ID⇄EN │
└───────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Warning
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
