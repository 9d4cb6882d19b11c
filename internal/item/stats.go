package item

import "time"

// Default values for a never-seen item.
const (
	DefaultPoints = 100
	DefaultWeight = 100
)

// Stats is the persisted mastery record of an item.
type Stats struct {
	Points     int `json:"points"`
	Weight     int `json:"weight"`
	FailStreak int `json:"fail_streak"`
}

// DefaultStats returns the record used on first access.
func DefaultStats() Stats {
	return Stats{Points: DefaultPoints, Weight: DefaultWeight}
}

// SessionItem wraps an item with its mastery stats and the ephemeral
// per-session draw state.
type SessionItem struct {
	*Item
	Stats Stats

	Seen     int
	LastSeen time.Time
}

// NewSessionItem pairs an item with its loaded stats.
func NewSessionItem(it *Item, st Stats) *SessionItem {
	return &SessionItem{Item: it, Stats: st}
}

// MarkSeen records that the item was just drawn.
func (s *SessionItem) MarkSeen(now time.Time) {
	s.Seen++
	s.LastSeen = now
}

// ResetRecency forgets when the item was last drawn.
func (s *SessionItem) ResetRecency() {
	s.LastSeen = time.Time{}
}
