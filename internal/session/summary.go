package session

import (
	"time"

	"github.com/abhisek/kartu/internal/store"
)

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Stats     Stats
	Lifetime  store.LifetimeStats
	// Modules lists the modules graded in this session, in first-seen order.
	Modules []string
}

// Summary builds a Summary from the controller state.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		SessionID: c.id,
		Duration:  c.now().Sub(c.started),
		Stats:     c.stats,
		Lifetime:  c.lifetime,
		Modules:   append([]string(nil), c.modulesSeen...),
	}
}
