package store

import (
	"context"
	"time"

	"github.com/abhisek/kartu/internal/item"
)

// ItemStatsRepo persists per-item mastery stats, keyed by mode and item ID.
type ItemStatsRepo interface {
	// Get returns the stats of id, creating the default record on first
	// access.
	Get(ctx context.Context, mode, id string) (item.Stats, error)

	// Save writes the stats of one item.
	Save(ctx context.Context, mode, id string, st item.Stats) error

	// SaveMany writes several items in one transaction.
	SaveMany(ctx context.Context, mode string, stats map[string]item.Stats) error

	// All returns every stored record of mode.
	All(ctx context.Context, mode string) (map[string]item.Stats, error)

	// Reset deletes every record of mode.
	Reset(ctx context.Context, mode string) error
}

// ModuleStats tracks how a learner does within one module.
type ModuleStats struct {
	Module        string
	Attempted     int
	Correct       int
	CurrentStreak int
	BestStreak    int
}

// Accuracy returns the share of correct attempts, or 0 before any attempt.
func (m ModuleStats) Accuracy() float64 {
	if m.Attempted == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Attempted)
}

// Tally counts correct answers out of a total.
type Tally struct {
	Correct int
	Total   int
}

// LifetimeStats aggregates every card ever graded in a mode.
type LifetimeStats struct {
	Total      int
	Complete   int
	Failed     int
	BestStreak int
	Words      Tally
	Sentences  Tally

	// Streaks is the number of finished streaks and AverageStreak their
	// mean length. Both are derived from the streak log.
	Streaks       int
	AverageStreak float64
}

// ProgressRepo persists module and lifetime statistics.
type ProgressRepo interface {
	// ModuleStats returns the stats of every module attempted in mode.
	ModuleStats(ctx context.Context, mode string) (map[string]ModuleStats, error)

	// RecordModuleAttempt counts one graded card in module and returns the
	// updated stats.
	RecordModuleAttempt(ctx context.Context, mode, module string, correct bool) (ModuleStats, error)

	// Lifetime returns the lifetime stats of mode.
	Lifetime(ctx context.Context, mode string) (LifetimeStats, error)

	// SaveLifetime writes the counters of st. Streak aggregates are ignored.
	SaveLifetime(ctx context.Context, mode string, st LifetimeStats) error

	// AppendStreak logs a finished streak of the given length.
	AppendStreak(ctx context.Context, mode string, length int) error

	// Reset deletes module stats, lifetime stats and streaks of mode.
	Reset(ctx context.Context, mode string) error
}

// SettingsRepo stores small string settings.
type SettingsRepo interface {
	// Get returns the value of key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM call.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
}
