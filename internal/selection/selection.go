// Package selection draws the next flashcard by weighted random sampling.
package selection

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/kartu/internal/item"
)

// ErrEmptyPool is returned when there is nothing to draw from.
var ErrEmptyPool = errors.New("selection: no item available")

// Dampening controls how weight is shared between items of one concept.
type Dampening string

const (
	DampenSqrt   Dampening = "sqrt"
	DampenLinear Dampening = "linear"
)

// Config holds the tunable multipliers of the effective weight.
type Config struct {
	// NoveltyBoost multiplies items not yet drawn this session.
	NoveltyBoost float64
	// SecondLookBoost multiplies items drawn exactly once.
	SecondLookBoost float64

	RecentWindow  time.Duration
	RecentFactor  float64
	CoolingWindow time.Duration
	CoolingFactor float64

	// MinWeight keeps every item drawable.
	MinWeight float64
	Dampening Dampening
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		NoveltyBoost:    2.0,
		SecondLookBoost: 1.5,
		RecentWindow:    5 * time.Minute,
		RecentFactor:    0.1,
		CoolingWindow:   15 * time.Minute,
		CoolingFactor:   0.5,
		MinWeight:       0.1,
		Dampening:       DampenSqrt,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NoveltyBoost <= 0 {
		c.NoveltyBoost = d.NoveltyBoost
	}
	if c.SecondLookBoost <= 0 {
		c.SecondLookBoost = d.SecondLookBoost
	}
	if c.RecentWindow <= 0 {
		c.RecentWindow = d.RecentWindow
	}
	if c.RecentFactor <= 0 {
		c.RecentFactor = d.RecentFactor
	}
	if c.CoolingWindow <= 0 {
		c.CoolingWindow = d.CoolingWindow
	}
	if c.CoolingFactor <= 0 {
		c.CoolingFactor = d.CoolingFactor
	}
	if c.MinWeight <= 0 {
		c.MinWeight = d.MinWeight
	}
	if c.Dampening != DampenLinear {
		c.Dampening = DampenSqrt
	}
	return c
}

// Session is the picker state of one learning session. It only remembers
// the last item it returned.
type Session struct {
	cfg          Config
	lastPickedID string

	random func() float64
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRand replaces the uniform [0,1) source.
func WithRand(f func() float64) Option {
	return func(s *Session) { s.random = f }
}

// WithClock replaces time.Now.
func WithClock(f func() time.Time) Option {
	return func(s *Session) { s.now = f }
}

// NewSession creates a picker with no history.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg.withDefaults(),
		random: rand.Float64,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// LastPickedID returns the ID of the previous pick, or "".
func (s *Session) LastPickedID() string { return s.lastPickedID }

// Forget clears the no-repeat memory.
func (s *Session) Forget() { s.lastPickedID = "" }

// PickNext draws one item from pool. The previous pick is excluded unless
// it is the only candidate. PickNext reads but never updates Seen and
// LastSeen; the caller marks the returned item as seen.
func (s *Session) PickNext(pool []*item.SessionItem) (*item.SessionItem, error) {
	candidates := s.candidates(pool)
	if len(candidates) == 0 {
		return nil, ErrEmptyPool
	}

	weights := s.Weights(candidates)
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := s.random() * total
	picked := candidates[len(candidates)-1]
	for i, w := range weights {
		r -= w
		if r <= 0 {
			picked = candidates[i]
			break
		}
	}

	s.lastPickedID = picked.ID
	return picked, nil
}

func (s *Session) candidates(pool []*item.SessionItem) []*item.SessionItem {
	if s.lastPickedID == "" || len(pool) < 2 {
		return pool
	}
	out := make([]*item.SessionItem, 0, len(pool))
	for _, si := range pool {
		if si.ID != s.lastPickedID {
			out = append(out, si)
		}
	}
	if len(out) == 0 {
		return pool
	}
	return out
}

// Weights returns the effective weight of every item in pool, with
// concepts counted over pool itself.
func (s *Session) Weights(pool []*item.SessionItem) []float64 {
	counts := make(map[string]int, len(pool))
	for _, si := range pool {
		counts[si.ConceptKey()]++
	}
	now := s.now()
	out := make([]float64, len(pool))
	for i, si := range pool {
		out[i] = s.effectiveWeight(si, counts[si.ConceptKey()], now)
	}
	return out
}

// EffectiveWeight returns the draw weight of si when conceptCount pool
// items share its concept.
func (s *Session) EffectiveWeight(si *item.SessionItem, conceptCount int) float64 {
	return s.effectiveWeight(si, conceptCount, s.now())
}

func (s *Session) effectiveWeight(si *item.SessionItem, conceptCount int, now time.Time) float64 {
	w := float64(max(1, si.Stats.Weight))

	switch si.Seen {
	case 0:
		w *= s.cfg.NoveltyBoost
	case 1:
		w *= s.cfg.SecondLookBoost
	}

	if !si.LastSeen.IsZero() {
		elapsed := now.Sub(si.LastSeen)
		switch {
		case elapsed < s.cfg.RecentWindow:
			w *= s.cfg.RecentFactor
		case elapsed < s.cfg.CoolingWindow:
			w *= s.cfg.CoolingFactor
		}
	}

	if conceptCount > 1 {
		if s.cfg.Dampening == DampenLinear {
			w /= float64(conceptCount)
		} else {
			w /= math.Sqrt(float64(conceptCount))
		}
	}

	return math.Max(s.cfg.MinWeight, w)
}
