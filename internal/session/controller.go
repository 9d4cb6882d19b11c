package session

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/grader"
	"github.com/abhisek/kartu/internal/item"
	"github.com/abhisek/kartu/internal/logging"
	"github.com/abhisek/kartu/internal/scoring"
	"github.com/abhisek/kartu/internal/selection"
	"github.com/abhisek/kartu/internal/store"
)

// DefaultMode is the stats namespace of casual practice.
const DefaultMode = "casual"

// Controller runs a practice session over a fixed set of items. It is safe
// for concurrent use.
type Controller struct {
	mu sync.Mutex

	id      string
	mode    string
	started time.Time

	itemStats store.ItemStatsRepo
	progress  store.ProgressRepo
	settings  store.SettingsRepo
	log       *logrus.Entry

	random *rand.Rand
	now    func() time.Time
	selCfg selection.Config
	sel    *selection.Session

	content     []*item.Item
	items       []*item.SessionItem
	filter      content.Filter
	showJakarta bool
	pool        []*item.SessionItem

	card         *Card
	phase        Phase
	attemptsLeft int

	stats       Stats
	lifetime    store.LifetimeStats
	modules     map[string]store.ModuleStats
	modulesSeen []string
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode sets the stats namespace.
func WithMode(mode string) Option { return func(c *Controller) { c.mode = mode } }

// WithLogger sets the log entry.
func WithLogger(l *logrus.Entry) Option { return func(c *Controller) { c.log = l } }

// WithRand sets the source for card directions and draws.
func WithRand(r *rand.Rand) Option { return func(c *Controller) { c.random = r } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

// WithSelection sets the selection engine tuning.
func WithSelection(cfg selection.Config) Option { return func(c *Controller) { c.selCfg = cfg } }

// WithFilter sets the initial filter. Persisted settings override it on Start.
func WithFilter(f content.Filter) Option { return func(c *Controller) { c.filter = f } }

// WithSettings persists filter and display choices.
func WithSettings(s store.SettingsRepo) Option { return func(c *Controller) { c.settings = s } }

// New creates a controller over items. Call Start before drawing cards.
func New(items []*item.Item, itemStats store.ItemStatsRepo, progress store.ProgressRepo, opts ...Option) *Controller {
	c := &Controller{
		id:        uuid.New().String(),
		mode:      DefaultMode,
		itemStats: itemStats,
		progress:  progress,
		now:       time.Now,
		selCfg:    selection.DefaultConfig(),
		content:   items,
		filter:    content.DefaultFilter(),
		modules:   map[string]store.ModuleStats{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Component(nil, "session")
	}
	if c.random == nil {
		c.random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.log = c.log.WithFields(logrus.Fields{"session_id": c.id, "mode": c.mode})
	c.sel = selection.NewSession(c.selCfg, selection.WithRand(c.random.Float64), selection.WithClock(c.now))
	return c
}

// ID returns the session UUID.
func (c *Controller) ID() string { return c.id }

// Mode returns the stats namespace.
func (c *Controller) Mode() string { return c.mode }

// Start loads persisted stats and settings and draws the first card.
// It returns selection.ErrEmptyPool when the filter leaves nothing to draw.
func (c *Controller) Start(ctx context.Context) (*Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started = c.now()

	stored, err := c.itemStats.All(ctx, c.mode)
	if err != nil {
		return nil, fmt.Errorf("load item stats: %w", err)
	}
	c.items = make([]*item.SessionItem, 0, len(c.content))
	for _, it := range c.content {
		st, ok := stored[it.ID]
		if !ok {
			st = item.DefaultStats()
		}
		c.items = append(c.items, item.NewSessionItem(it, st))
	}

	if c.lifetime, err = c.progress.Lifetime(ctx, c.mode); err != nil {
		return nil, fmt.Errorf("load lifetime stats: %w", err)
	}
	if c.modules, err = c.progress.ModuleStats(ctx, c.mode); err != nil {
		return nil, fmt.Errorf("load module stats: %w", err)
	}
	if err := c.loadSettings(ctx); err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{"items": len(c.items), "known": len(stored)}).Info("session started")
	return c.reset()
}

// Next draws the next card. A locked card must be unlocked first.
func (c *Controller) Next(ctx context.Context) (*Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseLocked {
		return nil, ErrLocked
	}
	return c.draw()
}

// Submit grades answer against the current card.
func (c *Controller) Submit(ctx context.Context, answer string) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkGradable(); err != nil {
		return Outcome{}, err
	}
	if grader.IsCorrect(answer, c.card.Answer) {
		return c.succeed(ctx)
	}
	c.attemptsLeft--
	if c.attemptsLeft <= 0 {
		return c.fail(ctx)
	}
	si := c.card.Item
	c.log.WithFields(logrus.Fields{"item": si.ID, "attempts_left": c.attemptsLeft}).Debug("soft fail")
	return Outcome{
		Verdict:      VerdictSoftFail,
		AttemptsLeft: c.attemptsLeft,
		Points:       si.Stats.Points,
	}, nil
}

// GiveUp fails the current card with no attempts left.
func (c *Controller) GiveUp(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkGradable(); err != nil {
		return Outcome{}, err
	}
	c.attemptsLeft = 0
	return c.fail(ctx)
}

// Unlock releases a locked card when answer is correct. It reports whether
// the card is now unlocked.
func (c *Controller) Unlock(answer string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseLocked || c.card == nil {
		return false
	}
	if !grader.IsCorrect(answer, c.card.Answer) {
		return false
	}
	c.phase = PhaseAnswered
	return true
}

func (c *Controller) checkGradable() error {
	switch {
	case c.card == nil:
		return ErrNoCard
	case c.phase == PhaseLocked:
		return ErrLocked
	case c.phase == PhaseAnswered:
		return ErrAnswered
	}
	return nil
}

func (c *Controller) succeed(ctx context.Context) (Outcome, error) {
	si := c.card.Item
	delta := scoring.ApplySuccess(&si.Stats, c.attemptsLeft)
	c.phase = PhaseAnswered

	c.stats.Correct++
	c.stats.CurrentStreak++
	c.stats.BestStreak = max(c.stats.BestStreak, c.stats.CurrentStreak)

	out := Outcome{
		Verdict:      VerdictCorrect,
		AttemptsLeft: c.attemptsLeft,
		Delta:        delta,
		Points:       si.Stats.Points,
		Answer:       c.card.Answer,
	}
	c.log.WithFields(logrus.Fields{"item": si.ID, "delta": delta, "points": si.Stats.Points}).Debug("correct")
	return out, c.record(ctx, si, true, 0)
}

func (c *Controller) fail(ctx context.Context) (Outcome, error) {
	si := c.card.Item
	delta := scoring.ApplyFail(&si.Stats, c.attemptsLeft)
	c.phase = PhaseLocked

	streak := c.stats.CurrentStreak
	c.stats.Failed++
	c.stats.CurrentStreak = 0

	out := Outcome{
		Verdict:      VerdictFail,
		AttemptsLeft: 0,
		Delta:        delta,
		Points:       si.Stats.Points,
		Answer:       c.card.Answer,
	}
	c.attemptsLeft = 0
	c.log.WithFields(logrus.Fields{"item": si.ID, "delta": delta, "points": si.Stats.Points}).Debug("failed")
	return out, c.record(ctx, si, false, streak)
}

// record syncs and persists the stats touched by a graded card. The in-memory
// state is already updated when it returns an error.
func (c *Controller) record(ctx context.Context, si *item.SessionItem, correct bool, endedStreak int) error {
	if !lo.Contains(c.modulesSeen, si.Module) {
		c.modulesSeen = append(c.modulesSeen, si.Module)
	}

	c.lifetime.Total++
	tally := &c.lifetime.Words
	if si.Type == item.TypeSentence {
		tally = &c.lifetime.Sentences
	}
	tally.Total++
	if correct {
		c.lifetime.Complete++
		tally.Correct++
		c.lifetime.BestStreak = max(c.lifetime.BestStreak, c.stats.CurrentStreak)
	} else {
		c.lifetime.Failed++
	}
	if !correct && endedStreak > 0 {
		sum := c.lifetime.AverageStreak*float64(c.lifetime.Streaks) + float64(endedStreak)
		c.lifetime.Streaks++
		c.lifetime.AverageStreak = sum / float64(c.lifetime.Streaks)
	}

	changed := c.syncConcept(si)
	if err := c.itemStats.SaveMany(ctx, c.mode, changed); err != nil {
		return fmt.Errorf("save item stats: %w", err)
	}
	if !correct {
		if err := c.progress.AppendStreak(ctx, c.mode, endedStreak); err != nil {
			return fmt.Errorf("append streak: %w", err)
		}
	}
	if err := c.progress.SaveLifetime(ctx, c.mode, c.lifetime); err != nil {
		return fmt.Errorf("save lifetime stats: %w", err)
	}
	ms, err := c.progress.RecordModuleAttempt(ctx, c.mode, si.Module, correct)
	if err != nil {
		return fmt.Errorf("record module attempt: %w", err)
	}
	c.modules[si.Module] = ms
	return nil
}

// syncConcept copies the stats of src to every item sharing its concept and
// returns the stats to persist, keyed by item ID.
func (c *Controller) syncConcept(src *item.SessionItem) map[string]item.Stats {
	out := map[string]item.Stats{src.ID: src.Stats}
	key := src.ConceptKey()
	for _, si := range c.items {
		if si == src || si.ConceptKey() != key {
			continue
		}
		si.Stats = src.Stats
		out[si.ID] = si.Stats
	}
	return out
}

// SetFilter replaces the filter and draws a fresh card.
func (c *Controller) SetFilter(ctx context.Context, f content.Filter) (*Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = cloneFilter(f)
	if err := c.saveFilter(ctx); err != nil {
		return nil, err
	}
	return c.reset()
}

// ToggleModule adds or removes module from the active set. Leaving weakest
// mode starts a set with just module.
func (c *Controller) ToggleModule(ctx context.Context, module string) (*Card, error) {
	f := c.Filter()
	if f.Weakest || f.Modules == nil {
		f.Weakest = false
		f.Modules = map[string]bool{}
	}
	if f.Modules[module] {
		delete(f.Modules, module)
	} else {
		f.Modules[module] = true
	}
	return c.SetFilter(ctx, f)
}

// SelectAllModules clears the module set and leaves weakest mode.
func (c *Controller) SelectAllModules(ctx context.Context) (*Card, error) {
	f := c.Filter()
	f.Modules = nil
	f.Weakest = false
	return c.SetFilter(ctx, f)
}

// SelectWeakest switches to the lowest-points items.
func (c *Controller) SelectWeakest(ctx context.Context) (*Card, error) {
	f := c.Filter()
	f.Weakest = true
	return c.SetFilter(ctx, f)
}

// SetShowJakarta toggles Jakarta particles in display text. With particles
// hidden, sentences that differ only by particles are drawn as one.
func (c *Controller) SetShowJakarta(ctx context.Context, show bool) (*Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showJakarta = show
	if c.settings != nil {
		if err := c.settings.Set(ctx, store.SettingShowSlang, strconv.FormatBool(show)); err != nil {
			return nil, fmt.Errorf("save setting: %w", err)
		}
	}
	return c.reset()
}

// reset rebuilds the pool, clears recency and draws.
func (c *Controller) reset() (*Card, error) {
	for _, si := range c.items {
		si.ResetRecency()
	}
	c.pool = content.DedupeParticles(c.filter.Apply(c.items), c.showJakarta)
	return c.draw()
}

func (c *Controller) draw() (*Card, error) {
	si, err := c.sel.PickNext(c.pool)
	if err != nil {
		c.card = nil
		c.phase = PhaseIdle
		return nil, err
	}
	si.MarkSeen(c.now())
	c.card = c.buildCard(si)
	c.phase = PhaseAsking
	c.attemptsLeft = scoring.MaxAttempts
	return c.card, nil
}

func (c *Controller) buildCard(si *item.SessionItem) *Card {
	eng, labels := item.EnglishLabels(si.Eng)
	indo := si.Indo
	if !c.showJakarta && !item.IsJakartaModule(si.Module) {
		indo = item.StripDisplayParticles(indo)
	}
	card := &Card{
		Item:   si,
		Labels: labels,
		Slang:  item.DetectSlang(si.Indo),
	}
	if c.random.IntN(2) == 0 {
		card.Direction = IndoToEnglish
		card.Question, card.Answer = indo, eng
	} else {
		card.Direction = EnglishToIndo
		card.Question, card.Answer = eng, indo
	}
	return card
}

func (c *Controller) loadSettings(ctx context.Context) error {
	if c.settings == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok, err := c.settings.Get(ctx, key)
		if err != nil {
			c.log.WithError(err).WithField("key", key).Warn("read setting")
			return "", false
		}
		return v, ok
	}
	if v, ok := get(store.SettingShowSlang); ok {
		c.showJakarta, _ = strconv.ParseBool(v)
	}
	if v, ok := get(store.SettingContentFilter); ok {
		if k, valid := content.ParseKind(v); valid {
			c.filter.Kind = k
		}
	}
	if v, ok := get(store.SettingRegister); ok {
		if r, valid := content.ParseRegister(v); valid {
			c.filter.Register = r
		}
	}
	if v, ok := get(store.SettingModules); ok {
		var names []string
		if err := json.Unmarshal([]byte(v), &names); err != nil {
			c.log.WithError(err).Warn("ignoring malformed module setting")
		} else if len(names) > 0 {
			c.filter.Modules = lo.Associate(names, func(n string) (string, bool) { return n, true })
		}
	}
	return nil
}

func (c *Controller) saveFilter(ctx context.Context) error {
	if c.settings == nil {
		return nil
	}
	names := lo.Keys(lo.PickBy(c.filter.Modules, func(_ string, on bool) bool { return on }))
	slices.Sort(names)
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode modules: %w", err)
	}
	for key, value := range map[string]string{
		store.SettingContentFilter: string(c.filter.Kind),
		store.SettingRegister:      string(c.filter.Register),
		store.SettingModules:       string(raw),
	} {
		if err := c.settings.Set(ctx, key, value); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}
	return nil
}

func cloneFilter(f content.Filter) content.Filter {
	if f.Modules != nil {
		f.Modules = lo.Assign(f.Modules)
	}
	return f
}

// Card returns the current card, or nil.
func (c *Controller) Card() *Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.card
}

// Phase returns the state of the current card.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// AttemptsLeft returns the tries remaining on the current card.
func (c *Controller) AttemptsLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attemptsLeft
}

// Stats returns the session counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Lifetime returns the lifetime counters including this session.
func (c *Controller) Lifetime() store.LifetimeStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lifetime
}

// ModuleStats returns a copy of the per-module counters.
func (c *Controller) ModuleStats() map[string]store.ModuleStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Assign(c.modules)
}

// Filter returns a copy of the active filter.
func (c *Controller) Filter() content.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneFilter(c.filter)
}

// ShowJakarta reports whether Jakarta particles are displayed.
func (c *Controller) ShowJakarta() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showJakarta
}

// PoolSize returns the number of drawable items under the current filter.
func (c *Controller) PoolSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pool)
}

// Items returns every loaded item with its stats.
func (c *Controller) Items() []*item.SessionItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*item.SessionItem(nil), c.items...)
}
