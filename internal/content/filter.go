package content

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/kartu/internal/item"
)

// Kind restricts the pool to words, sentences or both.
type Kind string

const (
	KindAll       Kind = "all"
	KindWords     Kind = "words"
	KindSentences Kind = "sentences"
)

// RegisterFilter restricts the pool by formality. Neutral items always pass.
type RegisterFilter string

const (
	RegisterAll      RegisterFilter = "all"
	RegisterFormal   RegisterFilter = "formal"
	RegisterInformal RegisterFilter = "informal"
)

// DefaultWeakestLimit is the size of the weakest-cards pool.
const DefaultWeakestLimit = 25

// Filter selects the active pool.
type Filter struct {
	Kind     Kind
	Register RegisterFilter
	// Modules limits the pool to these modules. Empty means all modules.
	Modules map[string]bool
	// Weakest replaces the module filter with the N lowest-points items.
	Weakest      bool
	WeakestLimit int
}

// DefaultFilter returns a filter that passes every poolable item.
func DefaultFilter() Filter {
	return Filter{Kind: KindAll, Register: RegisterAll, WeakestLimit: DefaultWeakestLimit}
}

// ParseKind accepts "all", "words" or "sentences".
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, lo.Contains([]Kind{KindAll, KindWords, KindSentences}, k)
}

// ParseRegister accepts "all", "formal" or "informal".
func ParseRegister(s string) (RegisterFilter, bool) {
	r := RegisterFilter(strings.ToLower(strings.TrimSpace(s)))
	return r, lo.Contains([]RegisterFilter{RegisterAll, RegisterFormal, RegisterInformal}, r)
}

// Match reports whether it passes the kind, register and pool rules.
// The module set is not consulted.
func (f Filter) Match(it *item.Item) bool {
	if it.ExcludeFromPool {
		return false
	}
	switch f.Kind {
	case KindWords:
		if it.Type != item.TypeWord {
			return false
		}
	case KindSentences:
		if it.Type != item.TypeSentence {
			return false
		}
	}
	if f.Register == RegisterFormal || f.Register == RegisterInformal {
		if it.Register != item.RegisterNeutral && string(it.Register) != string(f.Register) {
			return false
		}
	}
	return true
}

// Apply returns the items selected by f, in input order unless the
// weakest override is active.
func (f Filter) Apply(items []*item.SessionItem) []*item.SessionItem {
	pool := lo.Filter(items, func(si *item.SessionItem, _ int) bool { return f.Match(si.Item) })
	if f.Weakest {
		n := f.WeakestLimit
		if n <= 0 {
			n = DefaultWeakestLimit
		}
		return Weakest(pool, n)
	}
	if len(f.Modules) > 0 {
		pool = lo.Filter(pool, func(si *item.SessionItem, _ int) bool { return f.Modules[si.Module] })
	}
	return pool
}

// Weakest returns the n items with the lowest points. Ties keep input order.
func Weakest(items []*item.SessionItem, n int) []*item.SessionItem {
	out := append([]*item.SessionItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stats.Points < out[j].Stats.Points })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// DedupeParticles collapses sentence cards whose display text would be
// identical once Jakarta particles are hidden. With showJakarta set the
// pool is returned unchanged. Within a group the particle-free entry
// wins, then the one with fewer points.
func DedupeParticles(items []*item.SessionItem, showJakarta bool) []*item.SessionItem {
	if showJakarta {
		return items
	}
	var (
		out    []*item.SessionItem
		order  []string
		groups = map[string]*item.SessionItem{}
	)
	for _, si := range items {
		if si.Type != item.TypeSentence || item.IsJakartaModule(si.Module) {
			out = append(out, si)
			continue
		}
		stripped := item.StripDisplayParticles(si.Indo)
		key := strings.ToLower(strings.Join([]string{string(si.Type), si.Module, string(si.Register), stripped}, "::"))
		best, ok := groups[key]
		if !ok {
			groups[key] = si
			order = append(order, key)
			continue
		}
		bestDirty := item.HasDisplayParticles(best.Indo)
		itDirty := item.HasDisplayParticles(si.Indo)
		switch {
		case bestDirty && !itDirty:
			groups[key] = si
		case bestDirty == itDirty && si.Stats.Points < best.Stats.Points:
			groups[key] = si
		}
	}
	for _, k := range order {
		out = append(out, groups[k])
	}
	return out
}
