// Package rank turns total mastery points into a display rank.
package rank

import (
	"github.com/abhisek/kartu/internal/item"
)

// Rank is a tier on the ladder.
type Rank int

const (
	Bronze Rank = iota
	Silver
	Gold
	Platinum
	Diamond
	Master
)

// Step is the number of points between two ranks.
const Step = 200

var names = [...]string{"BRONZE", "SILVER", "GOLD", "PLATINUM", "DIAMOND", "MASTER"}

func (r Rank) String() string {
	if r < Bronze || r > Master {
		return "UNKNOWN"
	}
	return names[r]
}

// Result is a computed rank with the figures behind it.
type Result struct {
	Rank     Rank
	Concepts int
	Total    int
	// Base is the points every concept starts with combined.
	Base  int
	Delta int
}

// ToNext returns the points needed for the next rank, or 0 at the top.
func (r Result) ToNext() int {
	if r.Rank == Master {
		return 0
	}
	// Points at which Rank+1 starts, relative to Base.
	threshold := (int(r.Rank+1) - int(Silver)) * Step
	return threshold - r.Delta
}

// Calculate ranks a learner with total points over concepts items. A fresh
// learner starts at SILVER.
func Calculate(total, concepts int) Result {
	base := concepts * item.DefaultPoints
	delta := total - base
	idx := int(Silver) + floorDiv(delta, Step)
	idx = max(int(Bronze), min(int(Master), idx))
	return Result{
		Rank:     Rank(idx),
		Concepts: concepts,
		Total:    total,
		Base:     base,
		Delta:    delta,
	}
}

// Compute ranks items, counting each concept once with the points of its
// first entry.
func Compute(items []*item.SessionItem) Result {
	seen := make(map[string]bool, len(items))
	total := 0
	for _, si := range items {
		key := si.ConceptKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		total += si.Stats.Points
	}
	return Calculate(total, len(seen))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
