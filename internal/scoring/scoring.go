// Package scoring updates an item's mastery stats after a graded attempt.
package scoring

import "github.com/abhisek/kartu/internal/item"

// MaxAttempts is the number of tries a learner gets per card.
const MaxAttempts = 3

// SuccessDelta returns the points awarded for a correct answer given the
// attempts left when it was typed.
func SuccessDelta(attemptsLeft int) int {
	switch attemptsLeft {
	case MaxAttempts:
		return 6
	case MaxAttempts - 1:
		return 4
	default:
		return 2
	}
}

// FailDelta returns the (negative) points for a failed card. Each earlier
// consecutive failure adds five more.
func FailDelta(attemptsLeft, failStreak int) int {
	return -(5 + attemptsLeft + failStreak*5)
}

// ApplySuccess rewards st and returns the delta. Weight drops by the same
// amount so mastered items come up less often.
func ApplySuccess(st *item.Stats, attemptsLeft int) int {
	delta := SuccessDelta(attemptsLeft)
	apply(st, delta)
	st.FailStreak = 0
	return delta
}

// ApplyFail penalises st and returns the delta. Weight rises by the size of
// the penalty so failed items come back sooner.
func ApplyFail(st *item.Stats, attemptsLeft int) int {
	delta := FailDelta(attemptsLeft, st.FailStreak)
	apply(st, delta)
	st.FailStreak++
	return delta
}

func apply(st *item.Stats, delta int) {
	st.Points += delta
	st.Weight = max(1, st.Weight-delta)
}
