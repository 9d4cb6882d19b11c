package session

import (
	"errors"

	"github.com/abhisek/kartu/internal/item"
)

var (
	// ErrNoCard is returned when an answer arrives and no card is showing.
	ErrNoCard = errors.New("session: no card")
	// ErrLocked is returned while a failed card waits for the learner to
	// type the correct answer.
	ErrLocked = errors.New("session: card locked")
	// ErrAnswered is returned when an already answered card is graded again.
	ErrAnswered = errors.New("session: card already answered")
)

// Phase is the state of the current card.
type Phase int

const (
	PhaseIdle     Phase = iota // No card drawn yet or pool empty
	PhaseAsking                // Waiting for an answer
	PhaseAnswered              // Answered correctly or unlocked
	PhaseLocked                // Failed, waiting for the correct answer
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseAnswered:
		return "answered"
	case PhaseLocked:
		return "locked"
	default:
		return "idle"
	}
}

// Direction is the translation direction of a card.
type Direction string

const (
	IndoToEnglish Direction = "IE"
	EnglishToIndo Direction = "EI"
)

// Card is one rendered prompt.
type Card struct {
	Item      *item.SessionItem
	Direction Direction

	// Question is shown to the learner and Answer is what they must type.
	Question string
	Answer   string

	// Labels are register hints split off the English side, e.g. SPOKEN.
	Labels []string

	// Slang lists the Jakarta tokens present in the Indonesian side.
	Slang []item.Slang
}

// Verdict is the outcome of one graded attempt.
type Verdict int

const (
	VerdictCorrect  Verdict = iota // Answered correctly
	VerdictSoftFail                // Wrong, attempts remain
	VerdictFail                    // Wrong, no attempts remain
)

// Outcome describes the effect of one graded attempt.
type Outcome struct {
	Verdict      Verdict
	AttemptsLeft int
	// Delta is the change in points. Zero on a soft fail.
	Delta  int
	Points int
	Answer string
}

// Stats counts the cards graded in this session.
type Stats struct {
	Correct       int
	Failed        int
	CurrentStreak int
	BestStreak    int
}

// Total returns the number of graded cards.
func (s Stats) Total() int { return s.Correct + s.Failed }

// Accuracy returns the share of correct cards, or 0 before any card.
func (s Stats) Accuracy() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total())
}
