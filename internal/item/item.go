// Package item defines the flashcard data model shared by the engines:
// content items, their persisted mastery stats and per-session state.
package item

import (
	"fmt"
	"strings"
)

// Type distinguishes single words from full sentences.
type Type string

const (
	TypeWord     Type = "word"
	TypeSentence Type = "sentence"
)

// Register is the formality tier of an item.
type Register string

const (
	RegisterFormal   Register = "formal"
	RegisterInformal Register = "informal"
	RegisterNeutral  Register = "neutral"
)

// Item is one learnable word or sentence pair.
type Item struct {
	ID       string
	Type     Type
	Module   string
	Register Register

	// Indo is the display text with affix markers joined.
	Indo string
	// IndoRaw keeps the text as authored, including markers like "di-kirim".
	IndoRaw string
	Eng     string

	// ExcludeFromPool marks entries that are never drawn as standalone cards.
	ExcludeFromPool bool

	concept string
}

// MakeID derives the persistence key of an item. The format is a stored
// key: changing it orphans every learner's history.
func MakeID(t Type, indo, eng string) string {
	return strings.ToLower(fmt.Sprintf("%s::%s::%s", t, indo, eng))
}

// New builds an item from authored text. Affix markers are joined before
// the ID is derived so marked and unmarked spellings share one record.
func New(t Type, module string, reg Register, indoRaw, eng string) *Item {
	indoRaw = strings.TrimSpace(indoRaw)
	eng = strings.TrimSpace(eng)
	indo := StripAffixMarkers(indoRaw)
	it := &Item{
		ID:              MakeID(t, indo, eng),
		Type:            t,
		Module:          module,
		Register:        reg,
		Indo:            indo,
		IndoRaw:         indoRaw,
		Eng:             eng,
		ExcludeFromPool: t == TypeWord && IsExcludedSlangWord(indo),
	}
	it.concept = conceptKey(it)
	return it
}

// ConceptKey identifies the underlying concept of the item. Entries that
// differ only in affix markers, display particles or letter case share a key.
func (it *Item) ConceptKey() string {
	if it.concept == "" {
		it.concept = conceptKey(it)
	}
	return it.concept
}

func conceptKey(it *Item) string {
	indo := strings.ToLower(strings.TrimSpace(StripDisplayParticles(StripAffixMarkers(it.Indo))))
	eng := strings.ToLower(strings.TrimSpace(it.Eng))
	return fmt.Sprintf("%s::%s::%s", it.Type, indo, eng)
}
