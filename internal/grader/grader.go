// Package grader decides whether a typed answer matches an expected answer
// that may list alternatives with slashes and parenthesised groups.
package grader

import (
	"strings"

	"github.com/abhisek/kartu/internal/normalize"
)

// Result describes how an answer was graded.
type Result struct {
	Correct bool
	// Variant is the expected-answer variant that matched.
	Variant string
	// Lang is the language whose canonical forms matched.
	Lang normalize.Lang
}

// SplitVariants expands bracket groups in expected and splits the result on
// "/". Variants are trimmed and empty ones dropped.
func SplitVariants(expected string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range normalize.ExpandBrackets(expected) {
		for _, part := range strings.Split(s, "/") {
			part = strings.Join(strings.Fields(part), " ")
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

// IsCorrect reports whether user answers expected in either language.
func IsCorrect(user, expected string) bool {
	return Grade(user, expected).Correct
}

// Grade checks user against every variant of expected, in English and in
// Indonesian, and reports the first variant whose required tokens are all
// present in the answer.
func Grade(user, expected string) Result {
	if strings.TrimSpace(user) == "" || strings.TrimSpace(expected) == "" {
		return Result{}
	}

	answers := map[normalize.Lang]string{
		normalize.EN: normalize.Normalize(user, normalize.EN),
		normalize.ID: normalize.Normalize(user, normalize.ID),
	}

	for _, v := range SplitVariants(expected) {
		for _, lang := range []normalize.Lang{normalize.EN, normalize.ID} {
			for _, form := range normalize.Expand(v, lang) {
				if ContainsRequired(answers[lang], form) {
					return Result{Correct: true, Variant: v, Lang: lang}
				}
			}
		}
	}
	return Result{}
}

// ContainsRequired reports whether every non-optional token of the
// canonical expected form appears in the canonical answer. Order and
// repetition are ignored. A form made only of optional tokens requires all
// of them, and an empty form matches nothing.
func ContainsRequired(answer, expected string) bool {
	want := strings.Fields(expected)
	if len(want) == 0 {
		return false
	}
	have := make(map[string]bool)
	for _, tok := range strings.Fields(answer) {
		have[tok] = true
	}

	required := 0
	for _, tok := range want {
		if normalize.IsOptional(tok) {
			continue
		}
		required++
		if !have[tok] {
			return false
		}
	}
	if required > 0 {
		return true
	}
	for _, tok := range want {
		if !have[tok] {
			return false
		}
	}
	return true
}

// Indonesian function words that rarely appear in English text.
var idHints = []string{
	"aku", "kamu", "dia", "kita", "kami", "mereka",
	"tidak", "nggak", "gak", "ga", "enggak",
	"yang", "di", "ke", "dari", "untuk", "dengan",
	"sudah", "udah", "belum", "lagi", "sedang",
	"aja", "saja", "kok", "nih",
}

// InferLang guesses the language of an expected answer from common
// Indonesian function words.
func InferLang(text string) normalize.Lang {
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == '\t' || strings.ContainsRune("?.!,;:/()\"'", r)
	}) {
		tokens[tok] = true
	}
	for _, h := range idHints {
		if tokens[h] {
			return normalize.ID
		}
	}
	return normalize.EN
}
