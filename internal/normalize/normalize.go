// Package normalize canonicalizes free-text Indonesian and English answers
// so that register, slang, contractions and tone particles do not affect
// grading.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Lang selects the rewrite table applied to a text.
type Lang string

const (
	EN Lang = "EN"
	ID Lang = "ID"
)

// Rules are applied until the text stops changing. The tables converge in
// two or three passes; the cap only guards against a bad edit to a table.
const maxPasses = 8

var (
	doubleQuotedRe = regexp.MustCompile(`"[^"]*"|“[^”]*”`)
	curlyQuotedRe  = regexp.MustCompile(`‘[^’]*’`)
	// Straight single quotes only count as a quoted aside when they are not
	// part of a word, so contractions like "don't" survive.
	singleQuotedRe = regexp.MustCompile(`(^|[^\p{L}\p{N}])'[^']*'($|[^\p{L}\p{N}])`)
)

// Normalize returns the canonical form of text.
func Normalize(text string, lang Lang) string {
	return canonical(stripAsides(strings.ToLower(text)), lang)
}

// Forms returns every canonical form of text. For non-empty text the first
// form is Normalize(text, lang); for ID, further forms detach possessive
// enclitics.
func Forms(text string, lang Lang) []string {
	base := stripAsides(strings.ToLower(text))
	if base == "" {
		return nil
	}
	inputs := []string{base}
	if lang == ID {
		inputs = expandEnclitics(base)
	}
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, canonical(in, lang))
	}
	return dedupe(out)
}

// Expand runs bracket expansion on text and returns the canonical forms of
// every alternative. Empty input yields no forms.
func Expand(text string, lang Lang) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, alt := range ExpandBrackets(text) {
		out = append(out, Forms(alt, lang)...)
	}
	return dedupe(out)
}

func stripAsides(s string) string {
	s = doubleQuotedRe.ReplaceAllString(s, " ")
	s = curlyQuotedRe.ReplaceAllString(s, " ")
	for {
		next := singleQuotedRe.ReplaceAllString(s, "$1 $2")
		if next == s {
			return s
		}
		s = next
	}
}

func canonical(s string, lang Lang) string {
	rules := enRules
	if lang == ID {
		rules = idRules
	}
	for i := 0; i < maxPasses; i++ {
		next := s
		for _, r := range rules {
			next = r.rewrite(next)
		}
		next = cleanup(next)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// cleanup turns every punctuation rune into a space and collapses runs of
// whitespace.
func cleanup(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
