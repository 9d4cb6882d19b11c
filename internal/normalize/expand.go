package normalize

import (
	"regexp"
	"strings"
)

var groupRe = regexp.MustCompile(`\(([^)]+)\)`)

// Bracket expansion stops branching past this many alternatives.
const maxAlternatives = 64

// ExpandBrackets resolves parenthesised groups. A group with slashes,
// "(dia/mereka) datang", branches into one string per option; a group
// without, "makan (pagi ini)", is an aside and is dropped.
func ExpandBrackets(text string) []string {
	if !strings.Contains(text, "(") {
		return []string{text}
	}
	variants := []string{text}
	for {
		changed := false
		var next []string
		for _, v := range variants {
			loc := groupRe.FindStringSubmatchIndex(v)
			if loc == nil {
				next = append(next, v)
				continue
			}
			changed = true
			head, inner, tail := v[:loc[0]], v[loc[2]:loc[3]], v[loc[1]:]
			if !strings.Contains(inner, "/") {
				next = append(next, collapseSpaces(head+tail))
				continue
			}
			for _, opt := range strings.Split(inner, "/") {
				next = append(next, collapseSpaces(head+strings.TrimSpace(opt)+tail))
			}
		}
		if len(next) > maxAlternatives {
			next = next[:maxAlternatives]
		}
		variants = next
		if !changed {
			return variants
		}
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var encliticRe = regexp.MustCompile(`\b(\w{3,}?)(ku|mu|nya)\b`)

// Words whose ending only looks like an enclitic.
var encliticFalsePositives = map[string]bool{
	"bertemu":  true,
	"ketemu":   true,
	"bertanya": true,
	"menanya":  true,
	"ditanya":  true,
}

var encliticPronouns = map[string][]string{
	"ku":  {"ku", "aku"},
	"mu":  {"kamu"},
	"nya": {"dia"},
}

// expandEnclitics returns s followed by variants in which possessive
// enclitics are written as separate pronouns ("rumahku" -> "rumah aku").
// Each enclitic word is detached on its own, then all of them together.
func expandEnclitics(s string) []string {
	matches := encliticRe.FindAllStringSubmatchIndex(s, -1)
	out := []string{s}
	var all strings.Builder
	last := 0
	detached := 0
	for _, m := range matches {
		word := s[m[0]:m[1]]
		if encliticFalsePositives[word] {
			continue
		}
		base, suffix := s[m[2]:m[3]], s[m[4]:m[5]]
		for _, pronoun := range encliticPronouns[suffix] {
			out = append(out, s[:m[0]]+base+" "+pronoun+s[m[1]:])
		}
		all.WriteString(s[last:m[0]])
		all.WriteString(base + " " + encliticPronouns[suffix][len(encliticPronouns[suffix])-1])
		last = m[1]
		detached++
	}
	if detached > 1 {
		all.WriteString(s[last:])
		out = append(out, all.String())
	}
	return dedupe(out)
}
