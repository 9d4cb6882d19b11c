package item

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

var (
	prefixMarkerRe = regexp.MustCompile(`(?i)\b(di|ber|ter|me|mem|men|meng|meny)-(\p{L}{2,})\b`)
	suffixMarkerRe = regexp.MustCompile(`(?i)\b(\p{L}{2,})-(kan|i|ku|mu|nya)\b`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// StripAffixMarkers joins hyphens that mark affix boundaries ("di-kirim",
// "rumah-nya") and leaves real hyphenated words like "anak-anak" alone.
func StripAffixMarkers(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	s = prefixMarkerRe.ReplaceAllString(s, "${1}${2}")
	return suffixMarkerRe.ReplaceAllString(s, "${1}${2}")
}

var displayParticleRe = regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}_])(nih|sih|dong|deh|tuh)([^\p{L}\p{N}_]|$)`)

// StripDisplayParticles removes the tone particles that only change how a
// sentence sounds, not what it means.
func StripDisplayParticles(s string) string {
	for {
		next := displayParticleRe.ReplaceAllString(s, "${1}${3}")
		if next == s {
			break
		}
		s = next
	}
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, " ?", "?")
	s = strings.ReplaceAll(s, " !", "!")
	s = strings.ReplaceAll(s, " .", ".")
	return strings.TrimSpace(s)
}

// HasDisplayParticles reports whether s carries any tone particle.
func HasDisplayParticles(s string) bool {
	return displayParticleRe.MatchString(s)
}

// Slang is a Jakarta texting token with its meaning.
type Slang struct {
	Token   string
	Meaning string
}

var slangTokens = []Slang{
	{"nih", "pointing / \"here\" / \"this\""},
	{"sih", "softener / emphasis"},
	{"kok", "surprise / \"how come?\" tone"},
	{"dong", "urging / \"come on\""},
	{"deh", "softening / casual closure"},
	{"tuh", "pointing / \"there\" / \"see?\""},
	{"gpp", "it's okay / no problem"},
	{"bgt", "very / really"},
	{"udh", "already"},
	{"blm", "not yet"},
	{"otw", "on my way"},
	{"wkwk", "laughing"},
	{"gue", "I (Jakarta slang)"},
	{"gw", "I (Jakarta slang)"},
	{"lu", "you (Jakarta slang)"},
	{"lo", "you (Jakarta slang)"},
}

// Tokens that never make sense as standalone word cards.
var excludedSlangWords = map[string]bool{
	"nih": true, "sih": true, "kok": true, "dong": true, "deh": true, "tuh": true,
	"gpp": true, "bgt": true, "udh": true, "blm": true, "otw": true, "wkwk": true,
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// DetectSlang returns the Jakarta tokens present in text, in table order.
func DetectSlang(text string) []Slang {
	ws := words(text)
	return lo.Filter(slangTokens, func(s Slang, _ int) bool { return lo.Contains(ws, s.Token) })
}

// IsExcludedSlangWord reports whether a word entry consists only of chat
// particles or abbreviations, such as "deh" or "udh / blm".
func IsExcludedSlangWord(indo string) bool {
	parts := strings.FieldsFunc(strings.ToLower(indo), func(r rune) bool {
		return r == ' ' || r == '/' || strings.ContainsRune(".?!,:;()[]{}\"'“”", r)
	})
	return len(parts) > 0 && lo.EveryBy(parts, func(p string) bool { return excludedSlangWords[p] })
}

// Jakarta-focused modules practice slang on purpose.
var jakartaModules = map[string]bool{
	"Jakarta Pronouns (Gue / Lu)": true,
	"Chat Softeners":              true,
	"Text Abbreviations":          true,
	"Daily Small Talk (Chat)":     true,
	"Hangout Planning (Texting)":  true,
	"Messaging Basics":            true,
}

// IsJakartaModule reports whether a module deliberately teaches slang.
func IsJakartaModule(module string) bool {
	return jakartaModules[module]
}

var labelRe = regexp.MustCompile(`(?i)\s*\((spoken|casual)\)`)

// EnglishLabels splits display labels such as "(spoken)" off an English
// gloss. It returns the clean text and the upper-cased labels.
func EnglishLabels(eng string) (string, []string) {
	var labels []string
	for _, m := range labelRe.FindAllStringSubmatch(eng, -1) {
		labels = append(labels, strings.ToUpper(m[1]))
	}
	clean := strings.TrimSpace(spaceRe.ReplaceAllString(labelRe.ReplaceAllString(eng, ""), " "))
	return clean, lo.Uniq(labels)
}
