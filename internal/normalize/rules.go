package normalize

import "regexp"

// rule rewrites text toward its canonical form. Most rules are a regexp
// with a replacement template; apply is used where RE2 cannot express the
// pattern (backreferences).
type rule struct {
	name  string
	re    *regexp.Regexp
	repl  string
	apply func(string) string
}

func (r rule) rewrite(s string) string {
	if r.apply != nil {
		return r.apply(s)
	}
	return r.re.ReplaceAllString(s, r.repl)
}

func re(name, pattern, repl string) rule {
	return rule{name: name, re: regexp.MustCompile(pattern), repl: repl}
}

func fn(name string, f func(string) string) rule {
	return rule{name: name, apply: f}
}

// Apostrophe is optional only where dropping it does not produce another
// English word ("were", "well", "ill", "id", "shed").
const apos = `['’]`

// enRules is ordered: contractions first, then multi-word phrases before
// the single words they contain.
var enRules = []rule{
	// be
	re("i'm", `\bi`+apos+`?m\b`, "i am"),
	re("you're", `\byou`+apos+`?re\b`, "you are"),
	re("he's", `\bhe`+apos+`?s\b`, "he is"),
	re("she's", `\bshe`+apos+`?s\b`, "she is"),
	re("it's", `\bit`+apos+`?s\b`, "it is"),
	re("we're", `\bwe`+apos+`re\b`, "we are"),
	re("they're", `\bthey`+apos+`?re\b`, "they are"),

	// have
	re("i've", `\bi`+apos+`?ve\b`, "i have"),
	re("you've", `\byou`+apos+`?ve\b`, "you have"),
	re("we've", `\bwe`+apos+`?ve\b`, "we have"),
	re("they've", `\bthey`+apos+`?ve\b`, "they have"),

	// will
	re("i'll", `\bi`+apos+`ll\b`, "i will"),
	re("you'll", `\byou`+apos+`?ll\b`, "you will"),
	re("he'll", `\bhe`+apos+`ll\b`, "he will"),
	re("she'll", `\bshe`+apos+`ll\b`, "she will"),
	re("we'll", `\bwe`+apos+`ll\b`, "we will"),
	re("they'll", `\bthey`+apos+`?ll\b`, "they will"),

	// would
	re("i'd", `\bi`+apos+`d\b`, "i would"),
	re("you'd", `\byou`+apos+`?d\b`, "you would"),
	re("he'd", `\bhe`+apos+`?d\b`, "he would"),
	re("she'd", `\bshe`+apos+`d\b`, "she would"),
	re("we'd", `\bwe`+apos+`d\b`, "we would"),
	re("they'd", `\bthey`+apos+`?d\b`, "they would"),

	// negation
	re("can't", `\bcan`+apos+`?t\b`, "cannot"),
	re("won't", `\bwon`+apos+`?t\b`, "will not"),
	re("don't", `\bdon`+apos+`?t\b`, "do not"),
	re("doesn't", `\bdoesn`+apos+`?t\b`, "does not"),
	re("didn't", `\bdidn`+apos+`?t\b`, "did not"),
	re("isn't", `\bisn`+apos+`?t\b`, "is not"),
	re("aren't", `\baren`+apos+`?t\b`, "are not"),
	re("wasn't", `\bwasn`+apos+`?t\b`, "was not"),
	re("weren't", `\bweren`+apos+`?t\b`, "were not"),

	// greetings and questions
	re("how's it going", `\bhow(`+apos+`?s|\s+is)\s+it\s+going\b`, "how are you"),
	re("what's", `\bwhat`+apos+`?s\b`, "what is"),

	// future and intent
	re("going to", `\b(am|are|is)\s+going\s+to\b`, "will"),
	re("gonna", `\b((am|are|is)\s+)?gonna\b`, "will"),
	re("wanna", `\bwanna\b`, "want to"),

	// yes / no
	re("yes", `\b(yes|yeah|yep|yup|ya)\b`, "yes"),
	re("no", `\b(no|nah|nope)\b`, "no"),
	re("okay", `\b(okay|ok)\b`, "okay"),

	// degree
	re("kind of", `\b(kind\s+of|kinda|sort\s+of|sorta)\b`, "kind of"),
	re("a little", `\b(a\s+bit|a\s+little|bit|little)\b`, "a little"),

	// time
	re("now", `\b(right\s+now|now)\b`, "now"),
	re("later", `\blater\s+on\b`, "later"),
	re("tonight", `\b(later\s+tonight|tonight)\b`, "tonight"),
	re("early", `\b(early\s+on|quite\s+early|earlier\s+than\s+expected)\b`, "early"),
	re("late", `\brunning\s+late\b`, "late"),

	// motion
	re("coming", `\bon\s+the\s+way\b`, "coming"),
	re("come", `\b(come|arrive)\b`, "come"),
	re("go", `\b(go|leave|head\s+off)\b`, "go"),
	re("return", `\b(get\s+back|return)\b`, "return"),

	// communication
	re("talk", `\b(talk|chat)\b`, "talk"),
	re("message", `\b(text|message|dm)\b`, "message"),

	// quality
	re("good", `\b(good|tasty)\b`, "good"),

	// fillers and intensifiers carry no translatable content
	re("fillers", `\b(please|pls|plz|actually|just|like|right|really|very|so|super)\b`, ""),
}

// Derivational prefixes are stripped only when a base of at least four
// letters remains, which keeps words like "berapa", "bersih" and "terima".
var prefixRe = regexp.MustCompile(`\b(ber|di|ter)(\w{4,})\b`)

func stripPrefixes(s string) string {
	return prefixRe.ReplaceAllString(s, "${2}")
}

var hyphenPairRe = regexp.MustCompile(`\b\w+-\w+\b`)

// collapseReduplication turns "anak-anak" into "anak". RE2 has no
// backreferences so the halves are compared by hand.
func collapseReduplication(s string) string {
	return hyphenPairRe.ReplaceAllStringFunc(s, func(m string) string {
		for i := 0; i < len(m); i++ {
			if m[i] == '-' {
				if m[:i] == m[i+1:] {
					return m[:i]
				}
				break
			}
		}
		return m
	})
}

// idRules is ordered: question words and greetings, pronouns, negation,
// aspect, degree, time, motion, intent, then particles, affixes and
// reduplication.
var idRules = []rule{
	// question words
	re("bagaimana", `\b(gimana|bagaimana)\b`, "bagaimana"),
	re("kenapa", `\b(kenapa|mengapa)\b`, "kenapa"),
	re("dimana", `\b(di\s+mana|dimana)\b`, "dimana"),
	re("kabar", `\b(apa|bagaimana)\s+kabar(nya)?\b`, "kabar"),

	// pronouns
	re("aku", `\b(aku|saya|gue|gua|gw)\b`, "aku"),
	re("kamu", `\b(kamu|kau|anda|loe|lu|lo)\b`, "kamu"),
	re("kita", `\b(kita|kami)\b`, "kita"),

	// negation
	re("tidak", `\b(ga|gak|nggak|enggak|engga|tak|ndak)\b`, "tidak"),

	// aspect
	re("sudah", `\b(udah|udh|sudah)\b`, "sudah"),
	re("sedang", `\b(lagi|sedang)\b`, "sedang"),

	// degree
	re("banget", `\b(banget|bgt|sekali)\b`, "banget"),
	re("sedikit", `\b(dikit|sedikit)\b`, "sedikit"),

	// time
	re("sekarang", `\b(sekarang|skrng|skrg)\b`, "sekarang"),
	re("nanti", `\b(ntar|entar)\b`, "nanti"),
	re("dulu", `\b(tadi|dulu)\b`, "dulu"),
	re("malam", `\bnanti\s+malam\b`, "malam"),
	re("sore", `\bpetang\b`, "sore"),
	re("pagi", `\b(pagi\s+pagi|dini\s+hari|subuh)\b`, "pagi"),
	re("lebih cepat", `\blebih\s+awal\b`, "lebih cepat"),

	// motion
	re("sampai", `\b(datang|sampai)\b`, "sampai"),
	re("pergi", `\b(pergi|berangkat)\b`, "pergi"),
	re("pulang", `\b(pulang|balik)\b`, "pulang"),

	// intent
	re("mau", `\b(mau|pengen|pengin|ingin)\b`, "mau"),

	// communication
	re("bicara", `\b(ngobrol|bicara|omong)\b`, "bicara"),
	re("pesan", `\b(chat|ngechat|ngirim\s+pesan)\b`, "pesan"),

	re("saja", `\baja\b`, "saja"),

	// tone particles
	re("particles", `\b(kok|nih+|dong|sih|deh|lah)\b`, ""),
	re("ya", `\b(ya|yah|lho)\b`, ""),

	fn("prefixes", stripPrefixes),
	fn("reduplication", collapseReduplication),
}

// optionalTokens may be missing from an answer without failing it.
var optionalTokens = map[string]bool{
	"kok": true, "nih": true, "dong": true, "sih": true,
	"deh": true, "akan": true, "ya": true, "yah": true,
}

// IsOptional reports whether a canonical token carries only tone.
func IsOptional(token string) bool {
	return optionalTokens[token]
}
