package normalize

import (
	"reflect"
	"testing"
)

func TestNormalize_English(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"I'm hungry!", "i am hungry"},
		{"I’m hungry", "i am hungry"},
		{"im hungry", "i am hungry"},
		{"I can't go", "i cannot go"},
		{"They don't know.", "they do not know"},
		{"gonna eat", "will eat"},
		{"I'm gonna eat", "i will eat"},
		{"I am going to eat", "i will eat"},
		{"Yeah, okay", "yes okay"},
		{"yep ok", "yes okay"},
		{"Please just sit", "sit"},
		{"really very good", "good"},
		{"kinda tired", "kind of tired"},
		{"sort of tired", "kind of tired"},
		{"a bit tired", "a little tired"},
		{"a little tired", "a little tired"},
		{"How's it going?", "how are you"},
		{"how is it going", "how are you"},
		{"What's that?", "what is that"},
		{"I'm on the way", "i am coming"},
		{"right now", "now"},
		{"text me later on", "message me later"},
		{`He said "hello" to me`, "he said to me"},
		{"It's 'sort of' fine", "it is fine"},
		{"well", "well"},
		{"were", "were"},
		{"well-known", "well known"},
		{"  many   spaces  ", "many spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input, EN)
		if got != tt.want {
			t.Errorf("Normalize(%q, EN) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_Indonesian(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Saya tidak mau", "aku tidak mau"},
		{"Gue nggak mau, dong!", "aku tidak mau"},
		{"Anda mau pergi?", "kamu mau pergi"},
		{"Kami sudah makan", "kita sudah makan"},
		{"Udah makan belum?", "sudah makan belum"},
		{"Aku lagi makan", "aku sedang makan"},
		{"Enak banget", "enak banget"},
		{"enak sekali", "enak banget"},
		{"Aku lapar sih", "aku lapar"},
		{"Iya ya", "iya"},
		{"Mau ke mana aja?", "mau ke mana saja"},
		{"Apa kabar?", "kabar"},
		{"Gimana kabarnya?", "kabar"},
		{"ntar malam", "malam"},
		{"Aku berangkat sekarang", "aku pergi sekarang"},
		{"pengen pulang", "mau pulang"},
		{"anak-anak", "anak"},
		{"berjalan-jalan", "jalan"},
		{"bermain", "main"},
		{"dikirim", "kirim"},
		{"tertawa", "tawa"},
		{"bersih", "bersih"},
		{"berapa", "berapa"},
		{"terima kasih", "terima kasih"},
		{"dia", "dia"},
		{"Dia di mana?", "dia mana"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input, ID)
		if got != tt.want {
			t.Errorf("Normalize(%q, ID) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	corpus := []string{
		"I'm hungry!", "I can't go", "How's it going?", "a little bit tired",
		"It's 'sort of' fine", "He'll be back later on", "kinda sorta",
		"you're gonna love it", "Please, just text me right now",
		"Gue nggak mau, dong!", "Apa kabar?", "berjalan-jalan", "dididiam",
		"berdiskusi", "Aku lagi di rumah, nih", "ntar malam aja ya",
		"rock'n'roll", "x' ,'y", "— dash – and - hyphen —", "¿Qué? ¡Sí!",
		"", "   ",
	}
	for _, lang := range []Lang{EN, ID} {
		for _, s := range corpus {
			once := Normalize(s, lang)
			twice := Normalize(once, lang)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q (%s): %q -> %q", s, lang, once, twice)
			}
		}
	}
}

func TestForms_Enclitics(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"rumahku besar", []string{"rumahku besar", "rumah ku besar", "rumah aku besar"}},
		{"namanya", []string{"namanya", "nama dia"}},
		{"bukumu dan rumahnya", []string{
			"bukumu dan rumahnya",
			"buku kamu dan rumahnya",
			"bukumu dan rumah dia",
			"buku kamu dan rumah dia",
		}},
		{"bertemu", []string{"temu"}},
		{"buku", []string{"buku"}},
	}
	for _, tt := range tests {
		got := Forms(tt.input, ID)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Forms(%q, ID) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestForms_EnglishHasNoEnclitics(t *testing.T) {
	got := Forms("menu", EN)
	if !reflect.DeepEqual(got, []string{"menu"}) {
		t.Errorf("Forms(%q, EN) = %v", "menu", got)
	}
	if Forms("", EN) != nil {
		t.Error("expected nil forms for empty input")
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		input string
		lang  Lang
		want  []string
	}{
		{"(Dia/Mereka) datang", EN, []string{"dia datang", "mereka datang"}},
		{"(Dia/Mereka) datang", ID, []string{"dia sampai", "mereka sampai"}},
		{"makan (pagi ini)", ID, []string{"makan"}},
		{"", EN, nil},
		{"   ", ID, nil},
	}
	for _, tt := range tests {
		got := Expand(tt.input, tt.lang)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Expand(%q, %s) = %v, want %v", tt.input, tt.lang, got, tt.want)
		}
	}
}

func TestExpandBrackets(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"no brackets", []string{"no brackets"}},
		{"(dia/mereka) datang", []string{"dia datang", "mereka datang"}},
		{"makan (pagi ini)", []string{"makan"}},
		{"(a/b) dan (c/d)", []string{"a dan c", "a dan d", "b dan c", "b dan d"}},
		{"saya (formal) ( kamu / anda )", []string{"saya kamu", "saya anda"}},
		{"unclosed (group", []string{"unclosed (group"}},
	}
	for _, tt := range tests {
		got := ExpandBrackets(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExpandBrackets(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRuleTables(t *testing.T) {
	// Each rule's canonical output must be stable under its own table.
	for _, tc := range []struct {
		lang  Lang
		rules []rule
	}{{EN, enRules}, {ID, idRules}} {
		for _, r := range tc.rules {
			if r.apply != nil || r.repl == "" {
				continue
			}
			if got := Normalize(r.repl, tc.lang); Normalize(got, tc.lang) != got {
				t.Errorf("%s rule %q output %q is not stable", tc.lang, r.name, r.repl)
			}
		}
	}
}

func TestIsOptional(t *testing.T) {
	for _, tok := range []string{"kok", "nih", "dong", "sih", "deh", "akan", "ya", "yah"} {
		if !IsOptional(tok) {
			t.Errorf("IsOptional(%q) = false, want true", tok)
		}
	}
	if IsOptional("aku") {
		t.Error("IsOptional(\"aku\") = true, want false")
	}
}
