package grader

import (
	"reflect"
	"testing"

	"github.com/abhisek/kartu/internal/normalize"
)

func TestSplitVariants(t *testing.T) {
	tests := []struct {
		expected string
		want     []string
	}{
		{"aku", []string{"aku"}},
		{"  aku  ", []string{"aku"}},
		{"(dia/mereka) datang", []string{"dia datang", "mereka datang"}},
		{"makan (pagi ini)", []string{"makan"}},
		{"aku baik / i am fine", []string{"aku baik", "i am fine"}},
		{"hi / / hello /", []string{"hi", "hello"}},
		{"(saya/aku) makan / I eat", []string{"saya makan", "I eat", "aku makan"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := SplitVariants(tt.expected)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitVariants(%q) = %v, want %v", tt.expected, got, tt.want)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		user     string
		expected string
		want     bool
	}{
		// either language
		{"aku baik", "aku baik / i am fine", true},
		{"i am fine", "aku baik / i am fine", true},
		{"I'm fine", "aku baik / i am fine", true},

		// optional particles
		{"aku lapar", "aku lapar dong", true},
		{"lapar", "aku lapar", false},

		// register and slang
		{"gue lapar", "saya lapar", true},
		{"gak mau", "tidak mau", true},
		{"udah makan", "sudah makan", true},

		// order and extra words
		{"lapar aku", "aku lapar", true},
		{"aku sangat lapar", "aku lapar", true},

		// enclitics
		{"rumah aku", "rumahku", true},
		{"rumahku", "rumahku", true},
		{"nama dia", "namanya", true},

		// brackets
		{"mereka datang", "(dia/mereka) datang", true},
		{"kami datang", "(dia/mereka) datang", false},
		{"makan", "makan (pagi ini)", true},

		// contractions and fillers
		{"i cannot go", "I can't go", true},
		{"please sit", "sit", true},
		{"I will eat", "I'm gonna eat", true},
		{"I will eat", "I'm going to eat", true},
		{"I am going to eat", "I'm going to eat", true},

		// wrong answers
		{"kucing", "anjing", false},
		{"dog", "cat / kucing", false},

		// empty input
		{"", "aku", false},
		{"aku", "", false},
		{"   ", "aku", false},
	}
	for _, tt := range tests {
		got := IsCorrect(tt.user, tt.expected)
		if got != tt.want {
			t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.user, tt.expected, got, tt.want)
		}
	}
}

func TestGrade_ReportsVariantAndLang(t *testing.T) {
	r := Grade("i am fine", "aku baik / i am fine")
	if !r.Correct {
		t.Fatal("expected correct")
	}
	if r.Variant != "i am fine" {
		t.Errorf("Variant = %q, want %q", r.Variant, "i am fine")
	}
	if r.Lang != normalize.EN {
		t.Errorf("Lang = %q, want EN", r.Lang)
	}

	r = Grade("salah", "aku baik")
	if r.Correct || r.Variant != "" {
		t.Errorf("Grade = %+v, want zero result", r)
	}
}

func TestContainsRequired(t *testing.T) {
	tests := []struct {
		answer   string
		expected string
		want     bool
	}{
		{"aku lapar", "aku lapar", true},
		{"aku lapar", "aku lapar dong", true},
		{"lapar", "aku lapar", false},
		{"aku aku lapar", "lapar aku", true},
		{"anything", "", false},
		{"ya", "ya", true},
		{"aku", "ya", false},
	}
	for _, tt := range tests {
		got := ContainsRequired(tt.answer, tt.expected)
		if got != tt.want {
			t.Errorf("ContainsRequired(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
		}
	}
}

func TestInferLang(t *testing.T) {
	tests := []struct {
		text string
		want normalize.Lang
	}{
		{"Aku mau makan", normalize.ID},
		{"Dia sudah pulang.", normalize.ID},
		{"I want to eat", normalize.EN},
		{"Diamond", normalize.EN},
		{"", normalize.EN},
	}
	for _, tt := range tests {
		if got := InferLang(tt.text); got != tt.want {
			t.Errorf("InferLang(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
