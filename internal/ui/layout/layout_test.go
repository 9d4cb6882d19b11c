package layout

import (
	"strings"
	"testing"
)

func TestRenderHeaderShowsStatus(t *testing.T) {
	out := RenderHeader("Practice", Status{Points: 1250, Rank: "GOLD", Streak: 4}, 100)

	for _, want := range []string{"kartu", "Practice", "GOLD", "1250 pts", "streak 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"selamat pagi", 20, "selamat pagi"},
		{"selamat pagi", 8, "selamat…"},
		{"apa", 1, "…"},
		{"apa", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d, want 24", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
}
