package modules

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/screens/screentest"
)

func newScreen(t *testing.T) *ModulesScreen {
	t.Helper()
	pack := screentest.Pack(t)
	ctrl := screentest.Controller(t, pack, screentest.Store(t))
	return New(ctrl, pack)
}

// press sends key and applies the resulting filter change.
func press(t *testing.T, s *ModulesScreen, key tea.KeyPressMsg) {
	t.Helper()
	_, cmd := s.Update(key)
	if cmd == nil {
		t.Fatalf("expected a command for %q", key.String())
	}
	s.Update(cmd())
}

func TestModulesScreen_RowsFollowCatalog(t *testing.T) {
	s := newScreen(t)

	var headers []string
	for _, r := range s.rows {
		if r.isHeader() {
			headers = append(headers, r.category)
		}
	}
	want := []string{"Daily Conversation", "Movement & Plans", content.CategoryOther}
	if strings.Join(headers, "|") != strings.Join(want, "|") {
		t.Errorf("headers = %v, want %v", headers, want)
	}
	if s.rows[s.cursor].module.Name != "Greetings & Openings" {
		t.Errorf("expected cursor on first module, got %q", s.rows[s.cursor].module.Name)
	}
}

func TestModulesScreen_CursorSkipsHeaders(t *testing.T) {
	s := newScreen(t)

	s.Update(screentest.Key('j'))
	if got := s.rows[s.cursor].module.Name; got != "Movement & Arrival" {
		t.Errorf("expected Movement & Arrival, got %q", got)
	}
	s.Update(screentest.Key('j'))
	s.Update(screentest.Key('j'))
	if got := s.rows[s.cursor].module.Name; got != "Jakarta Pronouns (Gue / Lu)" {
		t.Errorf("expected cursor to stay on last module, got %q", got)
	}
	s.Update(screentest.Key('k'))
	s.Update(screentest.Key('k'))
	s.Update(screentest.Key('k'))
	if got := s.rows[s.cursor].module.Name; got != "Greetings & Openings" {
		t.Errorf("expected cursor to stay on first module, got %q", got)
	}
}

func TestModulesScreen_ToggleModule(t *testing.T) {
	s := newScreen(t)
	if got := s.ctrl.PoolSize(); got != 8 {
		t.Fatalf("expected 8 cards in the full pool, got %d", got)
	}

	press(t, s, screentest.Special(tea.KeyEnter))

	f := s.ctrl.Filter()
	if !f.Modules["Greetings & Openings"] || len(f.Modules) != 1 {
		t.Errorf("expected only Greetings & Openings active, got %v", f.Modules)
	}
	if got := s.ctrl.PoolSize(); got != 3 {
		t.Errorf("expected 3 cards, got %d", got)
	}

	// Toggling the last active module leaves an empty set, which means all.
	press(t, s, screentest.Special(tea.KeyEnter))
	if got := s.ctrl.PoolSize(); got != 8 {
		t.Errorf("expected the full pool again, got %d", got)
	}
}

func TestModulesScreen_WeakestAndAll(t *testing.T) {
	s := newScreen(t)

	press(t, s, screentest.Key('w'))
	if !s.ctrl.Filter().Weakest {
		t.Fatal("expected weakest mode")
	}
	if !strings.Contains(s.View(120, 30), "weakest 25") {
		t.Error("expected weakest scope in filter line")
	}

	press(t, s, screentest.Key('a'))
	f := s.ctrl.Filter()
	if f.Weakest || len(f.Modules) != 0 {
		t.Errorf("expected all modules, got %+v", f)
	}
}

func TestModulesScreen_CycleContentAndRegister(t *testing.T) {
	s := newScreen(t)

	press(t, s, screentest.Key('c'))
	if got := s.ctrl.Filter().Kind; got != content.KindWords {
		t.Errorf("Kind = %q, want words", got)
	}
	if got := s.ctrl.PoolSize(); got != 5 {
		t.Errorf("expected 5 word cards, got %d", got)
	}

	press(t, s, screentest.Key('r'))
	if got := s.ctrl.Filter().Register; got != content.RegisterFormal {
		t.Errorf("Register = %q, want formal", got)
	}
	// selamat pagi plus the three neutral words.
	if got := s.ctrl.PoolSize(); got != 4 {
		t.Errorf("expected 4 formal or neutral words, got %d", got)
	}
}

func TestModulesScreen_EmptyPool(t *testing.T) {
	s := newScreen(t)
	press(t, s, screentest.Special(tea.KeyEnter)) // Greetings & Openings only
	press(t, s, screentest.Key('c'))              // words
	press(t, s, screentest.Key('c'))              // sentences
	press(t, s, screentest.Key('r'))              // formal
	press(t, s, screentest.Key('r'))              // informal

	if !s.empty {
		t.Fatal("expected empty pool: the module has no informal sentences")
	}
	if !strings.Contains(s.View(120, 30), "No cards match") {
		t.Error("expected empty pool warning")
	}
}

func TestModulesScreen_ToggleJakarta(t *testing.T) {
	s := newScreen(t)
	press(t, s, screentest.Key('t'))
	if !s.ctrl.ShowJakarta() {
		t.Error("expected Jakarta tokens on")
	}
	if !strings.Contains(s.View(120, 30), "Jakarta tokens: on") {
		t.Error("expected Jakarta state in filter line")
	}
}

func TestModulesScreen_ViewMarksJakartaModules(t *testing.T) {
	view := newScreen(t).View(120, 30)
	if !strings.Contains(view, "Jakarta Pronouns (Gue / Lu) (JKT)") {
		t.Error("expected JKT flag on Jakarta module")
	}
	if !strings.Contains(view, "[x] Greetings & Openings") {
		t.Error("expected modules checked when all are active")
	}
}
