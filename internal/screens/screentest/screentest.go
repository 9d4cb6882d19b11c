// Package screentest builds packs, stores and controllers for screen tests.
package screentest

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/selection"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/store"
)

// PackJSON has two categorised modules and one uncategorised Jakarta module.
const PackJSON = `{
  "Greetings & Openings": {
    "formal": {
      "words": [{"indo": "selamat pagi", "english": "good morning"}],
      "sentences": [{"indo": "Apa kabar?", "english": "How are you?"}]
    },
    "informal": {
      "words": [{"indo": "hai", "english": "hi"}]
    }
  },
  "Movement & Arrival": {
    "words": [{"indo": "pergi", "english": "to go"}, {"indo": "datang", "english": "to come"}],
    "sentences": [{"indo": "Aku sudah sampai.", "english": "I have arrived."}]
  },
  "Jakarta Pronouns (Gue / Lu)": {
    "words": [{"indo": "gue", "english": "I (casual)"}],
    "sentences": [{"indo": "Gue otw nih.", "english": "I'm on my way."}]
  }
}`

// Pack loads PackJSON.
func Pack(t *testing.T) *content.Pack {
	t.Helper()
	p, err := content.Load([]byte(PackJSON))
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	return p
}

// Store opens a store in a temp dir.
func Store(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "kartu.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Controller returns a started controller over pack with a fixed seed.
func Controller(t *testing.T, pack *content.Pack, st *store.Store) *session.Controller {
	t.Helper()
	ctrl := session.New(pack.Items, st.ItemStats(), st.Progress(),
		session.WithRand(rand.New(rand.NewPCG(3, 5))),
		session.WithSettings(st.Settings()))
	if _, err := ctrl.Start(context.Background()); err != nil && !errors.Is(err, selection.ErrEmptyPool) {
		t.Fatalf("start session: %v", err)
	}
	return ctrl
}

// Key returns a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a key press for a special key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl returns a ctrl+r key press.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}
