package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kartu/internal/item"
)

const samplePack = `{
  "$meta": {"version": "v1.2.0"},
  "Zeta": {
    "words": [
      {"indo": " makan ", "english": " to eat "},
      {"indonesian": "minum", "eng": "to drink"},
      {"indo": "kosong", "english": ""},
      {"indo": "deh", "english": "(softener)"}
    ],
    "sentences": [
      {"indo": "Rumah-nya besar.", "english": "His house is big."}
    ]
  },
  "Greetings & Openings": {
    "formal": {
      "words": [{"indo": "halo", "english": "hello"}, {"indo": "selamat pagi", "english": "good morning"}]
    },
    "informal": {
      "words": [{"indo": "halo", "english": "hello"}, {"indo": "hai", "english": "hi"}],
      "sentences": [{"indo": "Lagi ngapain?", "english": "What are you doing?"}]
    }
  }
}`

func byID(p *Pack) map[string]*item.Item {
	out := map[string]*item.Item{}
	for _, it := range p.Items {
		out[it.ID] = it
	}
	return out
}

func TestLoad_ModulesKeepFileOrder(t *testing.T) {
	p, err := Load([]byte(samplePack))
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", p.Version)
	assert.Equal(t, []string{"Zeta", "Greetings & Openings"}, p.ModuleNames())
}

func TestLoad_LegacyModule(t *testing.T) {
	p, err := Load([]byte(samplePack))
	require.NoError(t, err)
	items := byID(p)

	eat := items["word::makan::to eat"]
	require.NotNil(t, eat)
	assert.Equal(t, "Zeta", eat.Module)
	assert.Equal(t, item.RegisterNeutral, eat.Register)
	assert.Equal(t, "to eat", eat.Eng)

	assert.NotNil(t, items["word::minum::to drink"], "indonesian/eng aliases")
	assert.Nil(t, items["word::kosong::"], "empty side is skipped")

	house := items["sentence::rumahnya besar.::his house is big."]
	require.NotNil(t, house)
	assert.Equal(t, "Rumah-nya besar.", house.IndoRaw)
	assert.Equal(t, "Rumahnya besar.", house.Indo)

	assert.True(t, items["word::deh::(softener)"].ExcludeFromPool)

	zeta, ok := p.Module("Zeta")
	require.True(t, ok)
	assert.Equal(t, 3, zeta.Words)
	assert.Equal(t, 1, zeta.Sentences)
	assert.Equal(t, CategoryOther, zeta.Category)
}

func TestLoad_RegisterResolution(t *testing.T) {
	p, err := Load([]byte(samplePack))
	require.NoError(t, err)
	items := byID(p)

	halo := 0
	for _, it := range p.Items {
		if it.ID == "word::halo::hello" {
			halo++
		}
	}
	assert.Equal(t, 1, halo, "shared entry collapses to one item")
	assert.Equal(t, item.RegisterNeutral, items["word::halo::hello"].Register)
	assert.Equal(t, item.RegisterFormal, items["word::selamat pagi::good morning"].Register)
	assert.Equal(t, item.RegisterInformal, items["word::hai::hi"].Register)
	assert.Equal(t, item.RegisterInformal, items["sentence::lagi ngapain?::what are you doing?"].Register)

	g, ok := p.Module("Greetings & Openings")
	require.True(t, ok)
	assert.Equal(t, 3, g.Words)
	assert.Equal(t, 1, g.Sentences)
	assert.Equal(t, "Daily Conversation", g.Category)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"a": `},
		{"top-level array", `[]`},
		{"module not object", `{"A": 3}`},
		{"words not array", `{"A": {"words": {"indo": "x"}}}`},
		{"entry without indo", `{"A": {"words": [{"english": "x"}]}}`},
		{"unknown block key", `{"A": {"formal": {"words": []}, "slang": {}}}`},
		{"bad version", `{"$meta": {"version": "latest"}, "A": {"words": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidContent), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePack), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, p.Modules, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDefaultPack(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, p.Version)
	assert.NotEmpty(t, p.Items)

	seen := map[string]bool{}
	for _, it := range p.Items {
		key := it.Module + "|" + it.ID
		assert.False(t, seen[key], "duplicate item %s", key)
		seen[key] = true
		assert.NotEmpty(t, it.Indo)
		assert.NotEmpty(t, it.Eng)
	}

	jakarta, ok := p.Module("Chat Softeners")
	require.True(t, ok)
	assert.True(t, jakarta.Jakarta)
}

func TestCatalog(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	cats := p.Catalog()
	require.NotEmpty(t, cats)

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
		assert.NotEmpty(t, c.Modules)
	}
	assert.Equal(t, []string{"Daily Conversation", "Movement & Plans", "Statements & Grammar", "Other"}, names)

	total := 0
	for _, c := range cats {
		total += c.Total()
	}
	assert.Equal(t, len(p.Items), total)
	assert.Equal(t, "Greetings & Openings", cats[0].Modules[0].Name)
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "Movement & Plans", CategoryOf("Goodbyes & Polite Exits"))
	assert.Equal(t, "Statements & Grammar", CategoryOf("Statements & Descriptions"))
	assert.Equal(t, CategoryOther, CategoryOf("Food & Drink"))
}
