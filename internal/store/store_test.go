package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kartu/internal/item"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kartu.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrate_RecordsVersion(t *testing.T) {
	s := openTestStore(t)
	v, err := s.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
}

func TestMigrate_ReopenIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kartu.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ItemStats().Save(ctx, "casual", "word::aku::i", item.Stats{Points: 120, Weight: 80}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	st, err := s.ItemStats().Get(ctx, "casual", "word::aku::i")
	require.NoError(t, err)
	assert.Equal(t, item.Stats{Points: 120, Weight: 80}, st)
}

func TestMigrate_RefusesNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kartu.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.DB().Exec(`UPDATE meta SET value = 'v9.0.0' WHERE key = 'schema_version'`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	assert.Error(t, err)
}

func TestItemStats_GetCreatesDefault(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemStats()
	ctx := context.Background()

	st, err := repo.Get(ctx, "casual", "word::aku::i")
	require.NoError(t, err)
	assert.Equal(t, item.DefaultStats(), st)

	all, err := repo.All(ctx, "casual")
	require.NoError(t, err)
	assert.Contains(t, all, "word::aku::i", "default record should be persisted")
}

func TestItemStats_SaveAndModes(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemStats()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "casual", "word::aku::i", item.Stats{Points: 106, Weight: 94}))
	require.NoError(t, repo.Save(ctx, "casual", "word::aku::i", item.Stats{Points: 101, Weight: 99, FailStreak: 1}))
	require.NoError(t, repo.Save(ctx, "ranked", "word::aku::i", item.Stats{Points: 50, Weight: 150}))

	st, err := repo.Get(ctx, "casual", "word::aku::i")
	require.NoError(t, err)
	assert.Equal(t, item.Stats{Points: 101, Weight: 99, FailStreak: 1}, st)

	st, err = repo.Get(ctx, "ranked", "word::aku::i")
	require.NoError(t, err)
	assert.Equal(t, 50, st.Points)
}

func TestItemStats_SaveManyAndReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemStats()
	ctx := context.Background()

	batch := map[string]item.Stats{
		"word::aku::i":    {Points: 110, Weight: 90},
		"word::kamu::you": {Points: 90, Weight: 110, FailStreak: 2},
	}
	require.NoError(t, repo.SaveMany(ctx, "casual", batch))
	require.NoError(t, repo.Save(ctx, "ranked", "word::aku::i", item.DefaultStats()))

	all, err := repo.All(ctx, "casual")
	require.NoError(t, err)
	assert.Equal(t, batch, all)

	require.NoError(t, repo.Reset(ctx, "casual"))
	all, err = repo.All(ctx, "casual")
	require.NoError(t, err)
	assert.Empty(t, all)

	ranked, err := repo.All(ctx, "ranked")
	require.NoError(t, err)
	assert.Len(t, ranked, 1, "reset must not touch other modes")
}

func TestProgress_ModuleAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.Progress()
	ctx := context.Background()

	outcomes := []bool{true, true, false, true}
	var m ModuleStats
	var err error
	for _, ok := range outcomes {
		m, err = repo.RecordModuleAttempt(ctx, "casual", "Greetings", ok)
		require.NoError(t, err)
	}

	assert.Equal(t, ModuleStats{Module: "Greetings", Attempted: 4, Correct: 3, CurrentStreak: 1, BestStreak: 2}, m)
	assert.InDelta(t, 0.75, m.Accuracy(), 1e-9)

	all, err := repo.ModuleStats(ctx, "casual")
	require.NoError(t, err)
	assert.Equal(t, m, all["Greetings"])
}

func TestProgress_Lifetime(t *testing.T) {
	s := openTestStore(t)
	repo := s.Progress()
	ctx := context.Background()

	empty, err := repo.Lifetime(ctx, "casual")
	require.NoError(t, err)
	assert.Equal(t, LifetimeStats{}, empty)

	in := LifetimeStats{
		Total: 10, Complete: 7, Failed: 3, BestStreak: 4,
		Words:     Tally{Correct: 5, Total: 6},
		Sentences: Tally{Correct: 2, Total: 4},
	}
	require.NoError(t, repo.SaveLifetime(ctx, "casual", in))
	require.NoError(t, repo.AppendStreak(ctx, "casual", 4))
	require.NoError(t, repo.AppendStreak(ctx, "casual", 2))
	require.NoError(t, repo.AppendStreak(ctx, "casual", 0))

	got, err := repo.Lifetime(ctx, "casual")
	require.NoError(t, err)
	want := in
	want.Streaks = 2
	want.AverageStreak = 3
	assert.Equal(t, want, got)

	require.NoError(t, repo.Reset(ctx, "casual"))
	got, err = repo.Lifetime(ctx, "casual")
	require.NoError(t, err)
	assert.Equal(t, LifetimeStats{}, got)
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)
	repo := s.Settings()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, SettingShowSlang)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, SettingShowSlang, "true"))
	require.NoError(t, repo.Set(ctx, SettingShowSlang, "false"))

	v, ok, err := repo.Get(ctx, SettingShowSlang)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	start := time.Now().Add(-time.Second)

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "chat",
		InputTokens: 10, OutputTokens: 20, LatencyMs: 300, Success: true,
		RequestBody: `{"q":1}`, ResponseBody: `{"a":1}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint",
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "hint", events[0].Purpose, "newest first")
	assert.False(t, events[0].Success)

	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "chat", From: start, Limit: 5})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, 20, events[0].OutputTokens)

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"a":1}`, e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("KARTU_DB", filepath.Join(dir, "env", "custom.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "custom.db"), p)

	t.Setenv("KARTU_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kartu", "kartu.db"), p)
}
