package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	moduleStatsTable   = "module_stats"
	lifetimeStatsTable = "lifetime_stats"
	streaksTable       = "streaks"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	drv *entsql.Driver
}

func (r *progressRepo) ModuleStats(ctx context.Context, mode string) (map[string]ModuleStats, error) {
	q, args := builder().
		Select("module", "attempted", "correct", "current_streak", "best_streak").
		From(entsql.Table(moduleStatsTable)).
		Where(entsql.EQ("mode", mode)).
		Query()

	out := make(map[string]ModuleStats)
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		var m ModuleStats
		if err := rows.Scan(&m.Module, &m.Attempted, &m.Correct, &m.CurrentStreak, &m.BestStreak); err != nil {
			return err
		}
		out[m.Module] = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load module stats: %w", err)
	}
	return out, nil
}

func (r *progressRepo) RecordModuleAttempt(ctx context.Context, mode, module string, correct bool) (ModuleStats, error) {
	all, err := r.ModuleStats(ctx, mode)
	if err != nil {
		return ModuleStats{}, err
	}
	m := all[module]
	m.Module = module
	m.Attempted++
	if correct {
		m.Correct++
		m.CurrentStreak++
		m.BestStreak = max(m.BestStreak, m.CurrentStreak)
	} else {
		m.CurrentStreak = 0
	}

	q, args := builder().
		Insert(moduleStatsTable).
		Columns("mode", "module", "attempted", "correct", "current_streak", "best_streak").
		Values(mode, module, m.Attempted, m.Correct, m.CurrentStreak, m.BestStreak).
		OnConflict(entsql.ConflictColumns("mode", "module"), entsql.ResolveWithNewValues()).
		Query()
	if err := exec(ctx, r.drv, q, args); err != nil {
		return ModuleStats{}, fmt.Errorf("save module stats %s: %w", module, err)
	}
	return m, nil
}

func (r *progressRepo) Lifetime(ctx context.Context, mode string) (LifetimeStats, error) {
	q, args := builder().
		Select("total", "complete", "failed", "best_streak",
			"word_correct", "word_total", "sentence_correct", "sentence_total").
		From(entsql.Table(lifetimeStatsTable)).
		Where(entsql.EQ("mode", mode)).
		Query()

	var st LifetimeStats
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		return rows.Scan(&st.Total, &st.Complete, &st.Failed, &st.BestStreak,
			&st.Words.Correct, &st.Words.Total, &st.Sentences.Correct, &st.Sentences.Total)
	})
	if err != nil {
		return LifetimeStats{}, fmt.Errorf("load lifetime stats: %w", err)
	}

	q, args = builder().
		Select(entsql.Count("*"), "COALESCE(AVG(length), 0)").
		From(entsql.Table(streaksTable)).
		Where(entsql.EQ("mode", mode)).
		Query()
	err = query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		return rows.Scan(&st.Streaks, &st.AverageStreak)
	})
	if err != nil {
		return LifetimeStats{}, fmt.Errorf("load streaks: %w", err)
	}
	return st, nil
}

func (r *progressRepo) SaveLifetime(ctx context.Context, mode string, st LifetimeStats) error {
	q, args := builder().
		Insert(lifetimeStatsTable).
		Columns("mode", "total", "complete", "failed", "best_streak",
			"word_correct", "word_total", "sentence_correct", "sentence_total").
		Values(mode, st.Total, st.Complete, st.Failed, st.BestStreak,
			st.Words.Correct, st.Words.Total, st.Sentences.Correct, st.Sentences.Total).
		OnConflict(entsql.ConflictColumns("mode"), entsql.ResolveWithNewValues()).
		Query()
	if err := exec(ctx, r.drv, q, args); err != nil {
		return fmt.Errorf("save lifetime stats: %w", err)
	}
	return nil
}

func (r *progressRepo) AppendStreak(ctx context.Context, mode string, length int) error {
	if length <= 0 {
		return nil
	}
	q, args := builder().
		Insert(streaksTable).
		Columns("mode", "length", "ended_at").
		Values(mode, length, time.Now().UnixMilli()).
		Query()
	if err := exec(ctx, r.drv, q, args); err != nil {
		return fmt.Errorf("append streak: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context, mode string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, table := range []string{moduleStatsTable, lifetimeStatsTable, streaksTable} {
		q, args := builder().Delete(table).Where(entsql.EQ("mode", mode)).Query()
		if err := exec(ctx, tx, q, args); err != nil {
			tx.Rollback()
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}
