package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/kartu/internal/item"
)

const itemStatsTable = "item_stats"

// itemStatsRepo implements ItemStatsRepo on the item_stats table.
type itemStatsRepo struct {
	drv *entsql.Driver
}

func (r *itemStatsRepo) Get(ctx context.Context, mode, id string) (item.Stats, error) {
	q, args := builder().
		Select("points", "weight", "fail_streak").
		From(entsql.Table(itemStatsTable)).
		Where(entsql.And(entsql.EQ("mode", mode), entsql.EQ("item_id", id))).
		Query()

	var (
		st    item.Stats
		found bool
	)
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(&st.Points, &st.Weight, &st.FailStreak)
	})
	if err != nil {
		return item.Stats{}, fmt.Errorf("get item stats %s: %w", id, err)
	}
	if found {
		return st, nil
	}

	st = item.DefaultStats()
	if err := r.Save(ctx, mode, id, st); err != nil {
		return item.Stats{}, err
	}
	return st, nil
}

func (r *itemStatsRepo) Save(ctx context.Context, mode, id string, st item.Stats) error {
	if err := upsertItemStats(ctx, r.drv, mode, id, st); err != nil {
		return fmt.Errorf("save item stats %s: %w", id, err)
	}
	return nil
}

func (r *itemStatsRepo) SaveMany(ctx context.Context, mode string, stats map[string]item.Stats) error {
	if len(stats) == 0 {
		return nil
	}
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for id, st := range stats {
		if err := upsertItemStats(ctx, tx, mode, id, st); err != nil {
			tx.Rollback()
			return fmt.Errorf("save item stats %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit item stats: %w", err)
	}
	return nil
}

func (r *itemStatsRepo) All(ctx context.Context, mode string) (map[string]item.Stats, error) {
	q, args := builder().
		Select("item_id", "points", "weight", "fail_streak").
		From(entsql.Table(itemStatsTable)).
		Where(entsql.EQ("mode", mode)).
		Query()

	out := make(map[string]item.Stats)
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		var (
			id string
			st item.Stats
		)
		if err := rows.Scan(&id, &st.Points, &st.Weight, &st.FailStreak); err != nil {
			return err
		}
		out[id] = st
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load item stats: %w", err)
	}
	return out, nil
}

func (r *itemStatsRepo) Reset(ctx context.Context, mode string) error {
	q, args := builder().Delete(itemStatsTable).Where(entsql.EQ("mode", mode)).Query()
	if err := exec(ctx, r.drv, q, args); err != nil {
		return fmt.Errorf("reset item stats: %w", err)
	}
	return nil
}

func upsertItemStats(ctx context.Context, drv dialect.ExecQuerier, mode, id string, st item.Stats) error {
	q, args := builder().
		Insert(itemStatsTable).
		Columns("mode", "item_id", "points", "weight", "fail_streak", "updated_at").
		Values(mode, id, st.Points, st.Weight, st.FailStreak, time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("mode", "item_id"), entsql.ResolveWithNewValues()).
		Query()
	return exec(ctx, drv, q, args)
}
