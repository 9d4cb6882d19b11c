package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const settingsTable = "settings"

// Setting keys used by the app.
const (
	SettingShowSlang     = "show_slang"
	SettingContentFilter = "content_filter"
	SettingRegister      = "register_filter"
	SettingModules       = "active_modules"
)

type settingsRepo struct {
	drv *entsql.Driver
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	q, args := builder().
		Select("value").
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var (
		v     string
		found bool
	)
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(&v)
	})
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, found, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	q, args := builder().
		Insert(settingsTable).
		Columns("key", "value").
		Values(key, value).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if err := exec(ctx, r.drv, q, args); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
