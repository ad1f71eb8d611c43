package db

import (
	"context"
	"database/sql"
	"errors"
	"github.com/uptrace/bun"
)

// NextSortOrder hands out the next sort order of scope: one past the larger of
// the stored counter and currentMax. Callers run it inside a transaction.
func NextSortOrder(ctx context.Context, connection bun.IDB, scope string, currentMax int) (int, error) {
	var counter int
	err := connection.NewSelect().
		Model((*SortCounterModel)(nil)).
		Column("value").
		Where("scope = ?", scope).
		Scan(ctx, &counter)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	next := max(counter, currentMax) + 1

	_, err = connection.NewInsert().
		Model(&SortCounterModel{Scope: scope, Value: next}).
		On("CONFLICT (scope) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return next, nil
}
