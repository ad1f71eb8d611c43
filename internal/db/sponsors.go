package db

import (
	"context"
	"github.com/uptrace/bun"
)

// MaxSponsorSortOrder returns the greatest sort order used in slot, 0 for an empty slot.
func MaxSponsorSortOrder(ctx context.Context, connection bun.IDB, slot string) (int, error) {
	var m int
	err := connection.NewSelect().
		Model((*SponsorMediaModel)(nil)).
		ColumnExpr("COALESCE(MAX(sort_order), 0)").
		Where("slot = ?", slot).
		Scan(ctx, &m)

	return m, err
}

func InsertSponsorMedia(ctx context.Context, connection bun.IDB, media *SponsorMediaModel) error {
	_, err := connection.NewInsert().Model(media).Exec(ctx)

	return err
}

// UpdateSponsorMedia rewrites the editable fields; sort order is kept.
func UpdateSponsorMedia(ctx context.Context, connection bun.IDB, media *SponsorMediaModel) (affected bool, err error) {
	res, err := connection.NewUpdate().
		Model(media).
		Column("slot", "media_kind", "title", "url", "is_active").
		WherePK().
		Exec(ctx)

	return rowsAffected(res, err)
}

func GetSponsorMedia(ctx context.Context, connection bun.IDB, activeOnly bool) (media []*SponsorMediaModel, err error) {
	q := connection.NewSelect().Model(&media)
	if activeOnly {
		q = q.Where("sm.is_active = ?", true)
	}
	err = q.Order("sm.slot ASC", "sm.sort_order ASC", "sm.created_at ASC").Scan(ctx)

	return media, err
}

func CountSponsorMedia(ctx context.Context, connection bun.IDB) (int, error) {
	return connection.NewSelect().Model((*SponsorMediaModel)(nil)).Count(ctx)
}

// CountActiveSponsorMediaBySlot returns the number of active items per slot.
func CountActiveSponsorMediaBySlot(ctx context.Context, connection bun.IDB) (map[string]int, error) {
	var rows []struct {
		Slot  string `bun:"slot"`
		Count int    `bun:"count"`
	}
	err := connection.NewSelect().
		Model((*SponsorMediaModel)(nil)).
		Column("slot").
		ColumnExpr("COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("slot").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Slot] = r.Count
	}

	return counts, nil
}

func DeleteSponsorMedia(ctx context.Context, connection bun.IDB, mediaId string) (affected bool, err error) {
	res, err := connection.NewDelete().
		Model((*SponsorMediaModel)(nil)).
		Where("media_id = ?", mediaId).
		Exec(ctx)

	return rowsAffected(res, err)
}
