package db

import (
	"context"
	"github.com/uptrace/bun"
)

func InsertLead(ctx context.Context, connection bun.IDB, lead *LeadModel) error {
	_, err := connection.NewInsert().Model(lead).Exec(ctx)

	return err
}

func GetLeads(ctx context.Context, connection bun.IDB, limit int) (leads []*LeadModel, err error) {
	err = connection.NewSelect().
		Model(&leads).
		Order("l.created_at DESC").
		Limit(limit).
		Scan(ctx)

	return leads, err
}

func DeleteLeads(ctx context.Context, connection bun.IDB) (int, error) {
	res, err := connection.NewDelete().Model((*LeadModel)(nil)).Where("1 = 1").Exec(ctx)
	if err != nil {
		return 0, err
	}

	c, err := res.RowsAffected()
	return int(c), err
}

// DeleteLeadsByGuest removes leads whose guest name or phone equals key.
func DeleteLeadsByGuest(ctx context.Context, connection bun.IDB, key string) (int, error) {
	res, err := connection.NewDelete().
		Model((*LeadModel)(nil)).
		Where("guest_name = ? OR guest_phone = ?", key, key).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	c, err := res.RowsAffected()
	return int(c), err
}
