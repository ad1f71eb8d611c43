package db

import (
	"context"
	"database/sql"
	"errors"
	"github.com/uptrace/bun"
	"time"
)

// unit columns an admin edit rewrites; booking state is owned by UpdateUnitBooking
var unitEditableColumns = []string{
	"title", "property_type", "location", "rooms", "description",
	"youtube_url", "cover_image_url", "photo_urls_json",
	"contact_whatsapp", "contact_phone",
	"available_from", "available_to", "price_day", "price_week",
	"is_active", "updated_at",
}

func GetUnits(ctx context.Context, connection bun.IDB, activeOnly bool) (units []*UnitModel, err error) {
	q := connection.NewSelect().Model(&units)
	if activeOnly {
		q = q.Where("u.is_active = ?", true)
	}
	err = q.Order("u.unit_id ASC").Scan(ctx)

	return units, err
}

func GetUnit(ctx context.Context, connection bun.IDB, unitId string) (unit *UnitModel, exist bool, err error) {
	unit = new(UnitModel)
	err = connection.NewSelect().Model(unit).Where("u.unit_id = ?", unitId).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return unit, true, nil
}

// GetLastUnitId returns the greatest unit id. Longer ids sort after shorter
// ones so that PREFIX-10000 follows PREFIX-9999.
func GetLastUnitId(ctx context.Context, connection bun.IDB) (unitId string, exist bool, err error) {
	err = connection.NewSelect().
		Model((*UnitModel)(nil)).
		Column("unit_id").
		OrderExpr("LENGTH(unit_id) DESC").
		Order("unit_id DESC").
		Limit(1).
		Scan(ctx, &unitId)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return unitId, true, nil
}

func CountUnits(ctx context.Context, connection bun.IDB) (int, error) {
	return connection.NewSelect().Model((*UnitModel)(nil)).Count(ctx)
}

func InsertUnit(ctx context.Context, connection bun.IDB, unit *UnitModel) error {
	_, err := connection.NewInsert().Model(unit).Exec(ctx)

	return err
}

func UpdateUnit(ctx context.Context, connection bun.IDB, unit *UnitModel) (affected bool, err error) {
	res, err := connection.NewUpdate().
		Model(unit).
		Column(unitEditableColumns...).
		WherePK().
		Exec(ctx)

	return rowsAffected(res, err)
}

// UpdateUnitBooking writes is_booked together with its dependent fields in one statement.
func UpdateUnitBooking(ctx context.Context, connection bun.IDB, unitId string, isBooked bool, bookedFrom, bookedTo, noteText string, now time.Time) (affected bool, err error) {
	res, err := connection.NewUpdate().
		Model((*UnitModel)(nil)).
		Set("is_booked = ?", isBooked).
		Set("booked_from = ?", bookedFrom).
		Set("booked_to = ?", bookedTo).
		Set("booking_note_text = ?", noteText).
		Set("updated_at = ?", now).
		Where("unit_id = ?", unitId).
		Exec(ctx)

	return rowsAffected(res, err)
}

// UpdateUnitMedia is used by the seed backfill only.
func UpdateUnitMedia(ctx context.Context, connection bun.IDB, unit *UnitModel) error {
	_, err := connection.NewUpdate().
		Model(unit).
		Column("cover_image_url", "photo_urls_json", "youtube_url", "available_to").
		WherePK().
		Exec(ctx)

	return err
}

func rowsAffected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}

	c, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return c > 0, nil
}
