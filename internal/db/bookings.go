package db

import (
	"context"
	"database/sql"
	"errors"
	"github.com/uptrace/bun"
)

func InsertBooking(ctx context.Context, connection bun.IDB, booking *BookingModel) error {
	_, err := connection.NewInsert().Model(booking).Exec(ctx)

	return err
}

func CountNewBookings(ctx context.Context, connection bun.IDB) (int, error) {
	return connection.NewSelect().
		Model((*BookingModel)(nil)).
		Where("b.is_new_admin = ?", true).
		Count(ctx)
}

func GetBookings(ctx context.Context, connection bun.IDB, limit int, newOnly bool) (bookings []*BookingModel, err error) {
	q := connection.NewSelect().Model(&bookings)
	if newOnly {
		q = q.Where("b.is_new_admin = ?", true)
	}
	err = q.Order("b.created_at DESC").Limit(limit).Scan(ctx)

	return bookings, err
}

func GetBooking(ctx context.Context, connection bun.IDB, bookingId string) (booking *BookingModel, exist bool, err error) {
	booking = new(BookingModel)
	err = connection.NewSelect().Model(booking).Where("b.booking_id = ?", bookingId).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return booking, true, nil
}

// UpdateBookingReview stores the admin decision and schedule of a booking request.
func UpdateBookingReview(ctx context.Context, connection bun.IDB, booking *BookingModel) error {
	_, err := connection.NewUpdate().
		Model(booking).
		Column("status", "is_new_admin", "booked_from", "booked_to", "admin_schedule_text", "reviewed_at").
		WherePK().
		Exec(ctx)

	return err
}
