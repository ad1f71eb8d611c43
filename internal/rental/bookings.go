package rental

import (
	"context"
	"errors"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/uptrace/bun"
)

// CreateBookingRequest files a guest's booking request in status "new". The
// unit's own booking state is left untouched until an admin confirms.
func (s *Store) CreateBookingRequest(ctx context.Context, input BookingInput) (string, error) {
	name := clean(input.GuestName)
	phone := clean(input.GuestPhone)
	if name == "" {
		return "", NewValidationError("guest_name", "must not be empty")
	}
	if phone == "" {
		return "", NewValidationError("guest_phone", "must not be empty")
	}

	m := &db.BookingModel{
		BookingId:      s.newId(),
		CreatedAt:      s.timestamp(),
		UnitId:         clean(input.UnitId),
		GuestName:      name,
		GuestPhone:     phone,
		GuestResidence: clean(input.GuestResidence),
		DurationText:   clean(input.DurationText),
		Note:           clean(input.Note),
		Status:         string(StatusNew),
		IsNewAdmin:     true,
	}

	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return db.InsertBooking(ctx, tx, m)
	})
	if err != nil {
		return "", fmt.Errorf("error creating booking request: %w", err)
	}

	return m.BookingId, nil
}

func (s *Store) CountNewBookingRequests(ctx context.Context) (int, error) {
	c, err := db.CountNewBookings(ctx, s.connection)
	if err != nil {
		return 0, fmt.Errorf("error counting new booking requests: %w", err)
	}

	return c, nil
}

// ListBookingRequests returns requests newest first with their booked-day count
// derived on the fly. newOnly restricts the result to the admin's unseen queue.
func (s *Store) ListBookingRequests(ctx context.Context, limit int, newOnly bool) ([]BookingRequest, error) {
	if limit <= 0 {
		limit = DefaultBookingLimit
	}

	models, err := db.GetBookings(ctx, s.connection, limit, newOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing booking requests: %w", err)
	}

	bookings := make([]BookingRequest, 0, len(models))
	for _, m := range models {
		bookings = append(bookings, s.hydrateBooking(m))
	}

	return bookings, nil
}

func (s *Store) GetBookingRequest(ctx context.Context, bookingId string) (booking BookingRequest, exist bool, err error) {
	m, exist, err := db.GetBooking(ctx, s.connection, bookingId)
	if err != nil {
		return BookingRequest{}, false, fmt.Errorf("error getting booking request %s: %w", bookingId, err)
	}
	if !exist {
		return BookingRequest{}, false, nil
	}

	return s.hydrateBooking(m), true, nil
}

// ReviewBooking moves a booking request to confirmed or rejected. Any status
// other than "confirmed" is treated as a rejection. Confirming also marks the
// unit booked with the admin's dates and note, in the same transaction.
//
// A missing request is a silent no-op (reviewed=false). A request that already
// left "new" yields ErrAlreadyReviewed unless the store allows re-review.
func (s *Store) ReviewBooking(ctx context.Context, input ReviewInput) (reviewed bool, err error) {
	status := BookingStatus(clean(input.Status))
	if status != StatusConfirmed && status != StatusRejected {
		s.onCoercion.report("status", input.Status, string(StatusRejected), "unknown review status")
		status = StatusRejected
	}

	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		m, exist, err := db.GetBooking(ctx, tx, input.BookingId)
		if err != nil {
			return err
		}
		if !exist {
			return nil
		}
		if BookingStatus(m.Status) != StatusNew && !s.allowReReview {
			return ErrAlreadyReviewed
		}

		now := s.timestamp()
		m.Status = string(status)
		m.IsNewAdmin = false
		m.BookedFrom = clean(input.BookedFrom)
		m.BookedTo = clean(input.BookedTo)
		m.AdminScheduleText = clean(input.AdminScheduleText)
		m.ReviewedAt = &now

		if err = db.UpdateBookingReview(ctx, tx, m); err != nil {
			return err
		}
		reviewed = true

		if status != StatusConfirmed {
			return nil
		}

		unitExist, err := s.setUnitBooking(ctx, tx, UnitBookingInput{
			UnitId:          m.UnitId,
			IsBooked:        true,
			BookedFrom:      m.BookedFrom,
			BookedTo:        m.BookedTo,
			BookingNoteText: m.AdminScheduleText,
		})
		if err != nil {
			return err
		}
		if !unitExist {
			log.GetLogger().
				WithField("BookingId", m.BookingId).
				WithField("UnitId", m.UnitId).
				Warn("confirmed booking references a missing unit")
		}

		return nil
	})
	if errors.Is(err, ErrAlreadyReviewed) {
		return false, err
	}
	if err != nil {
		return false, fmt.Errorf("error reviewing booking request %s: %w", input.BookingId, err)
	}

	return reviewed, nil
}

func (s *Store) hydrateBooking(m *db.BookingModel) BookingRequest {
	return BookingRequest{
		BookingId:         m.BookingId,
		CreatedAt:         m.CreatedAt,
		UnitId:            m.UnitId,
		GuestName:         m.GuestName,
		GuestPhone:        m.GuestPhone,
		GuestResidence:    m.GuestResidence,
		DurationText:      m.DurationText,
		Note:              m.Note,
		Status:            BookingStatus(m.Status),
		IsNewForAdmin:     m.IsNewAdmin,
		BookedFrom:        m.BookedFrom,
		BookedTo:          m.BookedTo,
		AdminScheduleText: m.AdminScheduleText,
		BookedDays:        bookedDays(m.BookedFrom, m.BookedTo, s.onCoercion),
		ReviewedAt:        m.ReviewedAt,
	}
}
