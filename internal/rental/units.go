package rental

import (
	"context"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/uptrace/bun"
)

func (s *Store) ListUnits(ctx context.Context, activeOnly bool) ([]Unit, error) {
	models, err := db.GetUnits(ctx, s.connection, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing units: %w", err)
	}

	units := make([]Unit, 0, len(models))
	for _, m := range models {
		units = append(units, s.hydrateUnit(m))
	}

	return units, nil
}

// GetUnit reports exist=false for a missing unit instead of an error.
func (s *Store) GetUnit(ctx context.Context, unitId string) (unit Unit, exist bool, err error) {
	m, exist, err := db.GetUnit(ctx, s.connection, unitId)
	if err != nil {
		return Unit{}, false, fmt.Errorf("error getting unit %s: %w", unitId, err)
	}
	if !exist {
		return Unit{}, false, nil
	}

	return s.hydrateUnit(m), true, nil
}

// CreateUnit stores a new unit under the next sequential id and returns that id.
func (s *Store) CreateUnit(ctx context.Context, input UnitInput) (string, error) {
	var unitId string

	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		last, exist, err := db.GetLastUnitId(ctx, tx)
		if err != nil {
			return err
		}
		unitId = nextUnitId(s.unitIdPrefix, last, exist, s.onCoercion)

		now := s.timestamp()
		m := s.unitModel(input)
		m.UnitId = unitId
		m.CreatedAt = now
		m.UpdatedAt = now

		return db.InsertUnit(ctx, tx, m)
	})
	if err != nil {
		return "", fmt.Errorf("error creating unit: %w", err)
	}

	return unitId, nil
}

// UpdateUnit rewrites every editable field of the unit in one statement.
// Updating a missing unit is a no-op reported as exist=false.
func (s *Store) UpdateUnit(ctx context.Context, unitId string, input UnitInput) (exist bool, err error) {
	m := s.unitModel(input)
	m.UnitId = unitId
	m.UpdatedAt = s.timestamp()

	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.UpdateUnit(ctx, tx, m)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error updating unit %s: %w", unitId, err)
	}

	return exist, nil
}

// SetUnitBookingStatus sets or clears the booking state of a unit directly.
// Clearing always empties the dates and the note in the same statement.
func (s *Store) SetUnitBookingStatus(ctx context.Context, input UnitBookingInput) (exist bool, err error) {
	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = s.setUnitBooking(ctx, tx, input)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error setting booking status of unit %s: %w", input.UnitId, err)
	}

	return exist, nil
}

func (s *Store) setUnitBooking(ctx context.Context, tx bun.IDB, input UnitBookingInput) (bool, error) {
	from, to, note := "", "", ""
	if input.IsBooked {
		from = clean(input.BookedFrom)
		to = clean(input.BookedTo)
		note = clean(input.BookingNoteText)
	}

	return db.UpdateUnitBooking(ctx, tx, input.UnitId, input.IsBooked, from, to, note, s.timestamp())
}

func (s *Store) unitModel(input UnitInput) *db.UnitModel {
	propertyType := PropertyType(clean(string(input.PropertyType)))
	if propertyType == "" {
		propertyType = PropertyApartment
	} else if !propertyType.Valid() {
		s.onCoercion.report("property_type", string(propertyType), string(PropertyApartment), "unknown property type")
		propertyType = PropertyApartment
	}

	rooms := input.Rooms
	if rooms < 0 {
		s.onCoercion.report("rooms", fmt.Sprint(rooms), "0", "negative room count")
		rooms = 0
	}

	return &db.UnitModel{
		Title:           clean(input.Title),
		PropertyType:    string(propertyType),
		Location:        clean(input.Location),
		Rooms:           rooms,
		Description:     clean(input.Description),
		YoutubeUrl:      clean(input.VideoUrl),
		CoverImageUrl:   clean(input.CoverImageUrl),
		PhotoUrlsJson:   encodeList(input.PhotoUrls),
		ContactWhatsapp: clean(input.ContactWhatsapp),
		ContactPhone:    clean(input.ContactPhone),
		AvailableFrom:   clean(input.AvailableFrom),
		AvailableTo:     clean(input.AvailableTo),
		PriceDay:        clean(input.PricePerDay),
		PriceWeek:       clean(input.PricePerWeek),
		IsActive:        input.IsActive,
	}
}

func (s *Store) hydrateUnit(m *db.UnitModel) Unit {
	return Unit{
		UnitId:          m.UnitId,
		Title:           m.Title,
		PropertyType:    PropertyType(m.PropertyType),
		Location:        m.Location,
		Rooms:           m.Rooms,
		Description:     m.Description,
		VideoUrl:        m.YoutubeUrl,
		CoverImageUrl:   m.CoverImageUrl,
		PhotoUrls:       decodeList("photo_urls_json", m.PhotoUrlsJson, s.onCoercion),
		ContactWhatsapp: m.ContactWhatsapp,
		ContactPhone:    m.ContactPhone,
		AvailableFrom:   m.AvailableFrom,
		AvailableTo:     m.AvailableTo,
		PricePerDay:     m.PriceDay,
		PricePerWeek:    m.PriceWeek,
		IsActive:        m.IsActive,
		IsBooked:        m.IsBooked,
		BookedFrom:      m.BookedFrom,
		BookedTo:        m.BookedTo,
		BookingNoteText: m.BookingNoteText,
		BookedDays:      bookedDays(m.BookedFrom, m.BookedTo, s.onCoercion),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
