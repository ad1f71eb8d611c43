package rental

import (
	"context"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/uptrace/bun"
)

// CreateLead records a guest contact event. Leads are never updated afterwards.
func (s *Store) CreateLead(ctx context.Context, input LeadInput) (string, error) {
	action := LeadAction(clean(string(input.Action)))
	if !action.Valid() {
		return "", NewValidationError("action", fmt.Sprintf("unknown lead action %q", input.Action))
	}

	m := &db.LeadModel{
		LeadId:         s.newId(),
		CreatedAt:      s.timestamp(),
		UnitId:         clean(input.UnitId),
		Action:         string(action),
		DurationText:   clean(input.DurationText),
		Note:           clean(input.Note),
		GuestName:      clean(input.GuestName),
		GuestPhone:     clean(input.GuestPhone),
		GuestResidence: clean(input.GuestResidence),
		MetaJson:       encodeMeta(input.Meta),
	}

	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return db.InsertLead(ctx, tx, m)
	})
	if err != nil {
		return "", fmt.Errorf("error creating lead: %w", err)
	}

	return m.LeadId, nil
}

// ListLeads returns the most recent leads first; limit <= 0 uses DefaultLeadLimit.
func (s *Store) ListLeads(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = DefaultLeadLimit
	}

	models, err := db.GetLeads(ctx, s.connection, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing leads: %w", err)
	}

	leads := make([]Lead, 0, len(models))
	for _, m := range models {
		leads = append(leads, Lead{
			LeadId:         m.LeadId,
			CreatedAt:      m.CreatedAt,
			UnitId:         m.UnitId,
			Action:         LeadAction(m.Action),
			GuestName:      m.GuestName,
			GuestPhone:     m.GuestPhone,
			GuestResidence: m.GuestResidence,
			DurationText:   m.DurationText,
			Note:           m.Note,
			Meta:           decodeMeta(m.MetaJson, s.onCoercion),
		})
	}

	return leads, nil
}

func (s *Store) DeleteAllLeads(ctx context.Context) (deleted int, err error) {
	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		deleted, err = db.DeleteLeads(ctx, tx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("error deleting leads: %w", err)
	}

	return deleted, nil
}

// DeleteLeadsByGuest removes the leads whose guest name or phone equals key
// and returns how many were removed. A blank key removes nothing.
func (s *Store) DeleteLeadsByGuest(ctx context.Context, key string) (deleted int, err error) {
	key = clean(key)
	if key == "" {
		return 0, nil
	}

	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		deleted, err = db.DeleteLeadsByGuest(ctx, tx, key)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("error deleting leads of guest: %w", err)
	}

	return deleted, nil
}
