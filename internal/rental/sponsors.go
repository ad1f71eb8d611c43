package rental

import (
	"context"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/uptrace/bun"
)

func sponsorSortScope(slot Slot) string {
	return "sponsor_media:" + string(slot)
}

// AddSponsorMedia stores an active advertisement at the end of its slot.
// Sort orders grow per slot and are never handed out twice.
func (s *Store) AddSponsorMedia(ctx context.Context, input SponsorMediaInput) (string, error) {
	m := s.sponsorModel(input)
	m.MediaId = s.newId()
	m.CreatedAt = s.timestamp()
	m.IsActive = true

	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := db.MaxSponsorSortOrder(ctx, tx, m.Slot)
		if err != nil {
			return err
		}

		m.SortOrder, err = db.NextSortOrder(ctx, tx, sponsorSortScope(Slot(m.Slot)), current)
		if err != nil {
			return err
		}

		return db.InsertSponsorMedia(ctx, tx, m)
	})
	if err != nil {
		return "", fmt.Errorf("error adding sponsor media: %w", err)
	}

	return m.MediaId, nil
}

func (s *Store) UpdateSponsorMedia(ctx context.Context, mediaId string, input SponsorMediaInput) (exist bool, err error) {
	m := s.sponsorModel(input)
	m.MediaId = mediaId
	m.IsActive = input.IsActive

	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.UpdateSponsorMedia(ctx, tx, m)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error updating sponsor media %s: %w", mediaId, err)
	}

	return exist, nil
}

// ListSponsorMedia orders by slot, then sort order, then creation time.
func (s *Store) ListSponsorMedia(ctx context.Context, activeOnly bool) ([]SponsorMedia, error) {
	models, err := db.GetSponsorMedia(ctx, s.connection, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing sponsor media: %w", err)
	}

	media := make([]SponsorMedia, 0, len(models))
	for _, m := range models {
		media = append(media, SponsorMedia{
			MediaId:   m.MediaId,
			CreatedAt: m.CreatedAt,
			Slot:      Slot(m.Slot),
			MediaKind: MediaKind(m.MediaKind),
			Title:     m.Title,
			Url:       m.Url,
			IsActive:  m.IsActive,
			SortOrder: m.SortOrder,
		})
	}

	return media, nil
}

func (s *Store) DeleteSponsorMedia(ctx context.Context, mediaId string) (exist bool, err error) {
	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.DeleteSponsorMedia(ctx, tx, mediaId)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error deleting sponsor media %s: %w", mediaId, err)
	}

	return exist, nil
}

func (s *Store) sponsorModel(input SponsorMediaInput) *db.SponsorMediaModel {
	slot := Slot(clean(string(input.Slot)))
	if !slot.Valid() {
		if slot != "" {
			s.onCoercion.report("slot", string(slot), string(SlotGallery), "unknown sponsor slot")
		}
		slot = SlotGallery
	}

	kind := MediaKind(clean(string(input.MediaKind)))
	if !kind.Valid() {
		if kind != "" {
			s.onCoercion.report("media_kind", string(kind), string(MediaImage), "unknown media kind")
		}
		kind = MediaImage
	}

	return &db.SponsorMediaModel{
		Slot:      string(slot),
		MediaKind: string(kind),
		Title:     clean(input.Title),
		Url:       clean(input.Url),
	}
}
