// Package seed fills an empty store with demo listings and advertisements and
// repairs rows that are missing media links.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/uptrace/bun"
	"strings"
)

const (
	fallbackVideoUrl    = "https://www.w3schools.com/html/mov_bbb.mp4"
	fallbackAvailableTo = "2026-12-31"
)

var seedUnits = []rental.UnitInput{
	{
		Title:           "شقة الساحل - مميزة",
		PropertyType:    rental.PropertyApartment,
		Location:        "الساحل الشمالي",
		Rooms:           2,
		Description:     "قريبة من البحر ومناسبة للعائلات.",
		VideoUrl:        "https://www.w3schools.com/html/mov_bbb.mp4",
		CoverImageUrl:   "https://picsum.photos/seed/sh0001-cover/1200/800",
		PhotoUrls:       []string{"https://picsum.photos/seed/sh0001-1/1200/800", "https://picsum.photos/seed/sh0001-2/1200/800"},
		ContactWhatsapp: "+201001112233",
		ContactPhone:    "+201001112233",
		AvailableFrom:   "2026-06-01",
		AvailableTo:     "2026-09-30",
		PricePerDay:     "1500",
		PricePerWeek:    "9000",
		IsActive:        true,
	},
	{
		Title:           "شالية العين السخنة",
		PropertyType:    rental.PropertyChalet,
		Location:        "العين السخنة",
		Rooms:           3,
		Description:     "إطلالة جميلة وموقع ممتاز.",
		VideoUrl:        "https://www.w3schools.com/html/movie.mp4",
		CoverImageUrl:   "https://picsum.photos/seed/sh0002-cover/1200/800",
		PhotoUrls:       []string{"https://picsum.photos/seed/sh0002-1/1200/800"},
		ContactWhatsapp: "+201001112244",
		ContactPhone:    "+201001112244",
		AvailableFrom:   "2026-05-15",
		AvailableTo:     "2026-10-15",
		PricePerDay:     "2200",
		PricePerWeek:    "13000",
		IsActive:        true,
	},
}

// Run seeds units and sponsor media when their tables are empty, makes sure
// every sponsor slot has an active item and backfills missing unit media.
func Run(ctx context.Context, store *rental.Store) error {
	if err := seedUnitsIfEmpty(ctx, store); err != nil {
		return err
	}
	if err := seedSponsorsIfEmpty(ctx, store); err != nil {
		return err
	}
	if err := ensureActiveSponsorSlots(ctx, store); err != nil {
		return err
	}

	return backfillUnitMedia(ctx, store)
}

func seedUnitsIfEmpty(ctx context.Context, store *rental.Store) error {
	c, err := db.CountUnits(ctx, store.DB())
	if err != nil {
		return fmt.Errorf("error counting units: %w", err)
	}
	if c > 0 {
		return nil
	}

	for _, u := range seedUnits {
		unitId, err := store.CreateUnit(ctx, u)
		if err != nil {
			return err
		}
		log.GetLogger().WithField("UnitId", unitId).Info("seeded unit")
	}

	return nil
}

func seedSponsorsIfEmpty(ctx context.Context, store *rental.Store) error {
	c, err := db.CountSponsorMedia(ctx, store.DB())
	if err != nil {
		return fmt.Errorf("error counting sponsor media: %w", err)
	}
	if c > 0 {
		return nil
	}

	media := []rental.SponsorMediaInput{
		{Slot: rental.SlotMainImage, MediaKind: rental.MediaImage, Title: "إعلان رئيسي", Url: "https://picsum.photos/seed/s-main/1600/800"},
		{Slot: rental.SlotMainVideo, MediaKind: rental.MediaVideo, Title: "فيديو رئيسي", Url: "https://www.w3schools.com/html/mov_bbb.mp4"},
	}
	for i := 1; i <= 7; i++ {
		media = append(media, rental.SponsorMediaInput{
			Slot:      rental.SlotGallery,
			MediaKind: rental.MediaImage,
			Title:     fmt.Sprintf("إعلان %d", i),
			Url:       fmt.Sprintf("https://picsum.photos/seed/s-g-%d/900/600", i),
		})
	}

	if err := addSponsorMedia(ctx, store, media); err != nil {
		return err
	}
	log.GetLogger().WithField("Count", len(media)).Info("seeded sponsor media")

	return nil
}

func ensureActiveSponsorSlots(ctx context.Context, store *rental.Store) error {
	active, err := db.CountActiveSponsorMediaBySlot(ctx, store.DB())
	if err != nil {
		return fmt.Errorf("error counting active sponsor media: %w", err)
	}

	var media []rental.SponsorMediaInput
	if active[string(rental.SlotMainImage)] == 0 {
		media = append(media, rental.SponsorMediaInput{
			Slot: rental.SlotMainImage, MediaKind: rental.MediaImage,
			Title: "إعلان رئيسي افتراضي", Url: "https://picsum.photos/seed/s-main-fallback/1600/800",
		})
	}
	if active[string(rental.SlotMainVideo)] == 0 {
		media = append(media, rental.SponsorMediaInput{
			Slot: rental.SlotMainVideo, MediaKind: rental.MediaVideo,
			Title: "فيديو رئيسي افتراضي", Url: "https://www.w3schools.com/html/movie.mp4",
		})
	}
	if active[string(rental.SlotGallery)] == 0 {
		for i := 1; i <= 5; i++ {
			media = append(media, rental.SponsorMediaInput{
				Slot:      rental.SlotGallery,
				MediaKind: rental.MediaImage,
				Title:     fmt.Sprintf("إعلان جاليري %d", i),
				Url:       fmt.Sprintf("https://picsum.photos/seed/s-g-fallback-%d/900/600", i),
			})
		}
	}

	if len(media) == 0 {
		return nil
	}

	if err := addSponsorMedia(ctx, store, media); err != nil {
		return err
	}
	log.GetLogger().WithField("Count", len(media)).Warn("added fallback sponsor media for empty slots")

	return nil
}

func addSponsorMedia(ctx context.Context, store *rental.Store, media []rental.SponsorMediaInput) error {
	for _, m := range media {
		if _, err := store.AddSponsorMedia(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

// backfillUnitMedia gives every unit a cover, photos, a video and an end of
// availability when those are missing. Present values are left alone.
func backfillUnitMedia(ctx context.Context, store *rental.Store) error {
	units, err := store.ListUnits(ctx, false)
	if err != nil {
		return err
	}

	var updated int
	err = store.DB().RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, u := range units {
			m, changed := fillUnitMedia(u)
			if !changed {
				continue
			}

			if err := db.UpdateUnitMedia(ctx, tx, m); err != nil {
				return err
			}
			updated++
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("error backfilling unit media: %w", err)
	}

	if updated > 0 {
		log.GetLogger().WithField("Count", updated).Info("backfilled unit media links")
	}

	return nil
}

func fillUnitMedia(u rental.Unit) (m *db.UnitModel, changed bool) {
	cover := strings.TrimSpace(u.CoverImageUrl)
	photos := u.PhotoUrls
	video := strings.TrimSpace(u.VideoUrl)
	availableTo := strings.TrimSpace(u.AvailableTo)

	if cover == "" {
		cover = fmt.Sprintf("https://picsum.photos/seed/%s-cover/1200/800", u.UnitId)
		changed = true
	}
	if len(photos) == 0 {
		photos = []string{
			fmt.Sprintf("https://picsum.photos/seed/%s-p1/1200/800", u.UnitId),
			fmt.Sprintf("https://picsum.photos/seed/%s-p2/1200/800", u.UnitId),
		}
		changed = true
	}
	if video == "" {
		video = fallbackVideoUrl
		changed = true
	}
	if availableTo == "" {
		availableTo = fallbackAvailableTo
		changed = true
	}

	if !changed {
		return nil, false
	}

	photosJson, err := json.Marshal(photos)
	if err != nil {
		photosJson = []byte("[]")
	}

	return &db.UnitModel{
		UnitId:        u.UnitId,
		CoverImageUrl: cover,
		PhotoUrlsJson: string(photosJson),
		YoutubeUrl:    video,
		AvailableTo:   availableTo,
	}, true
}
