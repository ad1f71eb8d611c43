package rental

import (
	"context"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/uptrace/bun"
)

// guide categories share one ordering domain, unlike sponsor slots
const guideCategorySortScope = "guide_categories"

func (s *Store) ListGuideCategories(ctx context.Context, activeOnly bool) ([]GuideCategory, error) {
	models, err := db.GetGuideCategories(ctx, s.connection, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing guide categories: %w", err)
	}

	categories := make([]GuideCategory, 0, len(models))
	for _, m := range models {
		categories = append(categories, GuideCategory{
			CategoryId: m.CategoryId,
			CreatedAt:  m.CreatedAt,
			Name:       m.Name,
			IsActive:   m.IsActive,
			SortOrder:  m.SortOrder,
		})
	}

	return categories, nil
}

func (s *Store) CreateGuideCategory(ctx context.Context, input GuideCategoryInput) (string, error) {
	m := &db.GuideCategoryModel{
		CategoryId: s.newId(),
		CreatedAt:  s.timestamp(),
		Name:       clean(input.Name),
		IsActive:   input.IsActive,
	}

	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := db.MaxGuideCategorySortOrder(ctx, tx)
		if err != nil {
			return err
		}

		m.SortOrder, err = db.NextSortOrder(ctx, tx, guideCategorySortScope, current)
		if err != nil {
			return err
		}

		return db.InsertGuideCategory(ctx, tx, m)
	})
	if err != nil {
		return "", fmt.Errorf("error creating guide category: %w", err)
	}

	return m.CategoryId, nil
}

func (s *Store) UpdateGuideCategory(ctx context.Context, categoryId string, input GuideCategoryInput) (exist bool, err error) {
	m := &db.GuideCategoryModel{
		CategoryId: categoryId,
		Name:       clean(input.Name),
		IsActive:   input.IsActive,
	}

	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.UpdateGuideCategory(ctx, tx, m)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error updating guide category %s: %w", categoryId, err)
	}

	return exist, nil
}

// DeleteGuideCategory removes the category together with all of its items.
func (s *Store) DeleteGuideCategory(ctx context.Context, categoryId string) (exist bool, err error) {
	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.DeleteGuideCategory(ctx, tx, categoryId)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error deleting guide category %s: %w", categoryId, err)
	}

	return exist, nil
}

// ListGuideItems returns items with their category name, grouped by category
// order. With activeOnly, items of inactive categories are hidden too.
func (s *Store) ListGuideItems(ctx context.Context, activeOnly bool) ([]GuideItem, error) {
	models, err := db.GetGuideItems(ctx, s.connection, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error listing guide items: %w", err)
	}

	items := make([]GuideItem, 0, len(models))
	for _, m := range models {
		items = append(items, GuideItem{
			ItemId:       m.ItemId,
			CreatedAt:    m.CreatedAt,
			CategoryId:   m.CategoryId,
			CategoryName: m.CategoryName,
			Name:         m.Name,
			Description:  m.Description,
			Location:     m.Location,
			ImageUrl:     m.ImageUrl,
			IsActive:     m.IsActive,
		})
	}

	return items, nil
}

func (s *Store) CountGuideItems(ctx context.Context, categoryId string) (int, error) {
	c, err := db.CountGuideItems(ctx, s.connection, categoryId)
	if err != nil {
		return 0, fmt.Errorf("error counting guide items: %w", err)
	}

	return c, nil
}

func (s *Store) CreateGuideItem(ctx context.Context, input GuideItemInput) (string, error) {
	m := guideItemModel(input)
	m.ItemId = s.newId()
	m.CreatedAt = s.timestamp()

	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return db.InsertGuideItem(ctx, tx, m)
	})
	if err != nil {
		return "", fmt.Errorf("error creating guide item: %w", err)
	}

	return m.ItemId, nil
}

func (s *Store) UpdateGuideItem(ctx context.Context, itemId string, input GuideItemInput) (exist bool, err error) {
	m := guideItemModel(input)
	m.ItemId = itemId

	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.UpdateGuideItem(ctx, tx, m)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error updating guide item %s: %w", itemId, err)
	}

	return exist, nil
}

func (s *Store) DeleteGuideItem(ctx context.Context, itemId string) (exist bool, err error) {
	err = s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exist, err = db.DeleteGuideItem(ctx, tx, itemId)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error deleting guide item %s: %w", itemId, err)
	}

	return exist, nil
}

func guideItemModel(input GuideItemInput) *db.GuideItemModel {
	return &db.GuideItemModel{
		CategoryId:  clean(input.CategoryId),
		Name:        clean(input.Name),
		Description: clean(input.Description),
		Location:    clean(input.Location),
		ImageUrl:    clean(input.ImageUrl),
		IsActive:    input.IsActive,
	}
}
