package db

import (
	"context"
	"github.com/uptrace/bun"
)

func GetGuideCategories(ctx context.Context, connection bun.IDB, activeOnly bool) (categories []*GuideCategoryModel, err error) {
	q := connection.NewSelect().Model(&categories)
	if activeOnly {
		q = q.Where("gc.is_active = ?", true)
	}
	err = q.Order("gc.sort_order ASC", "gc.created_at ASC").Scan(ctx)

	return categories, err
}

// MaxGuideCategorySortOrder is global across all categories.
func MaxGuideCategorySortOrder(ctx context.Context, connection bun.IDB) (int, error) {
	var m int
	err := connection.NewSelect().
		Model((*GuideCategoryModel)(nil)).
		ColumnExpr("COALESCE(MAX(sort_order), 0)").
		Scan(ctx, &m)

	return m, err
}

func InsertGuideCategory(ctx context.Context, connection bun.IDB, category *GuideCategoryModel) error {
	_, err := connection.NewInsert().Model(category).Exec(ctx)

	return err
}

func UpdateGuideCategory(ctx context.Context, connection bun.IDB, category *GuideCategoryModel) (affected bool, err error) {
	res, err := connection.NewUpdate().
		Model(category).
		Column("name", "is_active").
		WherePK().
		Exec(ctx)

	return rowsAffected(res, err)
}

// DeleteGuideCategory removes the category and every item filed under it.
// Callers run it inside a transaction.
func DeleteGuideCategory(ctx context.Context, connection bun.IDB, categoryId string) (affected bool, err error) {
	_, err = connection.NewDelete().
		Model((*GuideItemModel)(nil)).
		Where("category_id = ?", categoryId).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	res, err := connection.NewDelete().
		Model((*GuideCategoryModel)(nil)).
		Where("category_id = ?", categoryId).
		Exec(ctx)

	return rowsAffected(res, err)
}

// GetGuideItems joins the category name into each item. The active filter
// also hides items of inactive categories.
func GetGuideItems(ctx context.Context, connection bun.IDB, activeOnly bool) (items []*GuideItemModel, err error) {
	q := connection.NewSelect().
		Model(&items).
		ColumnExpr("gi.*").
		ColumnExpr("gc.name AS category_name").
		Join("LEFT JOIN guide_categories AS gc ON gc.category_id = gi.category_id")
	if activeOnly {
		q = q.Where("gi.is_active = ?", true).Where("gc.is_active = ?", true)
	}
	err = q.Order("gc.sort_order ASC", "gc.name ASC", "gi.created_at ASC").Scan(ctx)

	return items, err
}

func CountGuideItems(ctx context.Context, connection bun.IDB, categoryId string) (int, error) {
	return connection.NewSelect().
		Model((*GuideItemModel)(nil)).
		Where("category_id = ?", categoryId).
		Count(ctx)
}

func InsertGuideItem(ctx context.Context, connection bun.IDB, item *GuideItemModel) error {
	_, err := connection.NewInsert().Model(item).Exec(ctx)

	return err
}

func UpdateGuideItem(ctx context.Context, connection bun.IDB, item *GuideItemModel) (affected bool, err error) {
	res, err := connection.NewUpdate().
		Model(item).
		Column("category_id", "name", "description", "location", "image_url", "is_active").
		WherePK().
		Exec(ctx)

	return rowsAffected(res, err)
}

func DeleteGuideItem(ctx context.Context, connection bun.IDB, itemId string) (affected bool, err error) {
	res, err := connection.NewDelete().
		Model((*GuideItemModel)(nil)).
		Where("item_id = ?", itemId).
		Exec(ctx)

	return rowsAffected(res, err)
}
