package db

import (
	"context"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var tableModels = []interface{}{
	(*UnitModel)(nil),
	(*LeadModel)(nil),
	(*BookingModel)(nil),
	(*SponsorMediaModel)(nil),
	(*GuideCategoryModel)(nil),
	(*GuideItemModel)(nil),
	(*SortCounterModel)(nil),
}

type columnMigration struct {
	model      interface{}
	table      string
	column     string
	definition string
}

// columns introduced after the first release; added to older stores with literal defaults
var columnMigrations = []columnMigration{
	{(*UnitModel)(nil), "units", "property_type", "VARCHAR NOT NULL DEFAULT 'شقة'"},
	{(*UnitModel)(nil), "units", "available_to", "VARCHAR NOT NULL DEFAULT ''"},
	{(*UnitModel)(nil), "units", "contact_whatsapp", "VARCHAR NOT NULL DEFAULT ''"},
	{(*UnitModel)(nil), "units", "contact_phone", "VARCHAR NOT NULL DEFAULT ''"},
	{(*UnitModel)(nil), "units", "is_booked", "BOOLEAN NOT NULL DEFAULT FALSE"},
	{(*UnitModel)(nil), "units", "booked_from", "VARCHAR NOT NULL DEFAULT ''"},
	{(*UnitModel)(nil), "units", "booked_to", "VARCHAR NOT NULL DEFAULT ''"},
	{(*UnitModel)(nil), "units", "booking_note_text", "VARCHAR NOT NULL DEFAULT ''"},
	{(*BookingModel)(nil), "bookings", "admin_schedule_text", "VARCHAR NOT NULL DEFAULT ''"},
}

type indexDefinition struct {
	model   interface{}
	name    string
	columns []string
}

var indexes = []indexDefinition{
	{(*LeadModel)(nil), "leads_created_at_idx", []string{"created_at"}},
	{(*BookingModel)(nil), "bookings_created_at_idx", []string{"created_at"}},
	{(*BookingModel)(nil), "bookings_is_new_admin_idx", []string{"is_new_admin"}},
	{(*SponsorMediaModel)(nil), "sponsor_media_slot_sort_idx", []string{"slot", "sort_order"}},
	{(*GuideItemModel)(nil), "guide_items_category_idx", []string{"category_id"}},
}

// InitSchema creates missing tables and indexes, then adds columns missing from
// tables created by older releases. It never drops or rewrites anything.
func InitSchema(ctx context.Context, connection *bun.DB) error {
	logger := log.GetLogger()

	for _, model := range tableModels {
		if _, err := connection.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("error creating table: %w", err)
		}
	}

	for _, m := range columnMigrations {
		columns, err := existingColumns(ctx, connection, m.table)
		if err != nil {
			return err
		}
		if columns[m.column] {
			continue
		}

		_, err = connection.NewAddColumn().
			Model(m.model).
			ColumnExpr("? "+m.definition, bun.Ident(m.column)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("error adding column %s.%s: %w", m.table, m.column, err)
		}
		logger.WithField("Table", m.table).WithField("Column", m.column).Info("added missing column")
	}

	for _, idx := range indexes {
		_, err := connection.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", idx.name, err)
		}
	}

	return nil
}

func existingColumns(ctx context.Context, connection *bun.DB, table string) (map[string]bool, error) {
	var query string
	switch connection.Dialect().Name() {
	case dialect.SQLite:
		query = "SELECT name FROM pragma_table_info(?)"
	default:
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?"
	}

	var names []string
	if err := connection.NewRaw(query, table).Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("error reading columns of %s: %w", table, err)
	}

	columns := make(map[string]bool, len(names))
	for _, n := range names {
		columns[n] = true
	}

	return columns, nil
}
