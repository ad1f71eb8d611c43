package cmd

import (
	"context"
	"github.com/csr-ugra/matrouh-rentals/internal/cache"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/csr-ugra/matrouh-rentals/internal/export"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	"github.com/xuri/excelize/v2"
	"path/filepath"
	"testing"
)

func TestExportLeads(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	connection, err := db.Open("file:" + filepath.Join(dir, "cmd.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = connection.Close() })
	if err := db.InitSchema(ctx, connection); err != nil {
		t.Fatal(err)
	}

	store := rental.NewStore(connection, rental.WithCoercionHook(nil))
	if _, err := store.CreateLead(ctx, rental.LeadInput{UnitId: "SH-0001", Action: rental.LeadCall, GuestName: "Mona"}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "leads.xlsx")
	if err := exportLeads(ctx, store, path); err != nil {
		t.Fatalf("exportLeads() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.LeadsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][3] != "Mona" {
		t.Errorf("exported rows = %v", rows)
	}
}

func TestNewCacheWithoutRedis(t *testing.T) {
	config := util.NewConfig()

	c, closeCache, err := newCache(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	defer closeCache()

	if _, ok := c.(cache.Nop); !ok {
		t.Errorf("cache = %T, want cache.Nop", c)
	}
}
