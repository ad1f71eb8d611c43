// Package export renders stored leads as an XLSX workbook for the admin.
package export

import (
	"encoding/json"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/xuri/excelize/v2"
	"io"
	"time"
)

const LeadsSheet = "Leads"

var leadsHeader = []interface{}{
	"created_at", "unit_id", "action", "guest_name", "guest_phone",
	"guest_residence", "duration_text", "note", "meta",
}

// WriteLeads writes one header row and one row per lead, in the given order.
func WriteLeads(w io.Writer, leads []rental.Lead) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", LeadsSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	if err := f.SetSheetRow(LeadsSheet, "A1", &leadsHeader); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(LeadsSheet, 1, 1, style)
	}

	for i, l := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []interface{}{
			l.CreatedAt.UTC().Format(time.DateTime),
			l.UnitId,
			string(l.Action),
			l.GuestName,
			l.GuestPhone,
			l.GuestResidence,
			l.DurationText,
			l.Note,
			metaText(l.Meta),
		}
		if err := f.SetSheetRow(LeadsSheet, cell, &row); err != nil {
			return fmt.Errorf("error writing lead %s: %w", l.LeadId, err)
		}
	}

	if err := f.SetPanes(LeadsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}

	return nil
}

func metaText(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}

	b, err := json.Marshal(meta)
	if err != nil {
		return ""
	}

	return string(b)
}
