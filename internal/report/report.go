// Package report renders pending records into a two-sheet xlsx workbook.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"telegram-report-bot/internal/models"
)

const (
	linksSheet    = "Links"
	messagesSheet = "Messages"
)

// Filename returns the report file name for the given ISO date.
func Filename(date string) string {
	return fmt.Sprintf("report_%s.xlsx", date)
}

// Build renders the given records into an xlsx workbook. The Links sheet
// is only present when links is non-empty, likewise Messages; rows keep
// input order. Callers are expected to skip export entirely when both
// inputs are empty — Build guards that case with an error so an empty
// workbook can never be produced.
func Build(links []models.Link, msgs []models.Message, date string) (string, []byte, error) {
	if len(links) == 0 && len(msgs) == 0 {
		return "", nil, fmt.Errorf("nothing to export for %s", date)
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with a single default sheet; the first populated
	// sheet takes it over, a second one is created on demand.
	defaultSheet := f.GetSheetName(0)

	if len(links) > 0 {
		if err := f.SetSheetName(defaultSheet, linksSheet); err != nil {
			return "", nil, fmt.Errorf("failed to create %s sheet: %w", linksSheet, err)
		}
		if err := setRow(f, linksSheet, 1, []interface{}{"id", "user_id", "platform", "url", "received_at"}); err != nil {
			return "", nil, err
		}
		for i, l := range links {
			row := []interface{}{l.ID, l.UserID, string(l.Platform), l.URL, l.ReceivedAt.Format(time.RFC3339)}
			if err := setRow(f, linksSheet, i+2, row); err != nil {
				return "", nil, err
			}
		}
	}

	if len(msgs) > 0 {
		if len(links) > 0 {
			if _, err := f.NewSheet(messagesSheet); err != nil {
				return "", nil, fmt.Errorf("failed to create %s sheet: %w", messagesSheet, err)
			}
		} else {
			if err := f.SetSheetName(defaultSheet, messagesSheet); err != nil {
				return "", nil, fmt.Errorf("failed to create %s sheet: %w", messagesSheet, err)
			}
		}
		if err := setRow(f, messagesSheet, 1, []interface{}{"id", "user_id", "text", "received_at"}); err != nil {
			return "", nil, err
		}
		for i, m := range msgs {
			row := []interface{}{m.ID, m.UserID, m.Text, m.ReceivedAt.Format(time.RFC3339)}
			if err := setRow(f, messagesSheet, i+2, row); err != nil {
				return "", nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return Filename(date), buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
