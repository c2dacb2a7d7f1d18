// Package ledger implements the three report ledgers: customer
// transactions, RP reports, and event participations, each with its
// admin-managed item catalog.
package ledger

import (
	"context"
	"fmt"

	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
	"github.com/1taes/JOY-Intranet/internal/sheets"
)

// rewriteCatalog replaces every data row of a catalog sheet. The sequence
// matches how the catalogs have always been maintained: ensure the sheet
// and header, blank out the old block, then write the new rows from row 2.
func rewriteCatalog(ctx context.Context, gw service.Gateway, spreadsheetID, sheet string, header []string, rows [][]string) error {
	if err := gw.CreateSheetIfAbsent(ctx, spreadsheetID, sheet, nil); err != nil {
		return fmt.Errorf("ensure %s: %w", sheet, err)
	}

	existing, err := gw.Read(ctx, spreadsheetID, sheet, "")
	if err != nil {
		existing = nil
	}

	last := sheets.ColumnLetter(len(header))
	if len(existing) == 0 || model.Cell(existing[0], 0) != header[0] {
		hdrRange := fmt.Sprintf("A1:%s1", last)
		if err := gw.Write(ctx, spreadsheetID, sheet, hdrRange, [][]string{header}); err != nil {
			return fmt.Errorf("write %s header: %w", sheet, err)
		}
	}

	if len(existing) > 1 {
		blanks := make([][]string, len(existing)-1)
		for i := range blanks {
			blanks[i] = make([]string, len(header))
		}
		clearRange := fmt.Sprintf("A2:%s%d", last, len(existing))
		if err := gw.Write(ctx, spreadsheetID, sheet, clearRange, blanks); err != nil {
			return fmt.Errorf("clear %s: %w", sheet, err)
		}
	}

	if len(rows) > 0 {
		dataRange := fmt.Sprintf("A2:%s%d", last, len(rows)+1)
		if err := gw.Write(ctx, spreadsheetID, sheet, dataRange, rows); err != nil {
			return fmt.Errorf("write %s rows: %w", sheet, err)
		}
	}
	return nil
}

// readCatalog returns the data rows of a catalog sheet, header and
// nameless rows skipped. A missing sheet reads as an empty catalog.
func readCatalog(ctx context.Context, gw service.Gateway, spreadsheetID, sheet string) ([][]string, error) {
	rows, err := gw.Read(ctx, spreadsheetID, sheet, "")
	if err != nil {
		return nil, nil
	}
	var out [][]string
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
