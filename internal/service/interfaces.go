// Package service defines the interfaces the domain modules depend on.
package service

import "context"

// SheetRange names one sheet and the cell range to read from it.
type SheetRange struct {
	Sheet string
	Range string
}

// Gateway is the contract for the spreadsheet data access layer. Every domain
// module is built from these six operations plus client-side filtering.
//
// Rows are positional: a row is an ordered sequence of string cells, short
// rows are not padded, and the 1-based sheet row index (header row = 1) is
// the only identity a row has. Any deletion shifts every following row up by
// one, so a previously read row index must be re-resolved before reuse.
type Gateway interface {
	// Read returns the rows of the given range (default "A:Z" when empty).
	// Results may be served from a short-lived cache; any mutation of the
	// same sheet invalidates it.
	Read(ctx context.Context, spreadsheetID, sheet, rng string) ([][]string, error)

	// BatchRead fetches several ranges of one spreadsheet in a single call
	// and returns the rows keyed by sheet name.
	BatchRead(ctx context.Context, spreadsheetID string, ranges []SheetRange) (map[string][][]string, error)

	// Write overwrites exactly the given cell range. Requires bearer auth.
	Write(ctx context.Context, spreadsheetID, sheet, rng string, rows [][]string) error

	// AppendRow writes rowValues to the first free row, creating the sheet
	// and writing header first when needed. Calls for the same sheet are
	// serialized, but the row-count read is still a read-then-write against
	// a shared spreadsheet and can race with other processes.
	AppendRow(ctx context.Context, spreadsheetID, sheet string, rowValues, header []string) error

	// CreateSheetIfAbsent adds a sheet with an optional header row. A sheet
	// that already exists is success, not an error.
	CreateSheetIfAbsent(ctx context.Context, spreadsheetID, sheet string, header []string) error

	// DeleteRow removes the 1-based row. Rows below it shift up by one.
	DeleteRow(ctx context.Context, spreadsheetID, sheet string, rowIndex int) error
}
