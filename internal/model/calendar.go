package model

// CalendarEntry is one row of the schedule sheet.
type CalendarEntry struct {
	Date        string
	Title       string
	Description string
	CreatedBy   string
	CreatedAt   string
	RowIndex    int
}

// CalendarEntryFromRow parses a schedule row.
func CalendarEntryFromRow(row []string, rowIndex int) CalendarEntry {
	return CalendarEntry{
		Date:        Cell(row, 0),
		Title:       Cell(row, 1),
		Description: Cell(row, 2),
		CreatedBy:   Cell(row, 3),
		CreatedAt:   Cell(row, 4),
		RowIndex:    rowIndex,
	}
}

// ToRow renders the entry in schedule column order.
func (e CalendarEntry) ToRow() []string {
	return []string{e.Date, e.Title, e.Description, e.CreatedBy, e.CreatedAt}
}
