package model

import "time"

// Date and time layouts used throughout the spreadsheets.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// FormatDate renders a timestamp as a sheet date cell.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders a timestamp as a sheet time cell.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
