package stats

import (
	"fmt"
	"time"
)

// Weeks run Monday through Sunday and are labeled "YYYY-WNN", where NN is
// the number of whole weeks between January 1st and the week's Monday,
// plus one. This is not ISO 8601: a Monday in late December can belong to
// week 53 of the old year, and WeekStart skips the first week of a year
// that begins on a Monday. The quirks are kept because existing sheet rows
// were recorded against these labels.

// MondayOf returns midnight on the Monday of t's week.
func MondayOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	day := int(d.Weekday())
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	return d.AddDate(0, 0, diff)
}

// WeekOf returns the week label containing t.
func WeekOf(t time.Time) string {
	monday := MondayOf(t)
	startOfYear := time.Date(monday.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	week := daysBetween(startOfYear, monday)/7 + 1
	return fmt.Sprintf("%d-W%02d", monday.Year(), week)
}

// WeekStart returns midnight on the Monday of the labeled week.
func WeekStart(week string, loc *time.Location) (time.Time, error) {
	var year, num int
	if _, err := fmt.Sscanf(week, "%d-W%d", &year, &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid week %q: %w", week, err)
	}
	startOfYear := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	startDay := int(startOfYear.Weekday())
	daysToFirstMonday := 8 - startDay
	if startDay == 0 {
		daysToFirstMonday = 1
	}
	firstMonday := startOfYear.AddDate(0, 0, daysToFirstMonday)
	return firstMonday.AddDate(0, 0, (num-1)*7), nil
}

// WeekEnd returns midnight on the Sunday closing the labeled week.
func WeekEnd(week string, loc *time.Location) (time.Time, error) {
	start, err := WeekStart(week, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 6), nil
}

// PrevWeek returns the label of the week before the given one.
func PrevWeek(week string, loc *time.Location) (string, error) {
	start, err := WeekStart(week, loc)
	if err != nil {
		return "", err
	}
	return WeekOf(start.AddDate(0, 0, -7)), nil
}

// NextWeek returns the label of the week after the given one.
func NextWeek(week string, loc *time.Location) (string, error) {
	start, err := WeekStart(week, loc)
	if err != nil {
		return "", err
	}
	return WeekOf(start.AddDate(0, 0, 7)), nil
}

// FormatWeek renders a week label as "Month Year, week N", numbering weeks
// from the first Monday of the month the week's Monday falls in. A Monday
// earlier than that (only possible through the WeekStart year quirk) is
// numbered within the previous month instead. An unparseable label is
// returned as-is.
func FormatWeek(week string, loc *time.Location) string {
	monday, err := WeekStart(week, loc)
	if err != nil {
		return week
	}
	first := firstMondayOfMonth(monday.Year(), monday.Month(), loc)
	if monday.Before(first) {
		prev := time.Date(monday.Year(), monday.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
		first = firstMondayOfMonth(prev.Year(), prev.Month(), loc)
		return fmt.Sprintf("%s %d, week %d", prev.Month(), prev.Year(), daysBetween(first, monday)/7+1)
	}
	return fmt.Sprintf("%s %d, week %d", monday.Month(), monday.Year(), daysBetween(first, monday)/7+1)
}

// firstMondayOfMonth uses a different offset rule than WeekStart: a month
// beginning on a Monday counts that Monday as its own.
func firstMondayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	switch day := int(start.Weekday()); day {
	case 0:
		return start.AddDate(0, 0, 1)
	case 1:
		return start
	default:
		return start.AddDate(0, 0, 8-day)
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
