// Package calendar manages the shared schedule sheet.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// Service reads and mutates the schedule.
type Service struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
	now           func() time.Time
}

// NewService binds the service to the club spreadsheet.
func NewService(gw service.Gateway, spreadsheetID string, loc *time.Location, logger *slog.Logger) *Service {
	return &Service{
		gateway:       gw,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// entries loads every dated schedule row.
func (s *Service) entries(ctx context.Context) ([]model.CalendarEntry, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetCalendar, "A:E")
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	var entries []model.CalendarEntry
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		entries = append(entries, model.CalendarEntryFromRow(row, i+1))
	}
	return entries, nil
}

// ByDate lists the entries of one day.
func (s *Service) ByDate(ctx context.Context, date string) ([]model.CalendarEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.CalendarEntry
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByMonth lists the entries of one month (YYYY-MM).
func (s *Service) ByMonth(ctx context.Context, month string) ([]model.CalendarEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.CalendarEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Date, month+"-") {
			out = append(out, e)
		}
	}
	return out, nil
}

// Today lists today's entries.
func (s *Service) Today(ctx context.Context) ([]model.CalendarEntry, error) {
	return s.ByDate(ctx, model.FormatDate(s.now()))
}

// Add appends a schedule entry. Creating entries is limited to executives
// and above.
func (s *Service) Add(ctx context.Context, author model.User, date, title, description string) error {
	if !author.HasRole(model.RoleExecutive) {
		return common.NewUserError(common.ErrForbidden, "only executives and above may add schedule entries")
	}
	if date == "" || title == "" {
		return common.NewUserError(common.ErrInvalidConfig, "date and title are required")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return common.NewUserError(common.ErrInvalidConfig, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	now := s.now()
	entry := model.CalendarEntry{
		Date:        date,
		Title:       title,
		Description: description,
		CreatedBy:   author.UID,
		CreatedAt:   model.FormatDate(now) + " " + model.FormatTime(now),
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetCalendar, entry.ToRow(), model.HeaderCalendar); err != nil {
		return fmt.Errorf("add calendar entry: %w", err)
	}
	s.logger.Info("calendar entry added", "date", date, "title", title, "by", author.UID)
	return nil
}

// Delete removes an entry by its current sheet row.
func (s *Service) Delete(ctx context.Context, actor model.User, rowIndex int) error {
	if !actor.HasRole(model.RoleExecutive) {
		return common.NewUserError(common.ErrForbidden, "only executives and above may delete schedule entries")
	}
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetCalendar, rowIndex); err != nil {
		return fmt.Errorf("delete calendar row %d: %w", rowIndex, err)
	}
	s.logger.Info("calendar entry deleted", "row", rowIndex, "by", actor.UID)
	return nil
}
