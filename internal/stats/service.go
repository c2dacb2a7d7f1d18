// Package stats aggregates the weekly ledgers into per-member summaries.
package stats

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
	"github.com/1taes/JOY-Intranet/internal/voucher"
)

// UserDirectory lists the club roster. *auth.Service satisfies it.
type UserDirectory interface {
	Users(ctx context.Context) ([]model.User, error)
}

// Summary is one member's numbers for one week. ExpectedPay is the RP total
// plus the event total; transaction profit is tracked but not paid out.
type Summary struct {
	Week        string
	Label       string
	StartDate   string
	EndDate     string
	NetProfit   decimal.Decimal
	RPCount     int
	RPTotal     decimal.Decimal
	EventCount  int
	EventTotal  decimal.Decimal
	ExpectedPay decimal.Decimal
}

// MemberWeekly is the admin view of one member's week: the raw ledger rows
// plus the voucher position for the month the week's Monday falls in.
type MemberWeekly struct {
	UID              string
	Name             string
	Role             model.RoleLevel
	Transactions     []model.TxRecord
	RPReports        []model.RPRecord
	Events           []model.EventPurchase
	VoucherUses      []model.VoucherUse
	VoucherRemaining int
}

// Service computes weekly statistics from the ledger sheets.
type Service struct {
	gateway       service.Gateway
	spreadsheetID string
	users         UserDirectory
	loc           *time.Location
	logger        *slog.Logger
	now           func() time.Time
}

// NewService returns a stats service over the club spreadsheet.
func NewService(gw service.Gateway, spreadsheetID string, users UserDirectory, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		gateway:       gw,
		spreadsheetID: spreadsheetID,
		users:         users,
		loc:           loc,
		logger:        logger,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// CurrentWeek returns the label of the week containing now.
func (s *Service) CurrentWeek() string {
	return WeekOf(s.now())
}

// WeeklySummary computes one member's summary for the labeled week. An empty
// week means the current one.
func (s *Service) WeeklySummary(ctx context.Context, uid, week string) (Summary, error) {
	if week == "" {
		week = s.CurrentWeek()
	}
	start, err := WeekStart(week, s.loc)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{
		Week:      week,
		Label:     FormatWeek(week, s.loc),
		StartDate: model.FormatDate(start),
		EndDate:   model.FormatDate(start.AddDate(0, 0, 6)),
	}

	rows, err := s.gateway.BatchRead(ctx, s.spreadsheetID, []service.SheetRange{
		{Sheet: model.SheetTransactions, Range: "A:J"},
		{Sheet: model.SheetRPReports, Range: "A:G"},
		{Sheet: model.SheetEventPurchases, Range: "A:G"},
	})
	if err != nil {
		return Summary{}, err
	}

	for i, row := range rows[model.SheetTransactions] {
		if i == 0 {
			continue
		}
		rec := model.TxRecordFromRow(row, i+1)
		if rec.WriterUID == uid && inRange(rec.Date, out.StartDate, out.EndDate) {
			out.NetProfit = out.NetProfit.Add(rec.NetProfit())
		}
	}
	for i, row := range rows[model.SheetRPReports] {
		if i == 0 {
			continue
		}
		rec := model.RPRecordFromRow(row, i+1)
		if rec.WriterUID == uid && inRange(rec.Date, out.StartDate, out.EndDate) {
			out.RPCount++
			out.RPTotal = out.RPTotal.Add(rec.Amount)
		}
	}
	for i, row := range rows[model.SheetEventPurchases] {
		if i == 0 {
			continue
		}
		rec := model.EventPurchaseFromRow(row, i+1)
		if rec.BuyerUID == uid && inRange(rec.Date, out.StartDate, out.EndDate) {
			out.EventCount++
			out.EventTotal = out.EventTotal.Add(rec.Amount)
		}
	}
	out.ExpectedPay = out.RPTotal.Add(out.EventTotal)
	return out, nil
}

// AdminWeekly computes the per-member week for every approved member, in
// roster order. Voucher remaining is the monthly quota of the month the
// week's Monday falls in, floored at zero.
func (s *Service) AdminWeekly(ctx context.Context, week string) ([]MemberWeekly, error) {
	if week == "" {
		week = s.CurrentWeek()
	}
	start, err := WeekStart(week, s.loc)
	if err != nil {
		return nil, err
	}
	startStr := model.FormatDate(start)
	endStr := model.FormatDate(start.AddDate(0, 0, 6))
	month := start.Format(voucher.MonthLayout)

	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.gateway.BatchRead(ctx, s.spreadsheetID, []service.SheetRange{
		{Sheet: model.SheetTransactions, Range: "A:J"},
		{Sheet: model.SheetRPReports, Range: "A:G"},
		{Sheet: model.SheetEventPurchases, Range: "A:G"},
		{Sheet: model.SheetVoucherUsage, Range: "A:D"},
		{Sheet: model.SheetVoucherBonus, Range: "A:D"},
		{Sheet: model.SheetVoucherConfig, Range: "A:B"},
	})
	if err != nil {
		return nil, err
	}

	maxCount := voucher.DefaultMaxCount
	for i, row := range rows[model.SheetVoucherConfig] {
		if i == 0 || model.Cell(row, 0) != model.VoucherMaxKey {
			continue
		}
		if n, err := strconv.Atoi(model.Cell(row, 1)); err == nil && n > 0 {
			maxCount = n
		}
	}

	var out []MemberWeekly
	for _, u := range users {
		if !u.Approved {
			continue
		}
		m := MemberWeekly{UID: u.UID, Name: u.Name, Role: u.Role}

		for i, row := range rows[model.SheetTransactions] {
			if i == 0 {
				continue
			}
			rec := model.TxRecordFromRow(row, i+1)
			if rec.WriterUID == u.UID && inRange(rec.Date, startStr, endStr) {
				m.Transactions = append(m.Transactions, rec)
			}
		}
		for i, row := range rows[model.SheetRPReports] {
			if i == 0 {
				continue
			}
			rec := model.RPRecordFromRow(row, i+1)
			if rec.WriterUID == u.UID && inRange(rec.Date, startStr, endStr) {
				m.RPReports = append(m.RPReports, rec)
			}
		}
		for i, row := range rows[model.SheetEventPurchases] {
			if i == 0 {
				continue
			}
			rec := model.EventPurchaseFromRow(row, i+1)
			if rec.BuyerUID == u.UID && inRange(rec.Date, startStr, endStr) {
				m.Events = append(m.Events, rec)
			}
		}

		monthUsed := 0
		for i, row := range rows[model.SheetVoucherUsage] {
			if i == 0 {
				continue
			}
			use := model.VoucherUseFromRow(row, i+1)
			if use.UID != u.UID {
				continue
			}
			if use.Month == month {
				monthUsed++
			}
			// UsedAt is "YYYY-MM-DD HH:MM:SS"; the date prefix compares
			// lexically against the week bounds.
			if len(use.UsedAt) >= len(startStr) && inRange(use.UsedAt[:len(startStr)], startStr, endStr) {
				m.VoucherUses = append(m.VoucherUses, use)
			}
		}
		bonus := 0
		for i, row := range rows[model.SheetVoucherBonus] {
			if i == 0 {
				continue
			}
			b := model.VoucherBonusFromRow(row)
			if b.UID == u.UID && b.Month == month {
				bonus += b.Count
			}
		}
		m.VoucherRemaining = maxCount + bonus - monthUsed
		if m.VoucherRemaining < 0 {
			m.VoucherRemaining = 0
		}

		out = append(out, m)
	}
	return out, nil
}

// inRange reports start <= date <= end. Dates are zero-padded "YYYY-MM-DD"
// strings, so lexical order is date order.
func inRange(date, start, end string) bool {
	return date >= start && date <= end
}
