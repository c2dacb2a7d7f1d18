// Package voucher tracks monthly support-voucher quotas: a club-wide base
// cap, per-member bonus grants, and redemptions, each in its own sheet.
package voucher

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// DefaultMaxCount applies when the settings sheet has no cap row.
const DefaultMaxCount = 5

// MonthLayout is the quota bucket format of the voucher sheets.
const MonthLayout = "2006-01"

// Status is one member's voucher balance for a month.
type Status struct {
	Month     string
	Base      int
	Bonus     int
	Used      int
	Remaining int
}

// Service reads and mutates the voucher sheets.
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

// CurrentMonth returns the quota bucket of the present moment.
func (s *Service) CurrentMonth() string {
	return s.now().Format(MonthLayout)
}

// Types lists the redeemable voucher names.
func (s *Service) Types(ctx context.Context) ([]model.VoucherType, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetVoucherTypes, "A:A")
	if err != nil {
		return nil, nil
	}
	var types []model.VoucherType
	for i, row := range rows {
		name := model.Cell(row, 0)
		if i == 0 || name == "" {
			continue
		}
		types = append(types, model.VoucherType{Name: name, RowIndex: i + 1})
	}
	return types, nil
}

// AddType appends a voucher name to the catalog.
func (s *Service) AddType(ctx context.Context, name string) error {
	if name == "" {
		return common.NewUserError(common.ErrInvalidConfig, "a voucher name is required")
	}
	types, _ := s.Types(ctx)
	for _, t := range types {
		if t.Name == name {
			return common.NewUserError(common.ErrDuplicateEntry, fmt.Sprintf("voucher %q already exists", name))
		}
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetVoucherTypes, []string{name}, model.HeaderVoucherTypes); err != nil {
		return fmt.Errorf("add voucher type: %w", err)
	}
	s.logger.Info("voucher type added", "name", name)
	return nil
}

// RemoveType deletes a voucher name by its current sheet row.
func (s *Service) RemoveType(ctx context.Context, rowIndex int) error {
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetVoucherTypes, rowIndex); err != nil {
		return fmt.Errorf("remove voucher type row %d: %w", rowIndex, err)
	}
	return nil
}

// MaxCount returns the club-wide monthly cap from the settings sheet.
func (s *Service) MaxCount(ctx context.Context) int {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetVoucherConfig, "A:B")
	if err != nil {
		return DefaultMaxCount
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if model.Cell(row, 0) == model.VoucherMaxKey {
			if n, err := strconv.Atoi(model.Cell(row, 1)); err == nil && n > 0 {
				return n
			}
			return DefaultMaxCount
		}
	}
	return DefaultMaxCount
}

// SetMaxCount writes the club-wide monthly cap, updating the existing
// setting row in place or appending one.
func (s *Service) SetMaxCount(ctx context.Context, max int) error {
	if max < 1 {
		return common.NewUserError(common.ErrInvalidConfig, "the monthly cap must be at least 1")
	}

	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetVoucherConfig, "A:B")
	if err == nil {
		for i, row := range rows {
			if i == 0 || model.Cell(row, 0) != model.VoucherMaxKey {
				continue
			}
			rng := fmt.Sprintf("B%d", i+1)
			if err := s.gateway.Write(ctx, s.spreadsheetID, model.SheetVoucherConfig, rng, [][]string{{strconv.Itoa(max)}}); err != nil {
				return fmt.Errorf("update voucher cap: %w", err)
			}
			s.logger.Info("voucher cap updated", "max", max)
			return nil
		}
	}

	row := []string{model.VoucherMaxKey, strconv.Itoa(max)}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetVoucherConfig, row, model.HeaderVoucherConfig); err != nil {
		return fmt.Errorf("write voucher cap: %w", err)
	}
	s.logger.Info("voucher cap written", "max", max)
	return nil
}

// bonusFor sums a member's extra redemptions for the month.
func (s *Service) bonusFor(ctx context.Context, uid, month string) int {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetVoucherBonus, "A:D")
	if err != nil {
		return 0
	}
	total := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		b := model.VoucherBonusFromRow(row)
		if b.Month == month && b.UID == uid {
			total += b.Count
		}
	}
	return total
}

// usedFor counts a member's redemptions for the month. Every usage row
// counts as one regardless of voucher name.
func (s *Service) usedFor(ctx context.Context, uid, month string) int {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetVoucherUsage, "A:D")
	if err != nil {
		return 0
	}
	used := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		u := model.VoucherUseFromRow(row, i+1)
		if u.Month == month && u.UID == uid {
			used++
		}
	}
	return used
}

// StatusFor computes a member's balance for the month.
func (s *Service) StatusFor(ctx context.Context, uid, month string) Status {
	base := s.MaxCount(ctx)
	bonus := s.bonusFor(ctx, uid, month)
	used := s.usedFor(ctx, uid, month)
	return Status{
		Month:     month,
		Base:      base,
		Bonus:     bonus,
		Used:      used,
		Remaining: base + bonus - used,
	}
}

// Use redeems one voucher for the current month. A member with no balance
// left is refused.
func (s *Service) Use(ctx context.Context, uid, voucherName string) (Status, error) {
	if voucherName == "" {
		return Status{}, common.NewUserError(common.ErrInvalidConfig, "a voucher must be selected")
	}

	month := s.CurrentMonth()
	status := s.StatusFor(ctx, uid, month)
	if status.Remaining <= 0 {
		return status, common.NewUserError(common.ErrQuotaExhausted, "no voucher uses left this month")
	}

	now := s.now()
	use := model.VoucherUse{
		Month:   month,
		UID:     uid,
		Voucher: voucherName,
		UsedAt:  model.FormatDate(now) + " " + model.FormatTime(now),
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetVoucherUsage, use.ToRow(), model.HeaderVoucherUsage); err != nil {
		return status, fmt.Errorf("record voucher use: %w", err)
	}

	status.Used++
	status.Remaining--
	s.logger.Info("voucher used", "uid", uid, "voucher", voucherName, "remaining", status.Remaining)
	return status, nil
}

// GrantBonus gives a member extra redemptions for a month.
func (s *Service) GrantBonus(ctx context.Context, bonus model.VoucherBonus) error {
	if bonus.UID == "" || bonus.Count < 1 {
		return common.NewUserError(common.ErrInvalidConfig, "a member and a positive bonus count are required")
	}
	if bonus.Month == "" {
		bonus.Month = s.CurrentMonth()
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetVoucherBonus, bonus.ToRow(), model.HeaderVoucherBonus); err != nil {
		return fmt.Errorf("grant voucher bonus: %w", err)
	}
	s.logger.Info("voucher bonus granted", "uid", bonus.UID, "month", bonus.Month, "count", bonus.Count)
	return nil
}

// History lists a member's redemptions for a month, most recent last.
func (s *Service) History(ctx context.Context, uid, month string) ([]model.VoucherUse, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetVoucherUsage, "A:D")
	if err != nil {
		return nil, nil
	}
	var uses []model.VoucherUse
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		u := model.VoucherUseFromRow(row, i+1)
		if uid != "" && u.UID != uid {
			continue
		}
		if month != "" && u.Month != month {
			continue
		}
		uses = append(uses, u)
	}
	return uses, nil
}
