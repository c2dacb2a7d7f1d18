package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// TxService manages the transactions ledger and its item catalog.
type TxService struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
	now           func() time.Time
}

// NewTxService binds the service to the club spreadsheet. Timestamps are
// taken in the given location.
func NewTxService(gw service.Gateway, spreadsheetID string, loc *time.Location, logger *slog.Logger) *TxService {
	return &TxService{
		gateway:       gw,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// Items returns the sellable item catalog.
func (s *TxService) Items(ctx context.Context) ([]model.TxItem, error) {
	rows, err := readCatalog(ctx, s.gateway, s.spreadsheetID, model.SheetTxItems)
	if err != nil {
		return nil, err
	}
	items := make([]model.TxItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.TxItemFromRow(row))
	}
	return items, nil
}

// SaveItems replaces the whole item catalog.
func (s *TxService) SaveItems(ctx context.Context, items []model.TxItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.ToRow())
	}
	if err := rewriteCatalog(ctx, s.gateway, s.spreadsheetID, model.SheetTxItems, model.HeaderTxItems, rows); err != nil {
		return err
	}
	s.logger.Info("transaction items saved", "count", len(items))
	return nil
}

// Add appends a transaction report. Date, time, and quantity are defaulted
// when unset, and items with a daily cap are checked against the customer's
// purchases of the same item today.
func (s *TxService) Add(ctx context.Context, rec model.TxRecord) error {
	if rec.Item == "" || rec.CustomerID == "" {
		return common.NewUserError(common.ErrInvalidConfig, "item and customer unique number are required")
	}

	now := s.now()
	if rec.Date == "" {
		rec.Date = model.FormatDate(now)
	}
	if rec.Time == "" {
		rec.Time = model.FormatTime(now)
	}
	if rec.Quantity < 1 {
		rec.Quantity = 1
	}

	if err := s.checkDailyLimit(ctx, rec); err != nil {
		return err
	}

	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetTransactions, rec.ToRow(), model.HeaderTransactions); err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	s.logger.Info("transaction saved", "item", rec.Item, "customer", rec.CustomerID, "writer", rec.WriterUID)
	return nil
}

func (s *TxService) checkDailyLimit(ctx context.Context, rec model.TxRecord) error {
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	var limit int
	for _, it := range items {
		if it.Name == rec.Item {
			limit = it.Limit
			break
		}
	}
	if limit <= 0 {
		return nil
	}

	bought, err := s.countForCustomer(ctx, rec.CustomerID, rec.Item, rec.Date)
	if err != nil {
		// The count is advisory; a failed read never blocks the sale.
		bought = 0
	}
	if bought+rec.Quantity > limit {
		return common.NewUserError(common.ErrItemLimit,
			fmt.Sprintf("this customer may buy at most %d of %q per day (already %d)", limit, rec.Item, bought))
	}
	return nil
}

// countForCustomer sums the quantity a customer bought of one item on one day.
func (s *TxService) countForCustomer(ctx context.Context, customerID, item, date string) (int, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetTransactions, "A:J")
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec := model.TxRecordFromRow(row, i+1)
		if rec.Date == date && rec.CustomerID == customerID && rec.Item == item {
			count += rec.Quantity
		}
	}
	return count, nil
}

// RecordsByDate lists reports for one date. A non-empty writerUID restricts
// the result to that author's rows.
func (s *TxService) RecordsByDate(ctx context.Context, date, writerUID string) ([]model.TxRecord, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetTransactions, "A:J")
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}

	var records []model.TxRecord
	for i, row := range rows {
		if i == 0 || len(row) < 10 {
			continue
		}
		rec := model.TxRecordFromRow(row, i+1)
		if rec.Date != date {
			continue
		}
		if writerUID != "" && rec.WriterUID != writerUID {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes one report by its current sheet row.
func (s *TxService) Delete(ctx context.Context, rowIndex int) error {
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetTransactions, rowIndex); err != nil {
		return fmt.Errorf("delete transaction row %d: %w", rowIndex, err)
	}
	s.logger.Info("transaction deleted", "row", rowIndex)
	return nil
}
