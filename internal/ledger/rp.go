package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// RPService manages the RP report ledger and its item catalog.
type RPService struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
	now           func() time.Time
}

// NewRPService binds the service to the club spreadsheet.
func NewRPService(gw service.Gateway, spreadsheetID string, loc *time.Location, logger *slog.Logger) *RPService {
	return &RPService{
		gateway:       gw,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// Items returns the RP item catalog.
func (s *RPService) Items(ctx context.Context) ([]model.RPItem, error) {
	rows, err := readCatalog(ctx, s.gateway, s.spreadsheetID, model.SheetRPItems)
	if err != nil {
		return nil, err
	}
	items := make([]model.RPItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.RPItemFromRow(row))
	}
	return items, nil
}

// SaveItems replaces the whole RP item catalog.
func (s *RPService) SaveItems(ctx context.Context, items []model.RPItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.ToRow())
	}
	if err := rewriteCatalog(ctx, s.gateway, s.spreadsheetID, model.SheetRPItems, model.HeaderRPItems, rows); err != nil {
		return err
	}
	s.logger.Info("rp items saved", "count", len(items))
	return nil
}

// Add saves count reports of one catalog item. Every stored row covers a
// single performance: quantity 1 and the per-unit catalog price, so a
// three-performance report becomes three rows.
func (s *RPService) Add(ctx context.Context, item string, count int, content, writerUID string) error {
	if item == "" {
		return common.NewUserError(common.ErrInvalidConfig, "an RP item is required")
	}
	if count < 1 {
		count = 1
	}

	price := decimal.Zero
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Name == item {
			price = it.Price
			break
		}
	}

	now := s.now()
	rec := model.RPRecord{
		Date:      model.FormatDate(now),
		Time:      model.FormatTime(now),
		Item:      item,
		Quantity:  1,
		Amount:    price,
		Content:   content,
		WriterUID: writerUID,
	}
	for i := 0; i < count; i++ {
		if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetRPReports, rec.ToRow(), model.HeaderRPReports); err != nil {
			return fmt.Errorf("save rp report %d of %d: %w", i+1, count, err)
		}
	}
	s.logger.Info("rp reports saved", "item", item, "count", count, "writer", writerUID)
	return nil
}

// RecordsByDate lists RP reports for one date, optionally for one author.
func (s *RPService) RecordsByDate(ctx context.Context, date, writerUID string) ([]model.RPRecord, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetRPReports, "A:G")
	if err != nil {
		return nil, fmt.Errorf("read rp reports: %w", err)
	}

	var records []model.RPRecord
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		rec := model.RPRecordFromRow(row, i+1)
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

// Delete removes one RP report by its current sheet row.
func (s *RPService) Delete(ctx context.Context, rowIndex int) error {
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetRPReports, rowIndex); err != nil {
		return fmt.Errorf("delete rp row %d: %w", rowIndex, err)
	}
	s.logger.Info("rp report deleted", "row", rowIndex)
	return nil
}
