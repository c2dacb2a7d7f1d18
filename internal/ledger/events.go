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

// EventService manages event participations and the event item catalog.
type EventService struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
	now           func() time.Time
}

// NewEventService binds the service to the club spreadsheet.
func NewEventService(gw service.Gateway, spreadsheetID string, loc *time.Location, logger *slog.Logger) *EventService {
	return &EventService{
		gateway:       gw,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// Items returns the event item catalog.
func (s *EventService) Items(ctx context.Context) ([]model.EventItem, error) {
	rows, err := readCatalog(ctx, s.gateway, s.spreadsheetID, model.SheetEventItems)
	if err != nil {
		return nil, err
	}
	items := make([]model.EventItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.EventItemFromRow(row))
	}
	return items, nil
}

// SaveItems replaces the whole event item catalog.
func (s *EventService) SaveItems(ctx context.Context, items []model.EventItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.ToRow())
	}
	if err := rewriteCatalog(ctx, s.gateway, s.spreadsheetID, model.SheetEventItems, model.HeaderEventItems, rows); err != nil {
		return err
	}
	s.logger.Info("event items saved", "count", len(items))
	return nil
}

// Participate records one participation in a catalog event. Each entry is a
// single unit priced from the catalog.
func (s *EventService) Participate(ctx context.Context, item, detail, buyerUID string) error {
	if item == "" {
		return common.NewUserError(common.ErrInvalidConfig, "an event item is required")
	}

	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	var found *model.EventItem
	for i := range items {
		if items[i].Name == item {
			found = &items[i]
			break
		}
	}
	if found == nil {
		return common.NewUserError(common.ErrInvalidConfig, fmt.Sprintf("unknown event item %q", item))
	}

	now := s.now()
	purchase := model.EventPurchase{
		Date:     model.FormatDate(now),
		Time:     model.FormatTime(now),
		Item:     item,
		Quantity: 1,
		Amount:   found.Price,
		Detail:   detail,
		BuyerUID: buyerUID,
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetEventPurchases, purchase.ToRow(), model.HeaderEventPurchases); err != nil {
		return fmt.Errorf("save event participation: %w", err)
	}
	s.logger.Info("event participation saved", "item", item, "buyer", buyerUID)
	return nil
}

// History lists a member's participations, newest row last. An empty
// buyerUID returns everyone's.
func (s *EventService) History(ctx context.Context, buyerUID string) ([]model.EventPurchase, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetEventPurchases, "A:G")
	if err != nil {
		return nil, fmt.Errorf("read event purchases: %w", err)
	}

	var purchases []model.EventPurchase
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		p := model.EventPurchaseFromRow(row, i+1)
		if buyerUID != "" && p.BuyerUID != buyerUID {
			continue
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

// Delete removes one participation by its current sheet row.
func (s *EventService) Delete(ctx context.Context, rowIndex int) error {
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetEventPurchases, rowIndex); err != nil {
		return fmt.Errorf("delete event row %d: %w", rowIndex, err)
	}
	s.logger.Info("event participation deleted", "row", rowIndex)
	return nil
}
