package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a money cell. Cells written by older front ends may carry
// thousands separators or a trailing currency marker; everything but digits
// and a leading sign is stripped before parsing.
func ParseAmount(cell string) decimal.Decimal {
	var b strings.Builder
	for i, r := range cell {
		if r >= '0' && r <= '9' || (r == '-' && i == 0) {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TxRecord is one row of the transactions ledger.
type TxRecord struct {
	Date          string
	Time          string
	Item          string
	Quantity      int
	Amount        decimal.Decimal
	PublicDeposit decimal.Decimal
	CustomerID    string
	CustomerName  string
	Content       string
	WriterUID     string
	RowIndex      int
}

// TxRecordFromRow parses a transactions-sheet row.
func TxRecordFromRow(row []string, rowIndex int) TxRecord {
	qty, _ := strconv.Atoi(Cell(row, 3))
	if qty == 0 {
		qty = 1
	}
	return TxRecord{
		Date:          Cell(row, 0),
		Time:          Cell(row, 1),
		Item:          Cell(row, 2),
		Quantity:      qty,
		Amount:        ParseAmount(Cell(row, 4)),
		PublicDeposit: ParseAmount(Cell(row, 5)),
		CustomerID:    Cell(row, 6),
		CustomerName:  Cell(row, 7),
		Content:       Cell(row, 8),
		WriterUID:     Cell(row, 9),
		RowIndex:      rowIndex,
	}
}

// ToRow renders the record in transactions-sheet column order.
func (t TxRecord) ToRow() []string {
	return []string{
		t.Date,
		t.Time,
		t.Item,
		strconv.Itoa(t.Quantity),
		t.Amount.String(),
		t.PublicDeposit.String(),
		t.CustomerID,
		t.CustomerName,
		t.Content,
		t.WriterUID,
	}
}

// NetProfit is the transaction amount minus the public deposit share.
func (t TxRecord) NetProfit() decimal.Decimal {
	return t.Amount.Sub(t.PublicDeposit)
}

// TxItem is a sellable item from the transaction item catalog. Limit caps how
// many units one customer may buy per day; zero means unlimited.
type TxItem struct {
	Name          string
	Price         decimal.Decimal
	PublicDeposit decimal.Decimal
	Limit         int
}

// TxItemFromRow parses a catalog row.
func TxItemFromRow(row []string) TxItem {
	limit, _ := strconv.Atoi(Cell(row, 3))
	return TxItem{
		Name:          Cell(row, 0),
		Price:         ParseAmount(Cell(row, 1)),
		PublicDeposit: ParseAmount(Cell(row, 2)),
		Limit:         limit,
	}
}

// ToRow renders the catalog row.
func (i TxItem) ToRow() []string {
	return []string{i.Name, i.Price.String(), i.PublicDeposit.String(), strconv.Itoa(i.Limit)}
}

// RPRecord is one row of the RP report ledger. Each submitted report row
// covers a single performance, so Quantity is stored as 1.
type RPRecord struct {
	Date      string
	Time      string
	Item      string
	Quantity  int
	Amount    decimal.Decimal
	Content   string
	WriterUID string
	RowIndex  int
}

// RPRecordFromRow parses an RP-sheet row.
func RPRecordFromRow(row []string, rowIndex int) RPRecord {
	qty, _ := strconv.Atoi(Cell(row, 3))
	if qty == 0 {
		qty = 1
	}
	return RPRecord{
		Date:      Cell(row, 0),
		Time:      Cell(row, 1),
		Item:      Cell(row, 2),
		Quantity:  qty,
		Amount:    ParseAmount(Cell(row, 4)),
		Content:   Cell(row, 5),
		WriterUID: Cell(row, 6),
		RowIndex:  rowIndex,
	}
}

// ToRow renders the record in RP-sheet column order.
func (r RPRecord) ToRow() []string {
	return []string{
		r.Date,
		r.Time,
		r.Item,
		strconv.Itoa(r.Quantity),
		r.Amount.String(),
		r.Content,
		r.WriterUID,
	}
}

// RPItem is an entry of the RP item catalog.
type RPItem struct {
	Name  string
	Price decimal.Decimal
}

// RPItemFromRow parses a catalog row.
func RPItemFromRow(row []string) RPItem {
	return RPItem{Name: Cell(row, 0), Price: ParseAmount(Cell(row, 1))}
}

// ToRow renders the catalog row.
func (i RPItem) ToRow() []string {
	return []string{i.Name, i.Price.String()}
}

// EventPurchase is one row of the event participation ledger.
type EventPurchase struct {
	Date     string
	Time     string
	Item     string
	Quantity int
	Amount   decimal.Decimal
	Detail   string
	BuyerUID string
	RowIndex int
}

// EventPurchaseFromRow parses an event-purchases row.
func EventPurchaseFromRow(row []string, rowIndex int) EventPurchase {
	qty, _ := strconv.Atoi(Cell(row, 3))
	if qty == 0 {
		qty = 1
	}
	return EventPurchase{
		Date:     Cell(row, 0),
		Time:     Cell(row, 1),
		Item:     Cell(row, 2),
		Quantity: qty,
		Amount:   ParseAmount(Cell(row, 4)),
		Detail:   Cell(row, 5),
		BuyerUID: Cell(row, 6),
		RowIndex: rowIndex,
	}
}

// ToRow renders the purchase in event-sheet column order.
func (e EventPurchase) ToRow() []string {
	return []string{
		e.Date,
		e.Time,
		e.Item,
		strconv.Itoa(e.Quantity),
		e.Amount.String(),
		e.Detail,
		e.BuyerUID,
	}
}

// EventItem is an entry of the event item catalog.
type EventItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// EventItemFromRow parses a catalog row.
func EventItemFromRow(row []string) EventItem {
	qty, _ := strconv.Atoi(Cell(row, 2))
	if qty == 0 {
		qty = 1
	}
	return EventItem{Name: Cell(row, 0), Price: ParseAmount(Cell(row, 1)), Quantity: qty}
}

// ToRow renders the catalog row.
func (i EventItem) ToRow() []string {
	return []string{i.Name, i.Price.String(), strconv.Itoa(i.Quantity)}
}
