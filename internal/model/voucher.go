package model

import "strconv"

// VoucherType is a named support voucher members can redeem.
type VoucherType struct {
	Name     string
	RowIndex int
}

// VoucherUse is one redemption row. Month is the quota bucket (YYYY-MM).
type VoucherUse struct {
	Month    string
	UID      string
	Voucher  string
	UsedAt   string
	RowIndex int
}

// VoucherUseFromRow parses a usage-sheet row.
func VoucherUseFromRow(row []string, rowIndex int) VoucherUse {
	return VoucherUse{
		Month:    Cell(row, 0),
		UID:      Cell(row, 1),
		Voucher:  Cell(row, 2),
		UsedAt:   Cell(row, 3),
		RowIndex: rowIndex,
	}
}

// ToRow renders the redemption in usage-sheet column order.
func (v VoucherUse) ToRow() []string {
	return []string{v.Month, v.UID, v.Voucher, v.UsedAt}
}

// VoucherBonus grants a member extra redemptions for one month.
type VoucherBonus struct {
	Month  string
	UID    string
	Count  int
	Reason string
}

// VoucherBonusFromRow parses a bonus-sheet row.
func VoucherBonusFromRow(row []string) VoucherBonus {
	count, _ := strconv.Atoi(Cell(row, 2))
	return VoucherBonus{
		Month:  Cell(row, 0),
		UID:    Cell(row, 1),
		Count:  count,
		Reason: Cell(row, 3),
	}
}

// ToRow renders the bonus in bonus-sheet column order.
func (b VoucherBonus) ToRow() []string {
	return []string{b.Month, b.UID, strconv.Itoa(b.Count), b.Reason}
}
