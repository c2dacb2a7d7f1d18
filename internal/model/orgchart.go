package model

import "strconv"

// Position display order within the org chart, highest rank first. Unknown
// positions sort last.
var positionRank = map[string]int{
	"고위직": 1,
	"간부직": 2,
	"일반직": 3,
}

// PositionRank returns the sort rank of a position name.
func PositionRank(position string) int {
	if r, ok := positionRank[position]; ok {
		return r
	}
	return 99
}

// OrgMember is one row of the org chart sheet.
type OrgMember struct {
	Name     string
	Position string
	ImageURL string
	Order    int
	AddedBy  string
	Title    string
	RowIndex int
}

// OrgMemberFromRow parses an org-chart row. A missing order cell sorts the
// member to the end of their group.
func OrgMemberFromRow(row []string, rowIndex int) OrgMember {
	order, err := strconv.Atoi(Cell(row, 3))
	if err != nil {
		order = 999
	}
	position := Cell(row, 1)
	if position == "" {
		position = "일반직"
	}
	return OrgMember{
		Name:     Cell(row, 0),
		Position: position,
		ImageURL: Cell(row, 2),
		Order:    order,
		AddedBy:  Cell(row, 4),
		Title:    Cell(row, 5),
		RowIndex: rowIndex,
	}
}

// ToRow renders the member in org-chart column order.
func (m OrgMember) ToRow() []string {
	return []string{m.Name, m.Position, m.ImageURL, strconv.Itoa(m.Order), m.AddedBy, m.Title}
}
