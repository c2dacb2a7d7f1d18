package model

import "strconv"

// RoleLevel is the numeric rank stored in the 직급 column of the users sheet.
type RoleLevel int

// Role levels, lowest to highest.
const (
	RoleNormal    RoleLevel = 0
	RoleExecutive RoleLevel = 1
	RoleSenior    RoleLevel = 2
	RoleAdmin     RoleLevel = 3
)

// String returns the display name for a role level.
func (r RoleLevel) String() string {
	switch r {
	case RoleAdmin:
		return "관리자"
	case RoleSenior:
		return "고위직"
	case RoleExecutive:
		return "간부"
	default:
		return "일반"
	}
}

// User is one row of the users sheet. Row position is its only identity.
type User struct {
	UID          string
	Name         string
	Role         RoleLevel
	LoginID      string
	PasswordHash string
	Approved     bool
	RowIndex     int
}

// UserFromRow parses a users-sheet row. rowIndex is the 1-based sheet row.
// A blank role cell marks a registration that is still pending approval;
// any set value, including "0", counts as approved.
func UserFromRow(row []string, rowIndex int) User {
	roleCell := Cell(row, 2)
	role, _ := strconv.Atoi(roleCell)
	return User{
		UID:          Cell(row, 0),
		Name:         Cell(row, 1),
		Role:         RoleLevel(role),
		LoginID:      Cell(row, 3),
		PasswordHash: Cell(row, 4),
		Approved:     roleCell != "",
		RowIndex:     rowIndex,
	}
}

// ToRow renders the user in users-sheet column order. A pending user keeps a
// blank role cell.
func (u User) ToRow() []string {
	role := ""
	if u.Approved {
		role = strconv.Itoa(int(u.Role))
	}
	loginID := u.LoginID
	if loginID == "" {
		loginID = u.UID
	}
	return []string{u.UID, u.Name, role, loginID, u.PasswordHash}
}

// HasRole reports whether the user holds at least the given role.
func (u User) HasRole(min RoleLevel) bool {
	return u.Role >= min
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
