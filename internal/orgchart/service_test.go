package orgchart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/sheets"
)

const testSpreadsheet = "ss-club"

func newTestService(t *testing.T) (*Service, *sheets.MockGateway) {
	t.Helper()
	gw := sheets.NewMockGateway()
	gw.Seed(testSpreadsheet, model.SheetOrgChart, [][]string{
		model.HeaderOrgChart,
		{"박보스", "일반직", "", "2", "joy-001", ""},
		{"김대표", "고위직", "https://img/1.png", "1", "joy-001", "대표"},
		{"이팀장", "간부직", "", "1", "joy-001", "팀장"},
		{"최신입", "일반직", "", "1", "joy-001", ""},
		{"", "간부직", "", "1", "joy-001", ""}, // nameless, skipped
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(gw, testSpreadsheet, logger), gw
}

func TestService_MembersSorted(t *testing.T) {
	svc, _ := newTestService(t)

	members, err := svc.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 4)

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"김대표", "이팀장", "최신입", "박보스"}, names,
		"position rank first, then order within the group")
	assert.Equal(t, 3, members[0].RowIndex)
}

func TestService_Grouped(t *testing.T) {
	svc, _ := newTestService(t)

	positions, groups, err := svc.Grouped(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"고위직", "간부직", "일반직"}, positions)
	assert.Len(t, groups["일반직"], 2)
	assert.Equal(t, "대표", groups["고위직"][0].Title)
}

func TestService_Add(t *testing.T) {
	svc, gw := newTestService(t)

	err := svc.Add(context.Background(), model.OrgMember{
		Name:     "정새내기",
		Position: "일반직",
		AddedBy:  "joy-001",
	})
	require.NoError(t, err)

	rows := gw.Rows(testSpreadsheet, model.SheetOrgChart)
	added := rows[len(rows)-1]
	assert.Equal(t, "정새내기", added[0])
	assert.Equal(t, "1", added[3], "order defaults to 1")
}

func TestService_AddRequiresNameAndPosition(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Add(context.Background(), model.OrgMember{Name: "이름만"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestService_Update(t *testing.T) {
	svc, gw := newTestService(t)

	err := svc.Update(context.Background(), model.OrgMember{
		Name:     "박보스",
		Position: "간부직",
		Order:    3,
		AddedBy:  "joy-001",
		Title:    "부팀장",
		RowIndex: 2,
	})
	require.NoError(t, err)

	rows := gw.Rows(testSpreadsheet, model.SheetOrgChart)
	assert.Equal(t, []string{"박보스", "간부직", "", "3", "joy-001", "부팀장"}, rows[1])
}

func TestService_Remove(t *testing.T) {
	svc, gw := newTestService(t)

	require.NoError(t, svc.Remove(context.Background(), 2))
	rows := gw.Rows(testSpreadsheet, model.SheetOrgChart)
	assert.Len(t, rows, 5)
	assert.Equal(t, "김대표", rows[1][0], "following rows shift up")
}
