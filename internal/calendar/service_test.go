package calendar

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/sheets"
)

const testSpreadsheet = "ss-club"

var (
	executive = model.User{UID: "joy-001", Role: model.RoleExecutive, Approved: true}
	normal    = model.User{UID: "joy-002", Role: model.RoleNormal, Approved: true}
)

func newTestService(t *testing.T) (*Service, *sheets.MockGateway) {
	t.Helper()
	gw := sheets.NewMockGateway()
	gw.Seed(testSpreadsheet, model.SheetCalendar, [][]string{
		model.HeaderCalendar,
		{"2025-06-02", "정기 모임", "전원 참석", "joy-001", "2025-06-01 09:00:00"},
		{"2025-06-02", "면접", "", "joy-001", "2025-06-01 10:00:00"},
		{"2025-06-15", "워크숍", "", "joy-001", "2025-06-01 11:00:00"},
		{"2025-07-01", "창립기념일", "", "joy-001", "2025-06-01 12:00:00"},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(gw, testSpreadsheet, time.UTC, logger)
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }
	return svc, gw
}

func TestService_ByDate(t *testing.T) {
	svc, _ := newTestService(t)

	entries, err := svc.ByDate(context.Background(), "2025-06-02")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "정기 모임", entries[0].Title)
	assert.Equal(t, 2, entries[0].RowIndex)
}

func TestService_ByMonth(t *testing.T) {
	svc, _ := newTestService(t)

	entries, err := svc.ByMonth(context.Background(), "2025-06")
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = svc.ByMonth(context.Background(), "2025-07")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestService_Today(t *testing.T) {
	svc, _ := newTestService(t)

	entries, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_Add(t *testing.T) {
	svc, gw := newTestService(t)

	err := svc.Add(context.Background(), executive, "2025-06-20", "회식", "장소 미정")
	require.NoError(t, err)

	rows := gw.Rows(testSpreadsheet, model.SheetCalendar)
	added := rows[len(rows)-1]
	assert.Equal(t, []string{"2025-06-20", "회식", "장소 미정", "joy-001", "2025-06-02 08:00:00"}, added)
}

func TestService_AddValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.Add(ctx, normal, "2025-06-20", "회식", "")
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.Add(ctx, executive, "", "회식", "")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	err = svc.Add(ctx, executive, "06/20/2025", "회식", "")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestService_Delete(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	err := svc.Delete(ctx, normal, 2)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, executive, 2))
	rows := gw.Rows(testSpreadsheet, model.SheetCalendar)
	assert.Len(t, rows, 4)
	assert.Equal(t, "면접", rows[1][1])
}
