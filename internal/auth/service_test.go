package auth

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

const testRoster = "ss-roster"

func newTestService(t *testing.T) (*Service, *sheets.MockGateway) {
	t.Helper()
	gw := sheets.NewMockGateway()
	gw.Seed(testRoster, model.SheetUsers, [][]string{
		model.HeaderUsers,
		{"joy-001", "김태수", "3", "joy-001", HashPassword("admin-pw")},
		{"joy-002", "이민지", "0", "joy-002", HashPassword("member-pw")},
		{"joy-003", "박준형", "", "joy-003", HashPassword("pending-pw")},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(gw, testRoster, logger), gw
}

func TestService_Users(t *testing.T) {
	svc, gw := newTestService(t)

	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "joy-001", users[0].UID)
	assert.True(t, users[0].IsAdmin())
	assert.Equal(t, 2, users[0].RowIndex, "row index is the 1-based sheet row")

	assert.True(t, users[1].Approved)
	assert.Equal(t, model.RoleNormal, users[1].Role)

	assert.False(t, users[2].Approved, "blank role cell means pending")

	// The roster cache serves the second call.
	_, err = svc.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.ReadCalls)
}

func TestService_UsersCacheExpires(t *testing.T) {
	svc, gw := newTestService(t)
	now := time.Now()
	svc.now = func() time.Time { return now }

	_, err := svc.Users(context.Background())
	require.NoError(t, err)

	now = now.Add(userCacheTTL)
	_, err = svc.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, gw.ReadCalls)
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "joy-002", "member-pw")
		require.NoError(t, err)
		assert.Equal(t, "이민지", user.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "joy-002", "wrong")
		assert.ErrorIs(t, err, common.ErrInvalidLogin)
	})

	t.Run("unknown uid", func(t *testing.T) {
		_, err := svc.Login(ctx, "joy-999", "member-pw")
		assert.ErrorIs(t, err, common.ErrInvalidLogin)
	})

	t.Run("pending account", func(t *testing.T) {
		_, err := svc.Login(ctx, "joy-003", "pending-pw")
		assert.ErrorIs(t, err, common.ErrNotApproved)
		var userErr *common.UserError
		require.ErrorAs(t, err, &userErr)
		assert.Contains(t, userErr.UserMessage, "not been approved")
	})
}

func TestService_Register(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "joy-004", "최서연", "new-pw"))

	rows := gw.Rows(testRoster, model.SheetUsers)
	require.Len(t, rows, 5)
	added := rows[4]
	assert.Equal(t, "joy-004", added[0])
	assert.Equal(t, "최서연", added[1])
	assert.Equal(t, "", added[2], "new registrations wait for approval")
	assert.Equal(t, "joy-004", added[3])
	assert.Equal(t, HashPassword("new-pw"), added[4])

	// The new pending member is visible immediately.
	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Register(context.Background(), "joy-001", "다른사람", "pw")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestService_RegisterMissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Register(context.Background(), "", "이름", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestService_RegisterCreatesSheet(t *testing.T) {
	gw := sheets.NewMockGateway()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(gw, testRoster, logger)

	require.NoError(t, svc.Register(context.Background(), "joy-001", "김태수", "pw"))

	rows := gw.Rows(testRoster, model.SheetUsers)
	require.Len(t, rows, 2)
	assert.Equal(t, model.HeaderUsers, rows[0], "header written on first append")
}

func TestService_Approve(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, 4))

	rows := gw.Rows(testRoster, model.SheetUsers)
	assert.Equal(t, "0", rows[3][2], "approval assigns the normal role")

	user, err := svc.Login(ctx, "joy-003", "pending-pw")
	require.NoError(t, err)
	assert.Equal(t, model.RoleNormal, user.Role)
}

func TestService_ApproveKeepsExistingRole(t *testing.T) {
	svc, gw := newTestService(t)

	require.NoError(t, svc.Approve(context.Background(), 2))
	rows := gw.Rows(testRoster, model.SheetUsers)
	assert.Equal(t, "3", rows[1][2], "approving an already active member keeps the role")
}

func TestService_SetRole(t *testing.T) {
	svc, gw := newTestService(t)

	require.NoError(t, svc.SetRole(context.Background(), 3, model.RoleSenior))
	rows := gw.Rows(testRoster, model.SheetUsers)
	assert.Equal(t, "2", rows[2][2])
}

func TestService_UpdateRowOutOfRange(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Approve(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user at row 42")
}

func TestService_Remove(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, 4))
	rows := gw.Rows(testRoster, model.SheetUsers)
	require.Len(t, rows, 3)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestNewUID(t *testing.T) {
	uid := NewUID()
	assert.Len(t, uid, 8)
	assert.NotEqual(t, uid, NewUID())
}
