package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// userCacheTTL is how long a fetched roster stays valid. Longer than the
// gateway's row cache, since roster changes are rare and always go through
// this service, which invalidates on every mutation.
const userCacheTTL = time.Minute

// Service reads and mutates the member roster.
type Service struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
	now           func() time.Time

	mu       sync.Mutex
	cached   []model.User
	cachedAt time.Time
}

// NewService returns a roster service bound to the roster spreadsheet.
func NewService(gw service.Gateway, rosterSpreadsheetID string, logger *slog.Logger) *Service {
	return &Service{
		gateway:       gw,
		spreadsheetID: rosterSpreadsheetID,
		logger:        logger,
		now:           time.Now,
	}
}

// Users returns all roster rows with a unique number, pending ones included.
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	if s.cached != nil && s.now().Sub(s.cachedAt) < userCacheTTL {
		users := s.cached
		s.mu.Unlock()
		return users, nil
	}
	s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = users
	s.cachedAt = s.now()
	s.mu.Unlock()
	return users, nil
}

func (s *Service) readUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetUsers, "")
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	var users []model.User
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		users = append(users, model.UserFromRow(row, i+1))
	}
	return users, nil
}

// Invalidate drops the cached roster so the next read is fresh.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Login verifies a unique number and password against the roster.
func (s *Service) Login(ctx context.Context, uid, password string) (model.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return model.User{}, err
	}

	hash := HashPassword(password)
	for _, u := range users {
		if u.UID != uid || u.PasswordHash != hash {
			continue
		}
		if !u.Approved {
			return model.User{}, common.NewUserError(common.ErrNotApproved, "this account has not been approved yet")
		}
		s.logger.Info("member logged in", "uid", u.UID, "role", u.Role.String())
		return u, nil
	}
	return model.User{}, common.NewUserError(common.ErrInvalidLogin, "unique number or password is incorrect")
}

// Register appends a pending roster row. The role cell stays blank until an
// admin approves the member.
func (s *Service) Register(ctx context.Context, uid, name, password string) error {
	if uid == "" || name == "" || password == "" {
		return common.NewUserError(common.ErrInvalidConfig, "unique number, name, and password are all required")
	}

	// Duplicate check against a fresh read. A sheet that does not exist yet
	// is fine; the append below creates it.
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetUsers, "")
	if err == nil {
		for _, row := range rows {
			if model.Cell(row, 0) == uid {
				return common.NewUserError(common.ErrDuplicateEntry, "this unique number is already registered")
			}
		}
	}

	pending := model.User{
		UID:          uid,
		Name:         name,
		PasswordHash: HashPassword(password),
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetUsers, pending.ToRow(), model.HeaderUsers); err != nil {
		return fmt.Errorf("register %s: %w", uid, err)
	}

	s.Invalidate()
	s.logger.Info("member registered", "uid", uid, "name", name)
	return nil
}

// NewUID suggests a unique number for a member who does not have one yet.
func NewUID() string {
	return uuid.NewString()[:8]
}

// Approve sets the role cell of a pending row, making the member active. The
// row is re-read first so concurrent edits to other columns survive.
func (s *Service) Approve(ctx context.Context, rowIndex int) error {
	return s.updateRow(ctx, rowIndex, func(u *model.User) {
		if !u.Approved {
			u.Approved = true
			u.Role = model.RoleNormal
		}
	})
}

// SetRole changes a member's role level.
func (s *Service) SetRole(ctx context.Context, rowIndex int, role model.RoleLevel) error {
	return s.updateRow(ctx, rowIndex, func(u *model.User) {
		u.Approved = true
		u.Role = role
	})
}

// Remove deletes a roster row outright. It serves both rejecting a pending
// registration and banning an active member.
func (s *Service) Remove(ctx context.Context, rowIndex int) error {
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetUsers, rowIndex); err != nil {
		return fmt.Errorf("remove roster row %d: %w", rowIndex, err)
	}
	s.Invalidate()
	s.logger.Info("roster row removed", "row", rowIndex)
	return nil
}

func (s *Service) updateRow(ctx context.Context, rowIndex int, mutate func(*model.User)) error {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetUsers, "")
	if err != nil {
		return fmt.Errorf("read users: %w", err)
	}
	if rowIndex < 2 || rowIndex > len(rows) {
		return fmt.Errorf("no user at row %d", rowIndex)
	}

	user := model.UserFromRow(rows[rowIndex-1], rowIndex)
	mutate(&user)

	rng := fmt.Sprintf("A%d:E%d", rowIndex, rowIndex)
	if err := s.gateway.Write(ctx, s.spreadsheetID, model.SheetUsers, rng, [][]string{user.ToRow()}); err != nil {
		return fmt.Errorf("update roster row %d: %w", rowIndex, err)
	}

	s.Invalidate()
	s.logger.Info("roster row updated", "row", rowIndex, "uid", user.UID, "role", user.Role.String())
	return nil
}
