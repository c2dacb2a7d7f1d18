// Package orgchart manages the club's member directory sheet.
package orgchart

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// Service reads and mutates the org chart.
type Service struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
}

// NewService binds the service to the club spreadsheet.
func NewService(gw service.Gateway, spreadsheetID string, logger *slog.Logger) *Service {
	return &Service{gateway: gw, spreadsheetID: spreadsheetID, logger: logger}
}

// Members lists the chart sorted by position rank, then by the member's
// order cell. Rows without a name are skipped.
func (s *Service) Members(ctx context.Context) ([]model.OrgMember, error) {
	rows, err := s.gateway.Read(ctx, s.spreadsheetID, model.SheetOrgChart, "A:F")
	if err != nil {
		return nil, fmt.Errorf("read org chart: %w", err)
	}

	var members []model.OrgMember
	for i, row := range rows {
		if i == 0 || model.Cell(row, 0) == "" {
			continue
		}
		members = append(members, model.OrgMemberFromRow(row, i+1))
	}

	sort.SliceStable(members, func(a, b int) bool {
		ra, rb := model.PositionRank(members[a].Position), model.PositionRank(members[b].Position)
		if ra != rb {
			return ra < rb
		}
		return members[a].Order < members[b].Order
	})
	return members, nil
}

// Grouped returns the sorted chart bucketed by position, in rank order.
func (s *Service) Grouped(ctx context.Context) ([]string, map[string][]model.OrgMember, error) {
	members, err := s.Members(ctx)
	if err != nil {
		return nil, nil, err
	}

	groups := make(map[string][]model.OrgMember)
	var positions []string
	for _, m := range members {
		if _, seen := groups[m.Position]; !seen {
			positions = append(positions, m.Position)
		}
		groups[m.Position] = append(groups[m.Position], m)
	}
	return positions, groups, nil
}

// Add appends a member to the chart.
func (s *Service) Add(ctx context.Context, member model.OrgMember) error {
	if member.Name == "" || member.Position == "" {
		return common.NewUserError(common.ErrInvalidConfig, "name and position are required")
	}
	if member.Order < 1 {
		member.Order = 1
	}
	if err := s.gateway.AppendRow(ctx, s.spreadsheetID, model.SheetOrgChart, member.ToRow(), model.HeaderOrgChart); err != nil {
		return fmt.Errorf("add org member: %w", err)
	}
	s.logger.Info("org member added", "name", member.Name, "position", member.Position)
	return nil
}

// Update rewrites a member's row in place.
func (s *Service) Update(ctx context.Context, member model.OrgMember) error {
	if member.RowIndex < 2 {
		return fmt.Errorf("invalid org chart row %d", member.RowIndex)
	}
	if member.Name == "" || member.Position == "" {
		return common.NewUserError(common.ErrInvalidConfig, "name and position are required")
	}
	rng := fmt.Sprintf("A%d:F%d", member.RowIndex, member.RowIndex)
	if err := s.gateway.Write(ctx, s.spreadsheetID, model.SheetOrgChart, rng, [][]string{member.ToRow()}); err != nil {
		return fmt.Errorf("update org member row %d: %w", member.RowIndex, err)
	}
	s.logger.Info("org member updated", "name", member.Name, "row", member.RowIndex)
	return nil
}

// Remove deletes a member by their current sheet row.
func (s *Service) Remove(ctx context.Context, rowIndex int) error {
	if err := s.gateway.DeleteRow(ctx, s.spreadsheetID, model.SheetOrgChart, rowIndex); err != nil {
		return fmt.Errorf("remove org member row %d: %w", rowIndex, err)
	}
	s.logger.Info("org member removed", "row", rowIndex)
	return nil
}
