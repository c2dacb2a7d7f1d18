package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/1taes/JOY-Intranet/internal/auth"
	"github.com/1taes/JOY-Intranet/internal/calendar"
	"github.com/1taes/JOY-Intranet/internal/config"
	"github.com/1taes/JOY-Intranet/internal/ledger"
	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/orgchart"
	"github.com/1taes/JOY-Intranet/internal/search"
	"github.com/1taes/JOY-Intranet/internal/sheets"
	"github.com/1taes/JOY-Intranet/internal/stats"
	"github.com/1taes/JOY-Intranet/internal/voucher"
)

// app holds the wired services every command runs against. The roster lives
// in the secondary spreadsheet when one is configured; everything else stays
// in the primary.
type app struct {
	cfg      *sheets.Config
	client   *sheets.Client
	loc      *time.Location
	auth     *auth.Service
	tx       *ledger.TxService
	rp       *ledger.RPService
	events   *ledger.EventService
	vouchers *voucher.Service
	orgchart *orgchart.Service
	calendar *calendar.Service
	stats    *stats.Service
	search   *search.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	client, err := sheets.NewClient(ctx, *cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	roster := cfg.UserSpreadsheetID
	if roster == "" {
		roster = cfg.SpreadsheetID
	}
	loc := config.Location(cfg)

	a := &app{
		cfg:      cfg,
		client:   client,
		loc:      loc,
		auth:     auth.NewService(client, roster, logger),
		tx:       ledger.NewTxService(client, cfg.SpreadsheetID, loc, logger),
		rp:       ledger.NewRPService(client, cfg.SpreadsheetID, loc, logger),
		events:   ledger.NewEventService(client, cfg.SpreadsheetID, loc, logger),
		vouchers: voucher.NewService(client, cfg.SpreadsheetID, loc, logger),
		orgchart: orgchart.NewService(client, cfg.SpreadsheetID, logger),
		calendar: calendar.NewService(client, cfg.SpreadsheetID, loc, logger),
		search:   search.NewService(client, cfg.SpreadsheetID, logger),
	}
	a.stats = stats.NewService(client, cfg.SpreadsheetID, a.auth, loc, logger)
	return a, nil
}

// userByUID resolves an approved roster member, for commands that act on
// someone's behalf.
func (a *app) userByUID(ctx context.Context, uid string) (model.User, error) {
	if uid == "" {
		return model.User{}, fmt.Errorf("--uid is required")
	}
	users, err := a.auth.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.UID == uid && u.Approved {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("no approved member with unique number %q", uid)
}

// today returns the current date string in the configured time zone.
func (a *app) today() string {
	return model.FormatDate(time.Now().In(a.loc))
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
