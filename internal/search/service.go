// Package search queries the transaction and RP ledgers in one pass.
package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/1taes/JOY-Intranet/internal/model"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// Report kinds returned by a search.
const (
	KindTransaction = "transaction"
	KindRP          = "rp"
)

// Query narrows a search. Zero-value fields are not applied. Kind restricts
// the search to one ledger; Keyword filters transactions by content, customer
// name, and customer id. RP rows carry none of those fields and are not
// keyword-filtered.
type Query struct {
	Kind      string
	StartDate string
	EndDate   string
	WriterUID string
	Item      string
	Keyword   string
}

// Result is one matching ledger row. Exactly one of Tx and RP is set,
// indicated by Kind.
type Result struct {
	Kind string
	Tx   model.TxRecord
	RP   model.RPRecord
}

// Date returns the result's report date regardless of kind.
func (r Result) Date() string {
	if r.Kind == KindRP {
		return r.RP.Date
	}
	return r.Tx.Date
}

// Time returns the result's report time regardless of kind.
func (r Result) Time() string {
	if r.Kind == KindRP {
		return r.RP.Time
	}
	return r.Tx.Time
}

// Service searches the ledger sheets of the club spreadsheet.
type Service struct {
	gateway       service.Gateway
	spreadsheetID string
	logger        *slog.Logger
}

// NewService returns a search service over the club spreadsheet.
func NewService(gw service.Gateway, spreadsheetID string, logger *slog.Logger) *Service {
	return &Service{gateway: gw, spreadsheetID: spreadsheetID, logger: logger}
}

// Search reads the requested ledgers in one batch, applies the query
// filters, and returns the matches newest first (date, then time).
func (s *Service) Search(ctx context.Context, q Query) ([]Result, error) {
	var ranges []service.SheetRange
	if q.Kind == "" || q.Kind == KindTransaction {
		ranges = append(ranges, service.SheetRange{Sheet: model.SheetTransactions, Range: "A:J"})
	}
	if q.Kind == "" || q.Kind == KindRP {
		ranges = append(ranges, service.SheetRange{Sheet: model.SheetRPReports, Range: "A:G"})
	}
	if len(ranges) == 0 {
		return nil, nil
	}

	rows, err := s.gateway.BatchRead(ctx, s.spreadsheetID, ranges)
	if err != nil {
		return nil, err
	}

	var out []Result
	for i, row := range rows[model.SheetTransactions] {
		if i == 0 {
			continue
		}
		rec := model.TxRecordFromRow(row, i+1)
		if !q.matchesDates(rec.Date) || !q.matchesWriter(rec.WriterUID) || !q.matchesItem(rec.Item) {
			continue
		}
		if q.Keyword != "" {
			haystack := strings.ToLower(rec.Content + " " + rec.CustomerName + " " + rec.CustomerID)
			if !strings.Contains(haystack, strings.ToLower(q.Keyword)) {
				continue
			}
		}
		out = append(out, Result{Kind: KindTransaction, Tx: rec})
	}
	for i, row := range rows[model.SheetRPReports] {
		if i == 0 {
			continue
		}
		rec := model.RPRecordFromRow(row, i+1)
		if !q.matchesDates(rec.Date) || !q.matchesWriter(rec.WriterUID) || !q.matchesItem(rec.Item) {
			continue
		}
		out = append(out, Result{Kind: KindRP, RP: rec})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date() != out[j].Date() {
			return out[i].Date() > out[j].Date()
		}
		return out[i].Time() > out[j].Time()
	})
	return out, nil
}

func (q Query) matchesDates(date string) bool {
	if q.StartDate != "" && date < q.StartDate {
		return false
	}
	if q.EndDate != "" && date > q.EndDate {
		return false
	}
	return true
}

func (q Query) matchesWriter(uid string) bool {
	return q.WriterUID == "" || uid == q.WriterUID
}

func (q Query) matchesItem(item string) bool {
	return q.Item == "" || item == q.Item
}
