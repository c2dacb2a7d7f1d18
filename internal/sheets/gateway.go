package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// defaultRange is used when a caller does not name one.
const defaultRange = "A:Z"

// MetricsRecorder receives one event per upstream Sheets API call.
type MetricsRecorder interface {
	RecordSheetsCall(op string, err error)
}

// Client is the spreadsheet gateway. It resolves a credential per target
// spreadsheet, serves reads through the row cache, and surfaces every
// upstream failure to the caller without retrying.
type Client struct {
	cfg     Config
	logger  *slog.Logger
	tokens  *TokenManager
	cache   *rowCache
	limiter *rate.Limiter
	flight  singleflight.Group
	metrics MetricsRecorder

	// bearer services keyed by credential slot; absent slots fall back to
	// the read-only service.
	services map[CredentialSelector]*sheets.Service
	readonly *sheets.Service

	lockMu     sync.Mutex
	sheetLocks map[string]*sync.Mutex
}

var _ service.Gateway = (*Client)(nil)

// NewClient builds a gateway from the given config. Extra client options are
// appended to every underlying service, which lets tests point the gateway at
// a local endpoint.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tokens, err := NewTokenManager(ctx, cfg.ServiceAccountPath, cfg.UserServiceAccountPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		logger:     logger,
		tokens:     tokens,
		cache:      newRowCache(cfg.CacheTTL),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		services:   make(map[CredentialSelector]*sheets.Service),
		sheetLocks: make(map[string]*sync.Mutex),
	}

	for _, sel := range []CredentialSelector{CredentialPrimary, CredentialUser} {
		src, ok := tokens.TokenSource(sel)
		if !ok {
			continue
		}
		svc, err := sheets.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(src)}, opts...)...)
		if err != nil {
			return nil, fmt.Errorf("unable to create sheets service: %w", err)
		}
		c.services[sel] = svc
	}

	roOpt := option.WithoutAuthentication()
	if cfg.APIKey != "" {
		roOpt = option.WithAPIKey(cfg.APIKey)
	}
	c.readonly, err = sheets.NewService(ctx, append([]option.ClientOption{roOpt}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to create read-only sheets service: %w", err)
	}

	return c, nil
}

// SetMetrics attaches a recorder for upstream call accounting.
func (c *Client) SetMetrics(m MetricsRecorder) {
	c.metrics = m
}

// selectorFor maps a target spreadsheet to its credential slot: the
// configured secondary roster spreadsheet uses the user slot, everything
// else the primary.
func (c *Client) selectorFor(spreadsheetID string) CredentialSelector {
	if c.cfg.UserSpreadsheetID != "" && spreadsheetID == c.cfg.UserSpreadsheetID {
		return CredentialUser
	}
	return CredentialPrimary
}

// serviceFor resolves the service to use for an operation. Mutations need
// bearer auth; reads fall back to the API-key or unauthenticated service.
func (c *Client) serviceFor(spreadsheetID string, mutating bool) (*sheets.Service, error) {
	if svc, ok := c.services[c.selectorFor(spreadsheetID)]; ok {
		return svc, nil
	}
	if mutating {
		return nil, fmt.Errorf("%w: no service account for spreadsheet %s", common.ErrAuthRequired, spreadsheetID)
	}
	return c.readonly, nil
}

func (c *Client) record(op string, err error) {
	if c.metrics != nil {
		c.metrics.RecordSheetsCall(op, err)
	}
}

// Read implements service.Gateway. Identical concurrent reads are coalesced
// into one upstream call.
func (c *Client) Read(ctx context.Context, spreadsheetID, sheet, rng string) ([][]string, error) {
	if spreadsheetID == "" {
		return nil, common.ErrNoSpreadsheet
	}
	if rng == "" {
		rng = defaultRange
	}

	if rows, ok := c.cache.get(spreadsheetID, sheet, rng); ok {
		return rows, nil
	}

	key := spreadsheetID + "\x00" + sheet + "\x00" + rng
	v, err, _ := c.flight.Do(key, func() (any, error) {
		// A racing call may have populated the cache while this one waited.
		if rows, ok := c.cache.get(spreadsheetID, sheet, rng); ok {
			return rows, nil
		}

		svc, err := c.serviceFor(spreadsheetID, false)
		if err != nil {
			return nil, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rangeRef(sheet, rng)).Context(ctx).Do()
		c.record("read", err)
		if err != nil {
			return nil, fmt.Errorf("read %s!%s: %w", sheet, rng, err)
		}

		rows := stringRows(resp.Values)
		c.cache.put(spreadsheetID, sheet, rng, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([][]string), nil
}

// BatchRead implements service.Gateway: one multi-range fetch that populates
// a cache entry per requested (sheet, range) pair.
func (c *Client) BatchRead(ctx context.Context, spreadsheetID string, ranges []service.SheetRange) (map[string][][]string, error) {
	if spreadsheetID == "" {
		return nil, common.ErrNoSpreadsheet
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no sheet ranges given")
	}

	refs := make([]string, len(ranges))
	for i, r := range ranges {
		rng := r.Range
		if rng == "" {
			rng = defaultRange
		}
		refs[i] = rangeRef(r.Sheet, rng)
	}

	svc, err := c.serviceFor(spreadsheetID, false)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(refs...).Context(ctx).Do()
	c.record("batch_read", err)
	if err != nil {
		return nil, fmt.Errorf("batch read: %w", err)
	}

	result := make(map[string][][]string, len(ranges))
	for i, vr := range resp.ValueRanges {
		if i >= len(ranges) {
			break
		}
		rng := ranges[i].Range
		if rng == "" {
			rng = defaultRange
		}
		rows := stringRows(vr.Values)
		result[ranges[i].Sheet] = rows
		c.cache.put(spreadsheetID, ranges[i].Sheet, rng, rows)
	}
	return result, nil
}

// Write implements service.Gateway. It requires bearer auth and invalidates
// every cached range of the target sheet on success.
func (c *Client) Write(ctx context.Context, spreadsheetID, sheet, rng string, rows [][]string) error {
	if spreadsheetID == "" {
		return common.ErrNoSpreadsheet
	}

	svc, err := c.serviceFor(spreadsheetID, true)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: anyRows(rows)}
	_, err = svc.Spreadsheets.Values.Update(spreadsheetID, rangeRef(sheet, rng), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	c.record("write", err)
	if err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, rng, err)
	}

	c.cache.invalidate(spreadsheetID, sheet)
	c.logger.Debug("wrote range", "sheet", sheet, "range", rng, "rows", len(rows))
	return nil
}

// AppendRow implements service.Gateway. The next free row is found by
// counting column A, the same way the spreadsheets were populated before
// this program existed; a row with data only in later columns is invisible
// to that count. The per-sheet lock serializes appends within this process,
// but the count is still a read-then-write against a shared spreadsheet.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, sheet string, rowValues, header []string) error {
	if spreadsheetID == "" {
		return common.ErrNoSpreadsheet
	}

	mu := c.sheetLock(spreadsheetID, sheet)
	mu.Lock()
	defer mu.Unlock()

	rows, err := c.Read(ctx, spreadsheetID, sheet, "A:A")
	if err != nil {
		// The sheet may not exist yet; create it and start from row 1.
		if createErr := c.CreateSheetIfAbsent(ctx, spreadsheetID, sheet, nil); createErr != nil {
			return fmt.Errorf("append to %s: %w", sheet, createErr)
		}
		rows = nil
	}

	hasHeader := len(header) > 0 && len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == header[0]
	next := len(rows) + 1

	if len(header) > 0 && !hasHeader {
		hdrRange := fmt.Sprintf("A1:%s1", ColumnLetter(len(header)))
		if err := c.Write(ctx, spreadsheetID, sheet, hdrRange, [][]string{header}); err != nil {
			return fmt.Errorf("write header for %s: %w", sheet, err)
		}
		next = 2
	}

	rng := fmt.Sprintf("A%d:%s%d", next, ColumnLetter(len(rowValues)), next)
	return c.Write(ctx, spreadsheetID, sheet, rng, [][]string{rowValues})
}

// CreateSheetIfAbsent implements service.Gateway. An "already exists" answer
// from the backend is success.
func (c *Client) CreateSheetIfAbsent(ctx context.Context, spreadsheetID, sheet string, header []string) error {
	if spreadsheetID == "" {
		return common.ErrNoSpreadsheet
	}

	svc, err := c.serviceFor(spreadsheetID, true)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheet},
			},
		}},
	}
	_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	c.record("create_sheet", err)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && (gerr.Code == http.StatusConflict || strings.Contains(gerr.Message, "already exists")) {
			c.logger.Debug("sheet already exists", "sheet", sheet)
			return nil
		}
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	c.logger.Info("created sheet", "sheet", sheet)
	if len(header) > 0 {
		hdrRange := fmt.Sprintf("A1:%s1", ColumnLetter(len(header)))
		return c.Write(ctx, spreadsheetID, sheet, hdrRange, [][]string{header})
	}
	return nil
}

// DeleteRow implements service.Gateway: it resolves the sheet's numeric id
// from spreadsheet metadata, then deletes the single 1-based row. Whatever
// occupies that position at delete time is what goes; callers holding older
// row indexes must re-resolve them first.
func (c *Client) DeleteRow(ctx context.Context, spreadsheetID, sheet string, rowIndex int) error {
	if spreadsheetID == "" {
		return common.ErrNoSpreadsheet
	}
	if rowIndex < 1 {
		return fmt.Errorf("invalid row index %d", rowIndex)
	}

	svc, err := c.serviceFor(spreadsheetID, true)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	c.record("metadata", err)
	if err != nil {
		return fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}

	var sheetID int64 = -1
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			sheetID = s.Properties.SheetId
			break
		}
	}
	if sheetID < 0 {
		return fmt.Errorf("%w: %s", common.ErrSheetNotFound, sheet)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}
	_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	c.record("delete_row", err)
	if err != nil {
		return fmt.Errorf("delete row %d of %s: %w", rowIndex, sheet, err)
	}

	c.cache.invalidate(spreadsheetID, sheet)
	c.logger.Debug("deleted row", "sheet", sheet, "row", rowIndex)
	return nil
}

func (c *Client) sheetLock(spreadsheetID, sheet string) *sync.Mutex {
	c.lockMu.Lock()
	defer c.lockMu.Unlock()

	key := spreadsheetID + "\x00" + sheet
	mu, ok := c.sheetLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		c.sheetLocks[key] = mu
	}
	return mu
}

// rangeRef builds an A1 range reference with the sheet title quoted, so
// titles with spaces or non-ASCII characters survive.
func rangeRef(sheet, rng string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + rng
}

// ColumnLetter converts a 1-based column count to its A1 column name.
func ColumnLetter(n int) string {
	if n < 1 {
		return "A"
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func stringRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		rows[i] = cells
	}
	return rows
}

func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func anyRows(rows [][]string) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	return values
}
