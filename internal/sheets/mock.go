package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/service"
)

// MockGateway is an in-memory service.Gateway for tests. It keeps whole
// sheets as row/column string grids and mimics the real gateway's range
// handling closely enough for the services built on top of it.
type MockGateway struct {
	mu     sync.Mutex
	sheets map[string]map[string][][]string

	ReadCalls   int
	WriteCalls  int
	AppendCalls int
	DeleteCalls int

	// ReadErr, WriteErr force the next matching call to fail.
	ReadErr  error
	WriteErr error
}

var _ service.Gateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	return &MockGateway{sheets: make(map[string]map[string][][]string)}
}

// Seed replaces a sheet's contents.
func (m *MockGateway) Seed(spreadsheetID, sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sheets[spreadsheetID] == nil {
		m.sheets[spreadsheetID] = make(map[string][][]string)
	}
	m.sheets[spreadsheetID][sheet] = cloneRows(rows)
}

// Rows returns a copy of a sheet's current contents.
func (m *MockGateway) Rows(spreadsheetID, sheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneRows(m.sheets[spreadsheetID][sheet])
}

func (m *MockGateway) Read(ctx context.Context, spreadsheetID, sheet, rng string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.ReadErr != nil {
		err := m.ReadErr
		m.ReadErr = nil
		return nil, err
	}
	rows, ok := m.sheets[spreadsheetID][sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrSheetNotFound, sheet)
	}
	return sliceRange(rows, rng), nil
}

func (m *MockGateway) BatchRead(ctx context.Context, spreadsheetID string, ranges []service.SheetRange) (map[string][][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.ReadErr != nil {
		err := m.ReadErr
		m.ReadErr = nil
		return nil, err
	}
	result := make(map[string][][]string, len(ranges))
	for _, r := range ranges {
		rows, ok := m.sheets[spreadsheetID][r.Sheet]
		if !ok {
			// the real API returns an empty value range for a known
			// spreadsheet but errors on an unknown sheet title
			return nil, fmt.Errorf("%w: %s", common.ErrSheetNotFound, r.Sheet)
		}
		result[r.Sheet] = sliceRange(rows, r.Range)
	}
	return result, nil
}

func (m *MockGateway) Write(ctx context.Context, spreadsheetID, sheet, rng string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls++
	if m.WriteErr != nil {
		err := m.WriteErr
		m.WriteErr = nil
		return err
	}
	if m.sheets[spreadsheetID] == nil {
		m.sheets[spreadsheetID] = make(map[string][][]string)
	}
	grid := m.sheets[spreadsheetID][sheet]

	startRow, startCol, err := parseRangeStart(rng)
	if err != nil {
		return err
	}
	for i, row := range rows {
		r := startRow + i
		for len(grid) < r {
			grid = append(grid, nil)
		}
		for j, cell := range row {
			c := startCol + j
			for len(grid[r-1]) < c {
				grid[r-1] = append(grid[r-1], "")
			}
			grid[r-1][c-1] = cell
		}
	}
	m.sheets[spreadsheetID][sheet] = grid
	return nil
}

func (m *MockGateway) AppendRow(ctx context.Context, spreadsheetID, sheet string, rowValues, header []string) error {
	m.mu.Lock()
	m.AppendCalls++
	m.mu.Unlock()

	rows, err := m.Read(ctx, spreadsheetID, sheet, "A:A")
	if err != nil {
		if createErr := m.CreateSheetIfAbsent(ctx, spreadsheetID, sheet, nil); createErr != nil {
			return createErr
		}
		rows = nil
	}

	hasHeader := len(header) > 0 && len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == header[0]
	next := len(rows) + 1
	if len(header) > 0 && !hasHeader {
		hdrRange := fmt.Sprintf("A1:%s1", ColumnLetter(len(header)))
		if err := m.Write(ctx, spreadsheetID, sheet, hdrRange, [][]string{header}); err != nil {
			return err
		}
		next = 2
	}
	rng := fmt.Sprintf("A%d:%s%d", next, ColumnLetter(len(rowValues)), next)
	return m.Write(ctx, spreadsheetID, sheet, rng, [][]string{rowValues})
}

func (m *MockGateway) CreateSheetIfAbsent(ctx context.Context, spreadsheetID, sheet string, header []string) error {
	m.mu.Lock()
	if m.sheets[spreadsheetID] == nil {
		m.sheets[spreadsheetID] = make(map[string][][]string)
	}
	_, existed := m.sheets[spreadsheetID][sheet]
	if !existed {
		m.sheets[spreadsheetID][sheet] = nil
	}
	m.mu.Unlock()

	if !existed && len(header) > 0 {
		hdrRange := fmt.Sprintf("A1:%s1", ColumnLetter(len(header)))
		return m.Write(ctx, spreadsheetID, sheet, hdrRange, [][]string{header})
	}
	return nil
}

func (m *MockGateway) DeleteRow(ctx context.Context, spreadsheetID, sheet string, rowIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	rows, ok := m.sheets[spreadsheetID][sheet]
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrSheetNotFound, sheet)
	}
	if rowIndex < 1 || rowIndex > len(rows) {
		return fmt.Errorf("invalid row index %d", rowIndex)
	}
	m.sheets[spreadsheetID][sheet] = append(rows[:rowIndex-1], rows[rowIndex:]...)
	return nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

var cellRef = regexp.MustCompile(`^([A-Z]+)(\d*)$`)

// sliceRange applies an A1 range like "A:A", "A:Z" or "A2:J50" to a grid.
// Row-unbounded column ranges cover every stored row.
func sliceRange(rows [][]string, rng string) [][]string {
	if rng == "" {
		rng = defaultRange
	}
	parts := strings.SplitN(rng, ":", 2)
	startCol, startRow := parseCellRef(parts[0], 1, 1)
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow = parseCellRef(parts[1], startCol, len(rows))
	}
	if startRow < 1 {
		startRow = 1
	}
	if endRow > len(rows) || endRow == 0 {
		endRow = len(rows)
	}

	var out [][]string
	for r := startRow; r <= endRow; r++ {
		src := rows[r-1]
		var cells []string
		for c := startCol; c <= endCol && c <= len(src); c++ {
			cells = append(cells, src[c-1])
		}
		out = append(out, cells)
	}
	return out
}

func parseCellRef(ref string, defCol, defRow int) (col, row int) {
	mt := cellRef.FindStringSubmatch(ref)
	if mt == nil {
		return defCol, defRow
	}
	col = 0
	for _, ch := range mt[1] {
		col = col*26 + int(ch-'A') + 1
	}
	row = defRow
	if mt[2] != "" {
		row, _ = strconv.Atoi(mt[2])
	} else {
		row = 0 // unbounded
	}
	return col, row
}

func parseRangeStart(rng string) (row, col int, err error) {
	start := strings.SplitN(rng, ":", 2)[0]
	mt := cellRef.FindStringSubmatch(start)
	if mt == nil || mt[2] == "" {
		return 0, 0, fmt.Errorf("unsupported range %q", rng)
	}
	col = 0
	for _, ch := range mt[1] {
		col = col*26 + int(ch-'A') + 1
	}
	row, err = strconv.Atoi(mt[2])
	return row, col, err
}
