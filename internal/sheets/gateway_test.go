package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/1taes/JOY-Intranet/internal/common"
	"github.com/1taes/JOY-Intranet/internal/service"
)

type recordedUpdate struct {
	Range  string
	Values [][]any
}

type batchUpdateReq struct {
	Requests []struct {
		AddSheet *struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"addSheet"`
		DeleteDimension *struct {
			Range struct {
				SheetID    int64  `json:"sheetId"`
				Dimension  string `json:"dimension"`
				StartIndex int64  `json:"startIndex"`
				EndIndex   int64  `json:"endIndex"`
			} `json:"range"`
		} `json:"deleteDimension"`
	} `json:"requests"`
}

// fakeBackend emulates the small slice of the Sheets API the gateway uses.
type fakeBackend struct {
	mu sync.Mutex

	rangeRows map[string][][]any // keyed by full A1 reference
	sheetIDs  map[string]int64   // title -> numeric id for metadata calls

	batchUpdateStatus int // non-zero forces batchUpdate to fail
	batchUpdateMsg    string

	getCount         int
	batchGetCount    int
	updateCount      int
	batchUpdateCount int
	metaCount        int

	updates      []recordedUpdate
	batchUpdates []batchUpdateReq
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rangeRows: make(map[string][][]any),
		sheetIDs:  make(map[string]int64),
	}
}

func (f *fakeBackend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path

	switch {
	case strings.HasSuffix(path, "/values:batchGet"):
		f.batchGetCount++
		var vrs []map[string]any
		for _, rng := range r.URL.Query()["ranges"] {
			vrs = append(vrs, map[string]any{"range": rng, "values": f.rangeRows[rng]})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"valueRanges": vrs})

	case strings.Contains(path, "/values/") && r.Method == http.MethodGet:
		f.getCount++
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		_ = json.NewEncoder(w).Encode(map[string]any{"range": rng, "values": f.rangeRows[rng]})

	case strings.Contains(path, "/values/") && r.Method == http.MethodPut:
		f.updateCount++
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		var body struct {
			Values [][]any `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.updates = append(f.updates, recordedUpdate{Range: rng, Values: body.Values})
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedCells": 1})

	case strings.HasSuffix(path, ":batchUpdate"):
		f.batchUpdateCount++
		var req batchUpdateReq
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.batchUpdates = append(f.batchUpdates, req)
		if f.batchUpdateStatus != 0 {
			w.WriteHeader(f.batchUpdateStatus)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"status":"FAILED_PRECONDITION"}}`,
				f.batchUpdateStatus, f.batchUpdateMsg)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"replies": []any{map[string]any{}}})

	case r.Method == http.MethodGet:
		f.metaCount++
		var props []map[string]any
		for title, id := range f.sheetIDs {
			props = append(props, map[string]any{"properties": map[string]any{"sheetId": id, "title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sheets": props})

	default:
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}
}

func (f *fakeBackend) setRange(ref string, rows [][]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeRows[ref] = rows
}

// newTestClient builds a gateway pointed at the fake backend. With
// serviceAccount true it gets a bearer credential minted from a stub token
// endpoint; otherwise it is API-key read-only.
func newTestClient(t *testing.T, backend *fakeBackend, serviceAccount bool) *Client {
	t.Helper()

	srv := backend.serve(t)
	cfg := DefaultConfig()
	cfg.SpreadsheetID = "ss-main"
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000

	if serviceAccount {
		var exchanges int32
		tokenSrv := newTokenEndpoint(t, "bearer-test", &exchanges)
		cfg.ServiceAccountPath = writeServiceAccountKey(t, tokenSrv.URL)
	} else {
		cfg.APIKey = "test-key"
	}

	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	client, err := NewClient(context.Background(), cfg, logger, option.WithEndpoint(srv.URL))
	require.NoError(t, err)
	return client
}

func TestClient_ReadCachesWithinTTL(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'거래'!A:Z", [][]any{
		{"날짜", "금액"},
		{"2025-06-01", float64(15000)},
	})
	client := newTestClient(t, backend, false)

	rows, err := client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"날짜", "금액"}, rows[0])
	assert.Equal(t, "15000", rows[1][1], "numeric cells come back as plain strings")

	// Second read is served from the cache.
	_, err = client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.getCount)
}

func TestClient_WriteInvalidatesCachedReads(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'거래'!A:Z", [][]any{{"날짜"}, {"2025-06-01"}})
	client := newTestClient(t, backend, true)

	_, err := client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.getCount)

	err = client.Write(context.Background(), "ss-main", "거래", "A3:A3", [][]string{{"2025-06-02"}})
	require.NoError(t, err)
	require.Len(t, backend.updates, 1)
	assert.Equal(t, "'거래'!A3:A3", backend.updates[0].Range)

	// The write dropped the cached range, so this read goes upstream again.
	_, err = client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.getCount)
}

func TestClient_BatchRead(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'거래'!A:J", [][]any{{"날짜"}, {"2025-06-01"}})
	backend.setRange("'RP'!A:G", [][]any{{"날짜"}})
	client := newTestClient(t, backend, false)

	result, err := client.BatchRead(context.Background(), "ss-main", []service.SheetRange{
		{Sheet: "거래", Range: "A:J"},
		{Sheet: "RP", Range: "A:G"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.batchGetCount)
	require.Len(t, result["거래"], 2)
	require.Len(t, result["RP"], 1)

	// Each fetched range landed in the cache.
	_, err = client.Read(context.Background(), "ss-main", "거래", "A:J")
	require.NoError(t, err)
	_, err = client.Read(context.Background(), "ss-main", "RP", "A:G")
	require.NoError(t, err)
	assert.Equal(t, 0, backend.getCount)
}

func TestClient_AppendRowWritesHeaderOnEmptySheet(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'일정'!A:A", nil)
	client := newTestClient(t, backend, true)

	header := []string{"날짜", "제목"}
	err := client.AppendRow(context.Background(), "ss-main", "일정", []string{"2025-06-01", "정기 모임"}, header)
	require.NoError(t, err)

	require.Len(t, backend.updates, 2)
	assert.Equal(t, "'일정'!A1:B1", backend.updates[0].Range)
	assert.Equal(t, [][]any{{"날짜", "제목"}}, backend.updates[0].Values)
	assert.Equal(t, "'일정'!A2:B2", backend.updates[1].Range)
}

func TestClient_AppendRowSkipsExistingHeader(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'일정'!A:A", [][]any{{"날짜"}, {"2025-06-01"}})
	client := newTestClient(t, backend, true)

	err := client.AppendRow(context.Background(), "ss-main", "일정", []string{"2025-06-02", "휴무"}, []string{"날짜", "제목"})
	require.NoError(t, err)

	// Two existing rows in column A, so the new row lands at row 3 with no
	// header rewrite.
	require.Len(t, backend.updates, 1)
	assert.Equal(t, "'일정'!A3:B3", backend.updates[0].Range)
}

func TestClient_CreateSheetIfAbsent(t *testing.T) {
	t.Run("creates sheet and writes header", func(t *testing.T) {
		backend := newFakeBackend()
		client := newTestClient(t, backend, true)

		err := client.CreateSheetIfAbsent(context.Background(), "ss-main", "지원권사용", []string{"월", "고유번호"})
		require.NoError(t, err)

		require.Len(t, backend.batchUpdates, 1)
		require.NotNil(t, backend.batchUpdates[0].Requests[0].AddSheet)
		assert.Equal(t, "지원권사용", backend.batchUpdates[0].Requests[0].AddSheet.Properties.Title)
		require.Len(t, backend.updates, 1)
		assert.Equal(t, "'지원권사용'!A1:B1", backend.updates[0].Range)
	})

	t.Run("already exists is success", func(t *testing.T) {
		backend := newFakeBackend()
		backend.batchUpdateStatus = http.StatusBadRequest
		backend.batchUpdateMsg = `A sheet with the name "지원권사용" already exists`
		client := newTestClient(t, backend, true)

		err := client.CreateSheetIfAbsent(context.Background(), "ss-main", "지원권사용", []string{"월"})
		require.NoError(t, err)
		assert.Empty(t, backend.updates, "no header rewrite for an existing sheet")
	})

	t.Run("conflict status is success", func(t *testing.T) {
		backend := newFakeBackend()
		backend.batchUpdateStatus = http.StatusConflict
		backend.batchUpdateMsg = "duplicate sheet"
		client := newTestClient(t, backend, true)

		err := client.CreateSheetIfAbsent(context.Background(), "ss-main", "지원권사용", nil)
		require.NoError(t, err)
	})
}

func TestClient_DeleteRow(t *testing.T) {
	backend := newFakeBackend()
	backend.sheetIDs["일정"] = 77
	client := newTestClient(t, backend, true)

	err := client.DeleteRow(context.Background(), "ss-main", "일정", 3)
	require.NoError(t, err)

	require.Len(t, backend.batchUpdates, 1)
	del := backend.batchUpdates[0].Requests[0].DeleteDimension
	require.NotNil(t, del)
	assert.Equal(t, int64(77), del.Range.SheetID)
	assert.Equal(t, "ROWS", del.Range.Dimension)
	assert.Equal(t, int64(2), del.Range.StartIndex)
	assert.Equal(t, int64(3), del.Range.EndIndex)
}

func TestClient_DeleteRowUnknownSheet(t *testing.T) {
	backend := newFakeBackend()
	backend.sheetIDs["일정"] = 77
	client := newTestClient(t, backend, true)

	err := client.DeleteRow(context.Background(), "ss-main", "없는시트", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSheetNotFound)
	assert.Zero(t, backend.batchUpdateCount)
}

func TestClient_MutationsRequireServiceAccount(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'거래'!A:Z", [][]any{{"날짜"}})
	client := newTestClient(t, backend, false)

	// Reads still work over the API key.
	_, err := client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)

	err = client.Write(context.Background(), "ss-main", "거래", "A2:A2", [][]string{{"x"}})
	assert.ErrorIs(t, err, common.ErrAuthRequired)

	err = client.CreateSheetIfAbsent(context.Background(), "ss-main", "새시트", nil)
	assert.ErrorIs(t, err, common.ErrAuthRequired)

	err = client.DeleteRow(context.Background(), "ss-main", "거래", 2)
	assert.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestClient_EmptySpreadsheetID(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend, true)

	_, err := client.Read(context.Background(), "", "거래", "")
	assert.ErrorIs(t, err, common.ErrNoSpreadsheet)
	err = client.Write(context.Background(), "", "거래", "A1:A1", nil)
	assert.ErrorIs(t, err, common.ErrNoSpreadsheet)
}

func TestClient_CacheExpiryForcesRefetch(t *testing.T) {
	backend := newFakeBackend()
	backend.setRange("'거래'!A:Z", [][]any{{"날짜"}})
	client := newTestClient(t, backend, false)
	client.cache.now = func() time.Time { return time.Now().Add(time.Minute) }

	_, err := client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)
	// The injected clock makes every entry a minute old on arrival, so the
	// next read misses.
	client.cache.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = client.Read(context.Background(), "ss-main", "거래", "")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.getCount)
}
