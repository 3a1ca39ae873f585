package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuoteChart/internal/collector"
	"QuoteChart/internal/model"
	"QuoteChart/internal/monitoring"
	"QuoteChart/internal/recorder"
	"QuoteChart/internal/watchlist"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testEnd = time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	server  *Server
	fetcher *collector.MockFetcher
	rec     *recorder.SQLiteRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	f := &collector.MockFetcher{Price: 150, End: testEnd}
	col := collector.NewCollector(f, []string{"AAPL"})
	col.Now = func() time.Time { return testEnd }

	wl, err := watchlist.NewManager(filepath.Join(dir, "watchlist.json"), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	metrics := monitoring.NewMetrics()
	col.Metrics = metrics
	return &testEnv{
		server:  NewServer(":0", col, wl, rec, metrics),
		fetcher: f,
		rec:     rec,
	}
}

func (e *testEnv) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) Response {
	t.Helper()
	var raw struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Response
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	env.do(http.MethodGet, "/api/v1/quotes/AAPL/chart", nil)
	w = env.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quotechart_snapshots_total")
}

func TestChartEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/quotes/aapl/chart?window=week", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap struct {
		Symbol     string        `json:"symbol"`
		Window     string        `json:"window"`
		Quotes     []model.Quote `json:"quotes"`
		XAxisTicks []time.Time   `json:"x_axis_ticks"`
		PriceRange model.Range   `json:"price_range"`
	}
	resp := decode(t, w, &snap)
	assert.True(t, resp.Success)
	assert.Equal(t, "AAPL", snap.Symbol)
	assert.Equal(t, "week", snap.Window)
	// Friday Jun 28 back to Friday Jun 21: six weekdays.
	assert.Len(t, snap.Quotes, 6)
	assert.Len(t, snap.XAxisTicks, 5)
	assert.Less(t, snap.PriceRange.Min, snap.PriceRange.Max)

	// Default window is month.
	w = env.do(http.MethodGet, "/api/v1/quotes/AAPL/chart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &snap)
	assert.Equal(t, "month", snap.Window)
}

func TestChartEndpoint_Errors(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/quotes/AAPL/chart?window=decade", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w, nil).Error, "unknown time window")

	w = env.do(http.MethodGet, "/api/v1/quotes/$$$/chart", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.fetcher.Err = &collector.APIError{Status: 429, Message: "Rate limit reached"}
	w = env.do(http.MethodGet, "/api/v1/quotes/AAPL/chart", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Server error: Rate limit reached", decode(t, w, nil).Error)

	env.fetcher.Err = nil
	env.fetcher.Quotes = []model.Quote{}
	w = env.do(http.MethodGet, "/api/v1/quotes/AAPL/chart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No data available", decode(t, w, nil).Error)
}

func TestSignalEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/quotes/AAPL/signal?window=sixMonths", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sig model.Signal
	decode(t, w, &sig)
	assert.Equal(t, "AAPL", sig.Symbol)
	assert.Equal(t, model.SixMonths, sig.Window)
	assert.NotEqual(t, model.ZoneUnknown, sig.Zone)
	assert.Len(t, sig.Factors, 4)
}

func TestOverviewEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/quotes", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []model.QuoteRowJSON
	decode(t, w, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, "MSFT", rows[1].Symbol)
}

func TestLatestSnapshotEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/quotes/AAPL/latest", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, env.rec.RecordSnapshot(&model.ChartSnapshot{
		ID: "s1", Symbol: "AAPL", Window: model.Month, GeneratedAt: testEnd,
	}))
	w = env.do(http.MethodGet, "/api/v1/quotes/aapl/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rec recorder.SnapshotRecord
	decode(t, w, &rec)
	assert.Equal(t, "s1", rec.ID)
}

func TestWatchlistEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/watchlist", []byte(`{"symbol":"tsla"}`))
	assert.Equal(t, http.StatusCreated, w.Code)
	var symbols []string
	decode(t, w, &symbols)
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, symbols)

	w = env.do(http.MethodPost, "/api/v1/watchlist", []byte(`{"symbol":"TSLA"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already watched", decode(t, w, nil).Message)

	w = env.do(http.MethodPost, "/api/v1/watchlist", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/watchlist/msft", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodDelete, "/api/v1/watchlist/msft", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/watchlist", nil)
	decode(t, w, &symbols)
	assert.Equal(t, []string{"AAPL", "TSLA"}, symbols)
}
