package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/collector"
	"QuoteChart/internal/model"
	"QuoteChart/internal/recorder"
	"QuoteChart/internal/strategy"
	"QuoteChart/internal/watchlist"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Error: msg})
}

// fetchFailed maps a collector error onto an HTTP status and user message.
func fetchFailed(c *gin.Context, err error) {
	log.Warnf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	status := http.StatusBadGateway
	if errors.Is(err, collector.ErrNoData) {
		status = http.StatusNotFound
	}
	fail(c, status, collector.UserMessage(err))
}

// QuotesHandler serves overview, chart and signal requests.
type QuotesHandler struct {
	collector     *collector.Collector
	watchlist     *watchlist.Manager
	recorder      recorder.Recorder
	defaultWindow model.TimeWindow
}

// NewQuotesHandler creates a new quotes handler
func NewQuotesHandler(col *collector.Collector, wl *watchlist.Manager, rec recorder.Recorder) *QuotesHandler {
	return &QuotesHandler{collector: col, watchlist: wl, recorder: rec, defaultWindow: model.Month}
}

// Overview returns the latest row of every watched symbol.
func (h *QuotesHandler) Overview(c *gin.Context) {
	symbols := h.collector.Symbols
	if h.watchlist != nil {
		symbols = h.watchlist.Symbols()
	}
	rows, err := h.collector.OverviewFor(c.Request.Context(), symbols)
	if err != nil {
		fetchFailed(c, err)
		return
	}
	out := make([]model.QuoteRowJSON, len(rows))
	for i, r := range rows {
		out[i] = r.JSON()
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: out})
}

// snapshot resolves the symbol and window parameters and builds the chart.
// It writes the error response itself and returns nil on failure.
func (h *QuotesHandler) snapshot(c *gin.Context) *model.ChartSnapshot {
	symbol, err := watchlist.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return nil
	}
	window := h.defaultWindow
	if q := c.Query("window"); q != "" {
		if window, err = model.ParseTimeWindow(q); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return nil
		}
	}
	snap, err := h.collector.Chart(c.Request.Context(), symbol, window)
	if err != nil {
		fetchFailed(c, err)
		return nil
	}
	return snap
}

// Chart returns the full chart snapshot for a symbol and window.
func (h *QuotesHandler) Chart(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: snap})
}

// Signal returns the strategy signal for a symbol and window.
func (h *QuotesHandler) Signal(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: strategy.Evaluate(snap)})
}

// LatestSnapshot returns the summary of the last recorded snapshot.
func (h *QuotesHandler) LatestSnapshot(c *gin.Context) {
	symbol, err := watchlist.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.recorder.LatestSnapshot(symbol)
	if errors.Is(err, recorder.ErrNoSnapshot) {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.WithField("symbol", symbol).Errorf("latest snapshot: %v", err)
		fail(c, http.StatusInternalServerError, "history unavailable")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: rec})
}

// WatchlistHandler manages the watched symbols.
type WatchlistHandler struct {
	watchlist *watchlist.Manager
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(wl *watchlist.Manager) *WatchlistHandler {
	return &WatchlistHandler{watchlist: wl}
}

type watchRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func (h *WatchlistHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: h.watchlist.Symbols()})
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	var req watchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	added, err := h.watchlist.Add(req.Symbol)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	status, msg := http.StatusCreated, "watching"
	if !added {
		status, msg = http.StatusOK, "already watched"
	}
	c.JSON(status, Response{Success: true, Data: h.watchlist.Symbols(), Message: msg})
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	removed, err := h.watchlist.Remove(c.Param("symbol"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !removed {
		fail(c, http.StatusNotFound, "symbol is not watched")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: h.watchlist.Symbols(), Message: "removed"})
}
