package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/cache"
	"QuoteChart/internal/calculator"
	"QuoteChart/internal/model"
	"QuoteChart/internal/monitoring"
)

// Periods are the indicator lookbacks applied to every chart.
type Periods struct {
	SMA int
	EMA int
	RSI int
}

// DefaultPeriods matches the usual chart overlays.
var DefaultPeriods = Periods{SMA: 20, EMA: 20, RSI: calculator.DefaultRSIPeriod}

// Collector orchestrates data fetching and chart computation.
type Collector struct {
	Fetcher       Fetcher
	Cache         cache.QuoteCache
	CacheTTL      time.Duration
	Engine        calculator.Engine
	Periods       Periods
	HistoryMonths int
	Symbols       []string
	Metrics       *monitoring.Metrics
	Now           func() time.Time
}

// NewCollector creates a Collector with no cache and default periods.
func NewCollector(fetcher Fetcher, symbols []string) *Collector {
	return &Collector{
		Fetcher:       fetcher,
		Cache:         cache.NoopCache{},
		CacheTTL:      15 * time.Minute,
		Periods:       DefaultPeriods,
		HistoryMonths: 6,
		Symbols:       symbols,
		Now:           time.Now,
	}
}

// History returns the historical series for symbol, through the cache when one
// is configured. Quotes with unparseable dates are dropped.
func (c *Collector) History(ctx context.Context, symbol string) ([]model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	key := cache.HistoryKey(symbol, c.HistoryMonths)

	if c.Cache != nil {
		quotes, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			log.WithField("symbol", symbol).Warnf("cache get failed: %v", err)
		}
		c.Metrics.RecordCacheLookup(ok)
		if ok {
			return quotes, nil
		}
	}

	start := time.Now()
	quotes, err := c.Fetcher.FetchHistorical(ctx, symbol, c.HistoryMonths)
	c.Metrics.RecordFetch(c.Fetcher.Name(), "historical", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch historical %s: %w", symbol, err)
	}
	quotes = usable(onlySymbol(quotes, symbol))
	if len(quotes) == 0 {
		return nil, fmt.Errorf("fetch historical %s: %w", symbol, ErrNoData)
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, quotes, c.CacheTTL); err != nil {
			log.WithField("symbol", symbol).Warnf("cache set failed: %v", err)
		}
	}
	return quotes, nil
}

// Chart fetches a symbol's history and computes everything needed to draw it
// for the given window. Indicators are computed over the windowed series.
func (c *Collector) Chart(ctx context.Context, symbol string, window model.TimeWindow) (*model.ChartSnapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	quotes, err := c.History(ctx, symbol)
	if err != nil {
		return nil, err
	}
	snap := c.Build(symbol, window, quotes)
	log.WithField("symbol", snap.Symbol).Debugf("chart built: window=%s points=%d", window, len(snap.Quotes))
	return snap, nil
}

// Build computes a snapshot from an in-memory series without fetching.
func (c *Collector) Build(symbol string, window model.TimeWindow, quotes []model.Quote) *model.ChartSnapshot {
	filtered := c.Engine.Filter(quotes, window)

	snap := &model.ChartSnapshot{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		Window:      window,
		Quotes:      filtered,
		PriceRange:  c.Engine.PriceRange(filtered),
		VolumeRange: c.Engine.VolumeRange(filtered),
		XAxisTicks:  c.Engine.XAxisTicks(filtered),
		Style: model.ChartStyle{
			CandleWidth: calculator.CandleWidth(len(filtered)),
			LineWidth:   calculator.LineWidth(len(filtered)),
		},
		Indicators: model.IndicatorSet{
			SMAPeriod: c.Periods.SMA,
			SMA:       c.Engine.SMA(filtered, c.Periods.SMA),
			EMAPeriod: c.Periods.EMA,
			EMA:       c.Engine.EMA(filtered, c.Periods.EMA),
			RSIPeriod: c.Periods.RSI,
			RSI:       c.Engine.RSI(filtered, c.Periods.RSI),
		},
		GeneratedAt: c.now(),
	}

	if len(filtered) > 0 && len(snap.Indicators.RSI) == 0 {
		log.WithField("symbol", symbol).Warnf("RSI(%d) needs more than %d quotes, window %s has %d",
			c.Periods.RSI, c.Periods.RSI, window, len(filtered))
	}
	c.Metrics.RecordSnapshot(window.String())
	return snap
}

// Overview returns the latest quote row for each configured symbol.
func (c *Collector) Overview(ctx context.Context) ([]model.QuoteRow, error) {
	return c.OverviewFor(ctx, c.Symbols)
}

// OverviewFor returns the latest quote row for each of symbols.
func (c *Collector) OverviewFor(ctx context.Context, symbols []string) ([]model.QuoteRow, error) {
	if len(symbols) == 0 {
		return []model.QuoteRow{}, nil
	}
	start := time.Now()
	quotes, err := c.Fetcher.FetchEndOfDay(ctx, symbols)
	c.Metrics.RecordFetch(c.Fetcher.Name(), "eod", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch end of day: %w", err)
	}
	latest := LatestPerSymbol(usable(quotes))
	rows := make([]model.QuoteRow, len(latest))
	for i, q := range latest {
		rows[i] = model.QuoteRow{Quote: q}
	}
	log.Infof("overview: %d symbols from %d quotes", len(rows), len(quotes))
	return rows, nil
}

// LatestPerSymbol keeps the newest quote of every symbol, ordered by symbol.
func LatestPerSymbol(quotes []model.Quote) []model.Quote {
	latest := make(map[string]model.Quote)
	for _, q := range quotes {
		cur, ok := latest[q.Symbol]
		if !ok || q.Timestamp().After(cur.Timestamp()) {
			latest[q.Symbol] = q
		}
	}
	out := make([]model.Quote, 0, len(latest))
	for _, q := range latest {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// usable drops quotes whose date could not be parsed; they would otherwise
// sort as the earliest point of the series.
func usable(quotes []model.Quote) []model.Quote {
	out := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		if !q.HasTimestamp() {
			log.WithField("symbol", q.Symbol).Warnf("dropping quote with unparseable date %q", q.Date)
			continue
		}
		out = append(out, q)
	}
	return out
}

func onlySymbol(quotes []model.Quote, symbol string) []model.Quote {
	out := quotes[:0:0]
	for _, q := range quotes {
		if strings.EqualFold(q.Symbol, symbol) {
			out = append(out, q)
		}
	}
	return out
}

func (c *Collector) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
