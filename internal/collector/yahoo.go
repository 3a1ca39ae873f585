package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				ExchangeName string `json:"exchangeName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func valueAt(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, rng string) ([]model.Quote, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode}
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	if chart.Chart.Error != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: chart.Chart.Error.Description}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	bars := result.Indicators.Quote[0]
	quotes := make([]model.Quote, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o, okO := valueAt(bars.Open, i)
		h, okH := valueAt(bars.High, i)
		l, okL := valueAt(bars.Low, i)
		c, okC := valueAt(bars.Close, i)
		if !okO || !okH || !okL || !okC {
			continue // null bars (holidays etc.)
		}
		var vol *int64
		if v, ok := valueAt(bars.Volume, i); ok {
			vol = model.Vol(int64(v))
		}
		date := time.Unix(ts, 0).UTC().Format(model.DateLayout)
		q := model.NewQuote(symbol, date, o, h, l, c, vol)
		q.Exchange = result.Meta.ExchangeName
		quotes = append(quotes, q)
	}

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Timestamp().Before(quotes[j].Timestamp()) })
	return quotes, nil
}

func yahooRange(months int) string {
	switch {
	case months <= 1:
		return "1mo"
	case months <= 3:
		return "3mo"
	case months <= 6:
		return "6mo"
	case months <= 12:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) FetchHistorical(ctx context.Context, symbol string, months int) ([]model.Quote, error) {
	return f.fetchChart(ctx, symbol, yahooRange(months))
}

// FetchEndOfDay returns the last few sessions for each symbol. Symbols that fail
// are logged and skipped unless every symbol fails.
func (f *YahooFetcher) FetchEndOfDay(ctx context.Context, symbols []string) ([]model.Quote, error) {
	var all []model.Quote
	var lastErr error
	for _, s := range symbols {
		quotes, err := f.fetchChart(ctx, s, "5d")
		if err != nil {
			log.WithField("symbol", s).Warnf("yahoo eod fetch failed: %v", err)
			lastErr = err
			continue
		}
		all = append(all, quotes...)
	}
	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}
