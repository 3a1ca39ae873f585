package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"QuoteChart/internal/model"
)

const (
	marketstackPageLimit = 1000
	marketstackMaxPages  = 10
)

// MarketstackFetcher implements Fetcher using the Marketstack EOD REST API.
type MarketstackFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
	Now     func() time.Time
}

// NewMarketstackFetcher creates a fetcher with optional proxy support. Requests
// are limited to ratePerSecond; zero or less disables limiting.
func NewMarketstackFetcher(baseURL, apiKey, proxyURL string, ratePerSecond float64) *MarketstackFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}
	return &MarketstackFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Limiter: limiter,
		Now:     time.Now,
	}
}

func (f *MarketstackFetcher) Name() string { return "marketstack" }

func (f *MarketstackFetcher) FetchEndOfDay(ctx context.Context, symbols []string) ([]model.Quote, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	return f.fetchAll(ctx, q)
}

func (f *MarketstackFetcher) FetchHistorical(ctx context.Context, symbol string, months int) ([]model.Quote, error) {
	to := f.Now()
	from := to.AddDate(0, -months, 0)

	q := url.Values{}
	q.Set("symbols", symbol)
	q.Set("date_from", from.Format("2006-01-02"))
	q.Set("date_to", to.Format("2006-01-02"))
	q.Set("sort", "desc")
	return f.fetchAll(ctx, q)
}

// fetchAll walks the paginated eod endpoint.
func (f *MarketstackFetcher) fetchAll(ctx context.Context, query url.Values) ([]model.Quote, error) {
	var quotes []model.Quote
	offset := 0
	for page := 0; page < marketstackMaxPages; page++ {
		query.Set("limit", strconv.Itoa(marketstackPageLimit))
		query.Set("offset", strconv.Itoa(offset))

		resp, err := f.fetchPage(ctx, query)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, resp.Data...)

		p := resp.Pagination
		if p == nil || p.Count == 0 || p.Offset+p.Count >= p.Total {
			return quotes, nil
		}
		offset = p.Offset + p.Count
	}
	log.Warnf("marketstack: stopped after %d pages, results truncated", marketstackMaxPages)
	return quotes, nil
}

func (f *MarketstackFetcher) fetchPage(ctx context.Context, query url.Values) (*model.EODResponse, error) {
	endpoint, err := url.Parse(f.BaseURL + "/eod")
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, f.BaseURL)
	}
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("access_key", f.APIKey)
	endpoint.RawQuery = q.Encode()

	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	log.Debugf("marketstack: GET %s/eod symbols=%s", f.BaseURL, query.Get("symbols"))

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
		return nil, &APIError{Status: resp.StatusCode, Message: marketstackErrorMessage(body)}
	}

	var eod model.EODResponse
	if err := json.Unmarshal(body, &eod); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return &eod, nil
}

// marketstackErrorMessage extracts error.message from an error body, if present.
func marketstackErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}
