package collector

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"QuoteChart/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64        // base price for generated series
	Quotes []model.Quote  // when set, returned instead of generated data
	Err    error          // when set, every call fails with it
	End    time.Time      // last generated trading day; zero means today
	Calls  map[string]int // calls per method, for tests

	mu sync.Mutex
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) count(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[method]++
}

func (m *MockFetcher) FetchEndOfDay(_ context.Context, symbols []string) ([]model.Quote, error) {
	m.count("eod")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quotes != nil {
		return filterSymbols(m.Quotes, symbols), nil
	}
	var out []model.Quote
	for _, s := range symbols {
		out = append(out, m.generate(s, 5)...)
	}
	return out, nil
}

func (m *MockFetcher) FetchHistorical(_ context.Context, symbol string, months int) ([]model.Quote, error) {
	m.count("historical")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quotes != nil {
		return filterSymbols(m.Quotes, []string{symbol}), nil
	}
	return m.generate(symbol, months*21), nil
}

func filterSymbols(quotes []model.Quote, symbols []string) []model.Quote {
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}
	out := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		if want[q.Symbol] {
			out = append(out, q)
		}
	}
	return out
}

// generate builds count weekday quotes ending at m.End with a small
// deterministic oscillation per symbol.
func (m *MockFetcher) generate(symbol string, count int) []model.Quote {
	end := m.End
	if end.IsZero() {
		now := time.Now().UTC()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	base := m.Price
	if base == 0 {
		base = 100
	}
	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := int(h.Sum32() % 7)

	days := make([]time.Time, 0, count)
	for d := end; len(days) < count; d = d.AddDate(0, 0, -1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, d)
	}

	quotes := make([]model.Quote, count)
	for i := range days {
		day := days[count-1-i]
		drift := float64(i-count/2) * 0.001
		wobble := float64((i+seed)%5-2) * 0.004
		p := base * (1 + drift + wobble)
		quotes[i] = model.NewQuote(symbol, day.Format(model.DateLayout),
			p*0.998, p*1.006, p*0.994, p, model.Vol(int64(1_000_000+(i%10)*50_000)))
	}
	return quotes
}
