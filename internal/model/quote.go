package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the end-of-day date format delivered by the market-data API,
// e.g. "2024-01-02T00:00:00+0000".
const DateLayout = "2006-01-02T15:04:05-0700"

var dateLayouts = []string{DateLayout, time.RFC3339}

// ParseDate parses a quote date string. The zero time is returned with ok=false
// when none of the accepted layouts match.
func ParseDate(s string) (t time.Time, ok bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Quote represents a single end-of-day OHLCV record.
// The timestamp is derived from Date once, when the quote is built.
type Quote struct {
	Symbol   string
	Exchange string
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   *int64 // nil when the provider has no volume
	Date     string // as received

	ts     time.Time
	parsed bool
}

// NewQuote builds a Quote and parses its date. An unparseable date leaves the
// timestamp at the zero time and HasTimestamp false.
func NewQuote(symbol, date string, open, high, low, close float64, volume *int64) Quote {
	q := Quote{
		Symbol: symbol,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
		Date:   date,
	}
	q.ts, q.parsed = ParseDate(date)
	return q
}

// Vol is a convenience for building optional volumes.
func Vol(v int64) *int64 { return &v }

// Clone returns a copy of q that shares no memory with it.
func (q Quote) Clone() Quote {
	if q.Volume != nil {
		q.Volume = Vol(*q.Volume)
	}
	return q
}

// Timestamp returns the parsed point in time of the quote.
func (q Quote) Timestamp() time.Time { return q.ts }

// HasTimestamp reports whether Date was parsed successfully.
func (q Quote) HasTimestamp() bool { return q.parsed }

type quoteJSON struct {
	Symbol    string     `json:"symbol"`
	Exchange  string     `json:"exchange,omitempty"`
	Open      float64    `json:"open"`
	High      float64    `json:"high"`
	Low       float64    `json:"low"`
	Close     float64    `json:"close"`
	Volume    *float64   `json:"volume"`
	Date      string     `json:"date"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// UnmarshalJSON decodes the provider payload. Any timestamp field in the input
// is ignored and recomputed from date.
func (q *Quote) UnmarshalJSON(data []byte) error {
	var raw quoteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var vol *int64
	if raw.Volume != nil {
		vol = Vol(int64(*raw.Volume))
	}
	*q = NewQuote(raw.Symbol, raw.Date, raw.Open, raw.High, raw.Low, raw.Close, vol)
	q.Exchange = raw.Exchange
	return nil
}

func (q Quote) MarshalJSON() ([]byte, error) {
	raw := quoteJSON{
		Symbol:   q.Symbol,
		Exchange: q.Exchange,
		Open:     q.Open,
		High:     q.High,
		Low:      q.Low,
		Close:    q.Close,
		Date:     q.Date,
	}
	if q.Volume != nil {
		v := float64(*q.Volume)
		raw.Volume = &v
	}
	if q.HasTimestamp() {
		ts := q.ts
		raw.Timestamp = &ts
	}
	return json.Marshal(raw)
}

// Pagination is the paging block of a market-data response.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

// EODResponse is the envelope returned by the end-of-day endpoint.
type EODResponse struct {
	Data       []Quote     `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
