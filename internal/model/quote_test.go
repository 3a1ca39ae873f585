package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote_ParsesDate(t *testing.T) {
	q := NewQuote("AAPL", "2024-01-02T00:00:00+0000", 1, 2, 0.5, 1.5, Vol(10))
	require.True(t, q.HasTimestamp())
	assert.True(t, q.Timestamp().Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02T00:00:00+0000", q.Date)
}

func TestNewQuote_AcceptsRFC3339(t *testing.T) {
	q := NewQuote("AAPL", "2024-01-02T10:00:00Z", 1, 1, 1, 1, nil)
	assert.True(t, q.HasTimestamp())
}

func TestNewQuote_UnparseableDate(t *testing.T) {
	q := NewQuote("AAPL", "2024-03-08", 1, 1, 1, 1, nil)
	assert.False(t, q.HasTimestamp())
	assert.True(t, q.Timestamp().IsZero())
}

func TestNewQuote_ZeroInstantIsStillParsed(t *testing.T) {
	q := NewQuote("AAPL", "0001-01-01T00:00:00Z", 1, 1, 1, 1, nil)
	assert.True(t, q.HasTimestamp())
	assert.True(t, q.Timestamp().IsZero())
}

func TestQuote_CloneCopiesVolume(t *testing.T) {
	q := NewQuote("AAPL", "2024-01-02T00:00:00+0000", 1, 1, 1, 1, Vol(10))
	c := q.Clone()
	assert.Equal(t, q, c)
	assert.NotSame(t, q.Volume, c.Volume)

	bare := NewQuote("AAPL", "2024-01-02T00:00:00+0000", 1, 1, 1, 1, nil).Clone()
	assert.Nil(t, bare.Volume)
}

func TestQuote_DecodeEODResponse(t *testing.T) {
	payload := `{
		"pagination": {"limit": 100, "offset": 0, "count": 2, "total": 2},
		"data": [
			{"open": 185.1, "high": 186.2, "low": 183.9, "close": 185.6, "volume": 52164500.0,
			 "symbol": "AAPL", "exchange": "XNAS", "date": "2024-01-03T00:00:00+0000"},
			{"open": 370.0, "high": 373.2, "low": 368.5, "close": 370.9,
			 "symbol": "MSFT", "exchange": "XNAS", "date": "2024-01-03T00:00:00+0000"}
		]
	}`
	var resp EODResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	require.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Total)

	aapl := resp.Data[0]
	assert.Equal(t, "AAPL", aapl.Symbol)
	assert.Equal(t, "XNAS", aapl.Exchange)
	require.NotNil(t, aapl.Volume)
	assert.Equal(t, int64(52164500), *aapl.Volume)
	assert.True(t, aapl.HasTimestamp())

	assert.Nil(t, resp.Data[1].Volume)
}

func TestQuote_JSONRoundTripRecomputesTimestamp(t *testing.T) {
	q := NewQuote("AAPL", "2024-01-02T00:00:00+0000", 1, 2, 0.5, 1.5, Vol(7))
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp"`)

	var back Quote
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Timestamp().Equal(q.Timestamp()))
	assert.Equal(t, *q.Volume, *back.Volume)
}
