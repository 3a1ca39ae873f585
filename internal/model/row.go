package model

import "fmt"

// QuoteRow is the list-screen view of a single quote.
type QuoteRow struct {
	Quote Quote
}

func (r QuoteRow) Change() float64 { return r.Quote.Close - r.Quote.Open }

// ChangePercent is the intraday change relative to the open, 0 when open is 0.
func (r QuoteRow) ChangePercent() float64 {
	if r.Quote.Open == 0 {
		return 0
	}
	return r.Change() / r.Quote.Open * 100
}

func (r QuoteRow) IsUp() bool { return r.Change() >= 0 }

func (r QuoteRow) CloseText() string { return fmt.Sprintf("%.2f", r.Quote.Close) }
func (r QuoteRow) OpenText() string  { return fmt.Sprintf("%.2f", r.Quote.Open) }
func (r QuoteRow) HighText() string  { return fmt.Sprintf("%.2f", r.Quote.High) }
func (r QuoteRow) LowText() string   { return fmt.Sprintf("%.2f", r.Quote.Low) }

func (r QuoteRow) ChangeFormatted() string { return fmt.Sprintf("%+.2f", r.Change()) }

func (r QuoteRow) ChangePercentFormatted() string {
	return fmt.Sprintf("%+.1f%%", r.ChangePercent())
}

// ChangeText renders e.g. "+3.00 (+2.0%)".
func (r QuoteRow) ChangeText() string {
	return fmt.Sprintf("%s (%s)", r.ChangeFormatted(), r.ChangePercentFormatted())
}

// QuoteRowJSON is the API shape of a QuoteRow.
type QuoteRowJSON struct {
	Symbol        string  `json:"symbol"`
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        *int64  `json:"volume"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	ChangeText    string  `json:"change_text"`
	Up            bool    `json:"up"`
}

func (r QuoteRow) JSON() QuoteRowJSON {
	return QuoteRowJSON{
		Symbol:        r.Quote.Symbol,
		Date:          r.Quote.Date,
		Open:          r.Quote.Open,
		High:          r.Quote.High,
		Low:           r.Quote.Low,
		Close:         r.Quote.Close,
		Volume:        r.Quote.Volume,
		Change:        r.Change(),
		ChangePercent: r.ChangePercent(),
		ChangeText:    r.ChangeText(),
		Up:            r.IsUp(),
	}
}
