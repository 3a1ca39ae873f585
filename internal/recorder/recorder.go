package recorder

import (
	"errors"
	"time"

	"QuoteChart/internal/model"
)

// ErrNoSnapshot is returned by LatestSnapshot when nothing was recorded for the symbol.
var ErrNoSnapshot = errors.New("no snapshot recorded")

// SnapshotRecord is the stored summary of a chart snapshot.
type SnapshotRecord struct {
	ID          string           `json:"id"`
	Symbol      string           `json:"symbol"`
	Window      model.TimeWindow `json:"window"`
	GeneratedAt time.Time        `json:"generated_at"`
	Points      int              `json:"points"`
	LastClose   float64          `json:"last_close"`
	PriceRange  model.Range      `json:"price_range"`
	VolumeMax   float64          `json:"volume_max"`
	SMAPeriod   int              `json:"sma_period"`
	LastSMA     *float64         `json:"last_sma"` // nil when the window was too short
	EMAPeriod   int              `json:"ema_period"`
	LastEMA     *float64         `json:"last_ema"`
	RSIPeriod   int              `json:"rsi_period"`
	LastRSI     *float64         `json:"last_rsi"`
}

// Recorder persists quote and snapshot history for later analysis.
type Recorder interface {
	RecordQuotes(quotes []model.Quote) error
	RecordSnapshot(snap *model.ChartSnapshot) error
	LatestSnapshot(symbol string) (*SnapshotRecord, error)
	Close() error
}
