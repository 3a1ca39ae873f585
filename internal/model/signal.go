package model

// RSIZone classifies the latest RSI value.
type RSIZone string

const (
	ZoneOversold   RSIZone = "OVERSOLD"
	ZoneNeutral    RSIZone = "NEUTRAL"
	ZoneOverbought RSIZone = "OVERBOUGHT"
	ZoneUnknown    RSIZone = "UNKNOWN"
)

// Trend summarises the moving-average overlays.
type Trend string

const (
	TrendUp      Trend = "UP"
	TrendDown    Trend = "DOWN"
	TrendFlat    Trend = "FLAT"
	TrendUnknown Trend = "UNKNOWN"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Signal is the output of the strategy engine for one chart snapshot.
type Signal struct {
	Symbol     string        `json:"symbol"`
	Window     TimeWindow    `json:"window"`
	LastClose  float64       `json:"last_close"`
	RSI        float64       `json:"rsi"`
	Zone       RSIZone       `json:"zone"`
	Trend      Trend         `json:"trend"`
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	WarningMsg string        `json:"warning,omitempty"`
}
