package model

import "time"

// WatchlistState is the persisted set of watched symbols and their alert state.
type WatchlistState struct {
	Symbols   []string           `json:"symbols"`
	Zones     map[string]RSIZone `json:"zones"`
	UpdatedAt time.Time          `json:"updated_at"`
}
