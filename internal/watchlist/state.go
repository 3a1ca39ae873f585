package watchlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"QuoteChart/internal/model"
)

// LoadState reads the watchlist state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*model.WatchlistState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.WatchlistState{}, nil
		}
		return nil, err
	}
	var state model.WatchlistState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the watchlist state to a JSON file, creating its directory.
func SaveState(filePath string, state *model.WatchlistState) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
