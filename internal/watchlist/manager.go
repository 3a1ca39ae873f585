package watchlist

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/model"
)

// ErrInvalidSymbol is returned for ticker symbols that fail NormalizeSymbol.
var ErrInvalidSymbol = errors.New("invalid symbol")

var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=^]{0,14}$`)

// NormalizeSymbol trims and upper-cases a ticker and checks its shape.
func NormalizeSymbol(s string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if !symbolPattern.MatchString(sym) {
		return "", fmt.Errorf("%w %q", ErrInvalidSymbol, s)
	}
	return sym, nil
}

// Manager owns the watched symbols and their last alerted RSI zones.
// Every mutation is persisted before the call returns.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager creates a Manager, loading state from disk. defaults seed the
// list only when no state has ever been saved; an emptied list stays empty.
func NewManager(filePath string, defaults []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	if state.Symbols == nil {
		state.Symbols = []string{}
		for _, d := range defaults {
			sym, err := NormalizeSymbol(d)
			if err != nil {
				log.Warnf("watchlist: skipping default %q: %v", d, err)
				continue
			}
			if !contains(state.Symbols, sym) {
				state.Symbols = append(state.Symbols, sym)
			}
		}
	}
	if state.Zones == nil {
		state.Zones = make(map[string]model.RSIZone)
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Symbols returns a copy of the watched symbols in insertion order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.state.Symbols))
	copy(out, m.state.Symbols)
	return out
}

// Add watches symbol. It reports false when the symbol was already watched.
func (m *Manager) Add(symbol string) (bool, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if contains(m.state.Symbols, sym) {
		return false, nil
	}
	m.state.Symbols = append(m.state.Symbols, sym)
	if err := m.save(); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	log.Infof("watchlist: added %s", sym)
	return true, nil
}

// Remove stops watching symbol and forgets its zone. It reports false when
// the symbol was not watched.
func (m *Manager) Remove(symbol string) (bool, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, s := range m.state.Symbols {
		if s == sym {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	m.state.Symbols = append(m.state.Symbols[:idx], m.state.Symbols[idx+1:]...)
	delete(m.state.Zones, sym)
	if err := m.save(); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	log.Infof("watchlist: removed %s", sym)
	return true, nil
}

// Zone returns the last recorded zone for symbol, or ZoneUnknown.
func (m *Manager) Zone(symbol string) model.RSIZone {
	m.mu.Lock()
	defer m.mu.Unlock()
	if z, ok := m.state.Zones[strings.ToUpper(symbol)]; ok {
		return z
	}
	return model.ZoneUnknown
}

// UpdateZone records zone for symbol and reports whether it differs from a
// previously recorded zone. The first observation is stored silently and
// ZoneUnknown is never stored.
func (m *Manager) UpdateZone(symbol string, zone model.RSIZone) (changed bool) {
	if zone == model.ZoneUnknown || zone == "" {
		return false
	}
	sym := strings.ToUpper(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, seen := m.state.Zones[sym]
	if seen && prev == zone {
		return false
	}
	m.state.Zones[sym] = zone
	if err := m.save(); err != nil {
		log.Errorf("failed to save watchlist state: %v", err)
	}
	return seen
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
