package model

import (
	"fmt"
	"strings"
)

// TimeWindow selects a trailing slice of a quote series.
type TimeWindow int

const (
	Week TimeWindow = iota
	Month
	SixMonths
)

// TimeWindows lists every window in display order.
var TimeWindows = []TimeWindow{Week, Month, SixMonths}

// DaysToInclude returns the number of calendar days the window spans.
func (w TimeWindow) DaysToInclude() int {
	switch w {
	case Week:
		return 7
	case Month:
		return 30
	case SixMonths:
		return 180
	}
	return 0
}

func (w TimeWindow) String() string {
	switch w {
	case Week:
		return "week"
	case Month:
		return "month"
	case SixMonths:
		return "sixMonths"
	}
	return fmt.Sprintf("TimeWindow(%d)", int(w))
}

// ParseTimeWindow accepts the String form plus a few short aliases.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "1w", "w":
		return Week, nil
	case "month", "1m", "m", "":
		return Month, nil
	case "sixmonths", "six_months", "6m", "6mo":
		return SixMonths, nil
	}
	return 0, fmt.Errorf("unknown time window %q", s)
}

func (w TimeWindow) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *TimeWindow) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeWindow(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
