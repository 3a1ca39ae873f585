package collector

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL = errors.New("invalid request url")
	ErrDecoding   = errors.New("failed to decode market data")
	ErrNoData     = errors.New("no market data returned")
)

// APIError is a non-success response from the market-data provider.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Message)
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage turns a fetch error into a short text suitable for end users.
func UserMessage(err error) string {
	var apiErr *APIError
	var netErr *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return "Server error: " + apiErr.Message
		}
		return fmt.Sprintf("Server error: HTTP %d", apiErr.Status)
	case errors.As(err, &netErr):
		return "Network error: " + netErr.Err.Error()
	case errors.Is(err, ErrDecoding):
		return "Failed to process the data"
	case errors.Is(err, ErrInvalidURL):
		return "Invalid request"
	case errors.Is(err, ErrNoData):
		return "No data available"
	default:
		return "Unexpected error occurred"
	}
}
