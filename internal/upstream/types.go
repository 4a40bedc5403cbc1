package upstream

import (
	"context"
	"fmt"
	"time"
)

// UpstreamError is a third-party API failure carrying the provider's
// own message. It is surfaced to the caller as a diagnostic, never as a
// crash.
type UpstreamError struct {
	Provider string
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Location is the caller's resolved position and administrative region.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Region    string  `json:"region"`
}

// Locator resolves the current location.
type Locator interface {
	Locate(ctx context.Context) (*Location, error)
}

// Conditions is a point-in-time UV and sun-timing report.
type Conditions struct {
	UVIndex      float64         `json:"uv_index"`
	ObservedAt   time.Time       `json:"observed_at"`
	Sunset       time.Time       `json:"sunset"`
	SafeExposure map[string]*int `json:"safe_exposure"`
}

// UVProvider queries UV conditions for a coordinate.
type UVProvider interface {
	Query(ctx context.Context, lat, lng float64) (*Conditions, error)
}
