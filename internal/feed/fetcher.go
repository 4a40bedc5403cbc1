package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// FetchError wraps any failure to retrieve or parse the remote feed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type xmlStations struct {
	XMLName   xml.Name      `xml:"stations"`
	Locations []xmlLocation `xml:"location"`
}

type xmlLocation struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name"`
	Index  string `xml:"index"`
	Time   string `xml:"time"`
	Date   string `xml:"date"`
	Status string `xml:"status"`
}

// Fetcher retrieves the remote UV XML feed and converts it into
// station readings. It is stateless and safe for concurrent use.
type Fetcher struct {
	url    string
	client *http.Client
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *Fetcher) Fetch(ctx context.Context) ([]StationReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("bad status: %s", resp.Status)}
	}

	var payload xmlStations
	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("decode xml: %w", err)}
	}

	return convertLocations(payload.Locations), nil
}

// convertLocations normalizes raw feed locations into readings. A
// location with an unparsable UV value is dropped, not propagated.
func convertLocations(locations []xmlLocation) []StationReading {
	readings := make([]StationReading, 0, len(locations))
	for _, loc := range locations {
		value, err := parseUVIndex(loc.Index)
		if err != nil {
			slog.Warn("dropping station reading", "station", loc.ID, "index", loc.Index, "err", err)
			continue
		}
		readings = append(readings, StationReading{
			StationID: loc.ID,
			ShortName: loc.Name,
			UVIndex:   value,
			Time:      loc.Time,
			Date:      loc.Date,
			Status:    loc.Status,
		})
	}
	return readings
}

func parseUVIndex(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		// Absent index defaults to 0, matching the feed convention.
		return 0, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse uv index %q: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("uv index %q out of range", raw)
	}
	return value, nil
}
