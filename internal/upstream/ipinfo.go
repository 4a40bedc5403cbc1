package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type IPInfoClient struct {
	url    string
	client *http.Client
}

func NewIPInfoClient(url string, timeout time.Duration) *IPInfoClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IPInfoClient{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type ipinfoResponse struct {
	Loc    string `json:"loc"`
	Region string `json:"region"`
}

func (c *IPInfoClient) Locate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &UpstreamError{Provider: "ipinfo", Message: "build request", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: "ipinfo", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Provider: "ipinfo", Message: fmt.Sprintf("bad status: %s", resp.Status)}
	}

	var payload ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Provider: "ipinfo", Message: "decode response", Err: err}
	}

	lat, lng, err := parseLoc(payload.Loc)
	if err != nil {
		return nil, &UpstreamError{Provider: "ipinfo", Message: "parse location", Err: err}
	}

	return &Location{
		Latitude:  lat,
		Longitude: lng,
		Region:    strings.TrimSpace(payload.Region),
	}, nil
}

// parseLoc splits the provider's "lat,lng" field.
func parseLoc(loc string) (float64, float64, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed loc %q", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
