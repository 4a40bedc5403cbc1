package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type OpenUVClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOpenUVClient(baseURL, apiKey string, timeout time.Duration) *OpenUVClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenUVClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type openUVResponse struct {
	Result *struct {
		UV               float64         `json:"uv"`
		UVTime           string          `json:"uv_time"`
		SafeExposureTime map[string]*int `json:"safe_exposure_time"`
		SunInfo          struct {
			SunTimes struct {
				Sunset string `json:"sunset"`
			} `json:"sun_times"`
		} `json:"sun_info"`
	} `json:"result"`
	Error any `json:"error"`
}

func (c *OpenUVClient) Query(ctx context.Context, lat, lng float64) (*Conditions, error) {
	if c.apiKey == "" {
		return nil, &UpstreamError{Provider: "openuv", Message: "api key is empty"}
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.6f", lat))
	query.Set("lng", fmt.Sprintf("%.6f", lng))

	endpoint := fmt.Sprintf("%s/api/v1/uv?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{Provider: "openuv", Message: "build request", Err: err}
	}
	req.Header.Set("x-access-token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: "openuv", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var payload openUVResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Provider: "openuv", Message: "decode response", Err: err}
	}

	// The provider reports errors in the body, not the status code.
	if payload.Result == nil {
		msg := "Unknown error"
		if payload.Error != nil {
			msg = fmt.Sprintf("%v", payload.Error)
		}
		return nil, &UpstreamError{Provider: "openuv", Message: msg}
	}

	observed, err := time.Parse(time.RFC3339, payload.Result.UVTime)
	if err != nil {
		return nil, &UpstreamError{Provider: "openuv", Message: "parse uv_time", Err: err}
	}
	sunset, err := time.Parse(time.RFC3339, payload.Result.SunInfo.SunTimes.Sunset)
	if err != nil {
		return nil, &UpstreamError{Provider: "openuv", Message: "parse sunset", Err: err}
	}

	return &Conditions{
		UVIndex:      payload.Result.UV,
		ObservedAt:   observed,
		Sunset:       sunset,
		SafeExposure: payload.Result.SafeExposureTime,
	}, nil
}
