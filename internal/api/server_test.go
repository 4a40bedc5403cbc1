package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uv-monitor/internal/feed"
	"uv-monitor/internal/match"
	"uv-monitor/internal/recommend"
	"uv-monitor/internal/registry"
	"uv-monitor/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRegistry struct {
	cities []registry.City
}

func (m *memRegistry) ByID(id string) (*registry.City, error) {
	for i := range m.cities {
		if m.cities[i].ID == id {
			return &m.cities[i], nil
		}
	}
	return nil, nil
}

func (m *memRegistry) ByShortName(name string) (*registry.City, error) {
	for i := range m.cities {
		if strings.EqualFold(m.cities[i].ShortName, name) {
			return &m.cities[i], nil
		}
	}
	return nil, nil
}

func (m *memRegistry) FindByName(name string) (*registry.City, error) {
	for i := range m.cities {
		if strings.EqualFold(m.cities[i].Name, name) {
			return &m.cities[i], nil
		}
	}
	return nil, nil
}

func (m *memRegistry) All() ([]registry.City, error) { return m.cities, nil }

type fixedLocator struct{}

func (fixedLocator) Locate(ctx context.Context) (*upstream.Location, error) {
	return &upstream.Location{Latitude: -33.87, Longitude: 151.21, Region: "New South Wales"}, nil
}

type fixedUV struct{}

func (fixedUV) Query(ctx context.Context, lat, lng float64) (*upstream.Conditions, error) {
	observed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	safe := 25
	return &upstream.Conditions{
		UVIndex:      4.0,
		ObservedAt:   observed,
		Sunset:       observed.Add(time.Hour),
		SafeExposure: map[string]*int{"st2": &safe},
	}, nil
}

type fixedTable struct{}

func (fixedTable) MeanRate(region, cancerContains string) (float64, bool)  { return 60, true }
func (fixedTable) NationalMeanRate(cancerContains string) (float64, bool) { return 50, true }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	reg := &memRegistry{cities: []registry.City{
		{ID: "Sydney", Name: "Sydney", ShortName: "syd", State: "NSW", Latitude: -33.87, Longitude: 151.21},
		{ID: "Melbourne", Name: "Melbourne", ShortName: "mel", State: "VIC", Latitude: -37.81, Longitude: 144.96},
	}}

	fetch := func(ctx context.Context) ([]feed.StationReading, error) {
		return []feed.StationReading{
			{StationID: "Sydney", ShortName: "syd", UVIndex: 7.5, Time: "10:00 AM", Status: "ok"},
		}, nil
	}
	cache := feed.NewCache(fetch, 300*time.Second)

	return NewServer(ServerConfig{
		Port:     0,
		Matcher:  match.New(cache, reg),
		Engine:   recommend.New(fixedLocator{}, fixedUV{}, fixedTable{}),
		Registry: reg,
		Cache:    cache,
	})
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestUVIndexListing(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/uv-index")
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Stations  []map[string]any `json:"stations"`
		Synthetic bool             `json:"synthetic"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Stations, 1)
	assert.Equal(t, "Sydney", listing.Stations[0]["city"])
	assert.False(t, listing.Synthetic)
}

func TestCityLookup(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/uv-index/city?name=Sydney")
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Sydney", result["city"])
	assert.Equal(t, 7.5, result["uv_index"])
}

func TestCityLookupMissingName(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, "/api/v1/uv-index/city")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCityLookupNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, "/api/v1/uv-index/city?name=Atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCoordinates(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/uv-index/coordinates?lat=-33.87&lng=151.21")
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Sydney", result["city"])
	assert.Equal(t, 0.0, result["distance"])
}

func TestCoordinatesInvalid(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, "/api/v1/uv-index/coordinates?lat=abc&lng=151.21")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCoordinatesNoReading(t *testing.T) {
	s := newTestServer(t)

	// Melbourne is the nearest city but the feed has no reading for it.
	rec := doRequest(t, s, "/api/v1/uv-index/coordinates?lat=-37.81&lng=144.96")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendation(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/recommendation?skin_type=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["recommendation"], "Safe Exposure: 25 sec")
	assert.Contains(t, body["recommendation"], "Cancer Risk:")
}

func TestRecommendationInvalidSkinType(t *testing.T) {
	s := newTestServer(t)

	for _, q := range []string{"skin_type=0", "skin_type=7", "skin_type=pale"} {
		rec := doRequest(t, s, "/api/v1/recommendation?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestCitiesAndSearch(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/cities")
	require.Equal(t, http.StatusOK, rec.Code)

	var cities []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
	assert.Len(t, cities, 2)

	rec = doRequest(t, s, "/api/v1/cities/search?name=melbourne")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "/api/v1/cities/search?name=Atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, "/api/v1/cities/search")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
