package recommend

import (
	"context"
	"testing"
	"time"

	"uv-monitor/internal/upstream"

	"github.com/stretchr/testify/assert"
)

type stubLocator struct {
	loc *upstream.Location
	err error
}

func (s *stubLocator) Locate(ctx context.Context) (*upstream.Location, error) {
	return s.loc, s.err
}

type stubUV struct {
	cond *upstream.Conditions
	err  error
}

func (s *stubUV) Query(ctx context.Context, lat, lng float64) (*upstream.Conditions, error) {
	return s.cond, s.err
}

type stubTable struct {
	state      float64
	national   float64
	stateOK    bool
	nationalOK bool
}

func (s *stubTable) MeanRate(region, cancerContains string) (float64, bool) {
	return s.state, s.stateOK
}

func (s *stubTable) NationalMeanRate(cancerContains string) (float64, bool) {
	return s.national, s.nationalOK
}

func minutes(n int) *int { return &n }

func daylightConditions(uv float64) *upstream.Conditions {
	observed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return &upstream.Conditions{
		UVIndex:      uv,
		ObservedAt:   observed,
		Sunset:       observed.Add(90 * time.Minute),
		SafeExposure: map[string]*int{"st2": minutes(35)},
	}
}

func sydney() *stubLocator {
	return &stubLocator{loc: &upstream.Location{Latitude: -33.87, Longitude: 151.21, Region: "New South Wales"}}
}

func aboveAverage() *stubTable {
	return &stubTable{state: 60, national: 50, stateOK: true, nationalOK: true}
}

func TestRecommendDaylight(t *testing.T) {
	e := New(sydney(), &stubUV{cond: daylightConditions(7.0)}, aboveAverage())

	summary := e.Recommend(context.Background(), 2)

	assert.Contains(t, summary, "Safe Exposure: 35 sec")
	assert.Contains(t, summary, "Sunset in: 90.0 min")
	assert.Contains(t, summary, "High UV")
	assert.Contains(t, summary, "Above-average melanoma incidence")
}

func TestRecommendAdvisoryBands(t *testing.T) {
	assert.Contains(t, advisory(6.0), "High UV")
	assert.Contains(t, advisory(3.0), "Moderate UV")
	assert.Contains(t, advisory(2.9), "Low UV")
}

func TestRecommendMissingSafeExposureKey(t *testing.T) {
	e := New(sydney(), &stubUV{cond: daylightConditions(4.0)}, aboveAverage())

	// Skin type 5 has no st5 entry in the stub conditions.
	summary := e.Recommend(context.Background(), 5)
	assert.Contains(t, summary, "Safe Exposure: N/A")
}

func TestRecommendAfterSunset(t *testing.T) {
	observed := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)
	cond := &upstream.Conditions{
		UVIndex:      0.0,
		ObservedAt:   observed,
		Sunset:       observed.Add(-30 * time.Minute),
		SafeExposure: map[string]*int{"st2": minutes(999)},
	}
	e := New(sydney(), &stubUV{cond: cond}, aboveAverage())

	summary := e.Recommend(context.Background(), 2)

	assert.Contains(t, summary, "Sunset has already occurred.")
	assert.Contains(t, summary, "Cancer Risk:")
	assert.NotContains(t, summary, "Safe Exposure")
	assert.NotContains(t, summary, "Sunset in:")
}

func TestRecommendBelowAverageRisk(t *testing.T) {
	table := &stubTable{state: 40, national: 50, stateOK: true, nationalOK: true}
	e := New(sydney(), &stubUV{cond: daylightConditions(1.0)}, table)

	summary := e.Recommend(context.Background(), 2)
	assert.Contains(t, summary, "At/below national melanoma incidence")
}

func TestRecommendRiskDataUnavailable(t *testing.T) {
	table := &stubTable{stateOK: false, nationalOK: true}
	e := New(sydney(), &stubUV{cond: daylightConditions(1.0)}, table)

	summary := e.Recommend(context.Background(), 2)
	assert.Contains(t, summary, "Melanoma incidence data unavailable.")
}

func TestRecommendNilTable(t *testing.T) {
	e := New(sydney(), &stubUV{cond: daylightConditions(1.0)}, nil)

	summary := e.Recommend(context.Background(), 2)
	assert.Contains(t, summary, "Melanoma incidence data unavailable.")
}

func TestRecommendGeolocationFailure(t *testing.T) {
	locator := &stubLocator{err: &upstream.UpstreamError{Provider: "ipinfo", Message: "rate limited"}}
	e := New(locator, &stubUV{}, aboveAverage())

	summary := e.Recommend(context.Background(), 2)
	assert.Equal(t, "Geolocation Error: rate limited", summary)
}

func TestRecommendUVFailure(t *testing.T) {
	uv := &stubUV{err: &upstream.UpstreamError{Provider: "openuv", Message: "Daily API quota exceeded"}}
	e := New(sydney(), uv, aboveAverage())

	summary := e.Recommend(context.Background(), 2)
	assert.Equal(t, "OpenUV Error: Daily API quota exceeded", summary)
}
