package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"uv-monitor/internal/upstream"
)

// RiskTable is the incidence-table surface the engine consumes.
type RiskTable interface {
	MeanRate(region, cancerContains string) (float64, bool)
	NationalMeanRate(cancerContains string) (float64, bool)
}

// Engine combines geolocation, live UV conditions and incidence
// statistics into a short textual recommendation. Upstream failures are
// rendered as diagnostic strings; Recommend never fails.
type Engine struct {
	locator upstream.Locator
	uv      upstream.UVProvider
	table   RiskTable
}

func New(locator upstream.Locator, uv upstream.UVProvider, table RiskTable) *Engine {
	return &Engine{locator: locator, uv: uv, table: table}
}

func (e *Engine) Recommend(ctx context.Context, skinType int) string {
	loc, err := e.locator.Locate(ctx)
	if err != nil {
		slog.Warn("geolocation failed", "err", err)
		return "Geolocation Error: " + upstreamMessage(err)
	}

	cond, err := e.uv.Query(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		slog.Warn("uv query failed", "err", err)
		return "OpenUV Error: " + upstreamMessage(err)
	}

	minutesUntilSunset := cond.Sunset.Sub(cond.ObservedAt).Minutes()

	// The risk lookup runs before the sunset branch so both messages
	// carry it.
	risk := e.cancerRisk(loc.Region)

	if minutesUntilSunset < 0 {
		return strings.Join([]string{
			"Sunset has already occurred.",
			"No additional sun protection needed at this time.",
			"Cancer Risk: " + risk,
		}, "\n")
	}

	safeDisplay := "N/A"
	key := fmt.Sprintf("st%d", skinType)
	if v, ok := cond.SafeExposure[key]; ok && v != nil {
		safeDisplay = fmt.Sprintf("%d sec", *v)
	}

	return strings.Join([]string{
		"Safe Exposure: " + safeDisplay,
		fmt.Sprintf("Sunset in: %.1f min", minutesUntilSunset),
		"Recommendation: " + advisory(cond.UVIndex),
		"Cancer Risk: " + risk,
	}, "\n")
}

// advisory maps a UV index onto the three-band guidance.
func advisory(uvIndex float64) string {
	switch {
	case uvIndex >= 6:
		return "High UV: Use SPF 30+, wear protective clothing, seek shade."
	case uvIndex >= 3:
		return "Moderate UV: Use sunscreen if outdoors, wear hat/sunglasses."
	default:
		return "Low UV: Minimal risk, but consider protection if out long."
	}
}

func (e *Engine) cancerRisk(region string) string {
	if e.table == nil || region == "" {
		return "Melanoma incidence data unavailable."
	}

	state, okState := e.table.MeanRate(region, "Melanoma")
	national, okNational := e.table.NationalMeanRate("Melanoma")
	if !okState || !okNational {
		return "Melanoma incidence data unavailable."
	}

	if state > national {
		return "Above-average melanoma incidence. Consider higher SPF and checks."
	}
	return "At/below national melanoma incidence. Maintain good sun protection."
}

func upstreamMessage(err error) string {
	var ue *upstream.UpstreamError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
