package match

import (
	"log/slog"
	"strings"

	"uv-monitor/internal/feed"
)

// FuzzyCandidate reports whether a station id is a fuzzy match for a
// query: either string is a case-insensitive substring of the other.
// This is the only tier that can produce false positives, so it is kept
// as a separate policy function and always runs last.
func FuzzyCandidate(query, stationID string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	id := strings.ToLower(strings.TrimSpace(stationID))
	if q == "" || id == "" {
		return false
	}
	return strings.Contains(id, q) || strings.Contains(q, id)
}

// fuzzyByName scans the feed for the first fuzzy candidate that the
// registry recognizes by station id. The result carries the reading's
// own identity, since the matched station may differ from the query.
// Candidates unknown to the registry are skipped and the scan
// continues.
func (m *Matcher) fuzzyByName(readings []feed.StationReading, query string) *Result {
	for i := range readings {
		r := &readings[i]
		if !FuzzyCandidate(query, r.StationID) {
			continue
		}
		city, err := m.reg.ByID(r.StationID)
		if err != nil {
			slog.Warn("registry lookup failed during fuzzy scan", "station", r.StationID, "err", err)
			continue
		}
		if city == nil {
			continue
		}
		return readingResult(r, city)
	}
	return nil
}
