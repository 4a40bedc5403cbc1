package match

import (
	"time"

	"uv-monitor/internal/feed"
	"uv-monitor/internal/registry"
)

// Result is a resolved station reading enriched with registry data.
// Distance is only set for location queries.
type Result struct {
	City      string   `json:"city"`
	CityID    string   `json:"city_id"`
	ShortName string   `json:"short_name"`
	State     string   `json:"state"`
	UVIndex   float64  `json:"uv_index"`
	Time      string   `json:"time"`
	Date      string   `json:"date"`
	Status    string   `json:"status"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Distance  *float64 `json:"distance,omitempty"`
}

// Listing is a full-feed view with every reading enriched.
type Listing struct {
	Stations  []Result  `json:"stations"`
	FetchedAt time.Time `json:"fetched_at"`
	Synthetic bool      `json:"synthetic"`
}

// queryResult keeps the query's registry identity: used by the exact-id
// and short-name tiers, where the registry candidate is authoritative.
func queryResult(r *feed.StationReading, city *registry.City) *Result {
	return &Result{
		City:      city.Name,
		CityID:    city.ID,
		ShortName: city.ShortName,
		State:     city.State,
		UVIndex:   r.UVIndex,
		Time:      r.Time,
		Date:      r.Date,
		Status:    r.Status,
		Latitude:  city.Latitude,
		Longitude: city.Longitude,
	}
}

// readingResult keeps the reading's own identity: used by the fuzzy
// tier, which may have matched a related but different station.
func readingResult(r *feed.StationReading, city *registry.City) *Result {
	return &Result{
		City:      city.Name,
		CityID:    r.StationID,
		ShortName: r.ShortName,
		State:     city.State,
		UVIndex:   r.UVIndex,
		Time:      r.Time,
		Date:      r.Date,
		Status:    r.Status,
		Latitude:  city.Latitude,
		Longitude: city.Longitude,
	}
}
