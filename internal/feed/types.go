package feed

import "time"

// StationReading is one real-time sample from the remote feed. Readings
// whose index value cannot be parsed as a finite non-negative float are
// dropped at ingestion and never reach this type.
type StationReading struct {
	StationID string  `json:"station_id"`
	ShortName string  `json:"short_name"`
	UVIndex   float64 `json:"uv_index"`
	Time      string  `json:"time"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
}

// Snapshot is the feed state held by the cache. It is replaced wholesale
// on refresh and must never be mutated after publication.
type Snapshot struct {
	Readings  []StationReading `json:"readings"`
	FetchedAt time.Time        `json:"fetched_at"`
	Synthetic bool             `json:"synthetic"`
}
