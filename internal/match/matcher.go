package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"uv-monitor/internal/feed"
	"uv-monitor/internal/registry"
)

var (
	// ErrNotFound marks a normal no-match outcome, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrNoCity means the registry holds no cities to rank against.
	ErrNoCity = fmt.Errorf("no nearby city: %w", ErrNotFound)

	// ErrNoReading means a city was resolved but the feed carries no
	// reading for it.
	ErrNoReading = fmt.Errorf("no reading for city: %w", ErrNotFound)
)

// Feeder supplies the current feed snapshot.
type Feeder interface {
	Feed(ctx context.Context) *feed.Snapshot
}

// Registry is the narrow city-registry surface the matcher consumes.
type Registry interface {
	ByID(id string) (*registry.City, error)
	ByShortName(name string) (*registry.City, error)
	FindByName(name string) (*registry.City, error)
	All() ([]registry.City, error)
}

// Matcher resolves cities to station readings.
type Matcher struct {
	feed Feeder
	reg  Registry
}

func New(feeder Feeder, reg Registry) *Matcher {
	return &Matcher{feed: feeder, reg: reg}
}

// ByName resolves a free-text city name through three tiers, first
// success wins: exact station id, short name, then fuzzy substring.
func (m *Matcher) ByName(ctx context.Context, name string) (*Result, error) {
	snap := m.feed.Feed(ctx)

	city, err := m.reg.FindByName(name)
	if err != nil {
		slog.Warn("registry lookup failed", "name", name, "err", err)
		city = nil
	}

	if city != nil {
		// Tier 1: exact match on the feed's station id.
		if r := findByStationID(snap.Readings, city.ID); r != nil {
			return queryResult(r, city), nil
		}
		// Tier 2: case-insensitive match on the feed's short name.
		if city.ShortName != "" {
			if r := findByShortName(snap.Readings, city.ShortName); r != nil {
				return queryResult(r, city), nil
			}
		}
	}

	// Tier 3: bidirectional substring match, lowest confidence.
	if res := m.fuzzyByName(snap.Readings, name); res != nil {
		return res, nil
	}

	return nil, fmt.Errorf("city %q: %w", name, ErrNotFound)
}

// ByLocation ranks all registered cities by degree-space Euclidean
// distance and resolves the closest one through the exact-id tier only.
func (m *Matcher) ByLocation(ctx context.Context, lat, lng float64) (*Result, error) {
	cities, err := m.reg.All()
	if err != nil {
		return nil, err
	}

	var closest *registry.City
	best := math.Inf(1)
	for i := range cities {
		d := math.Hypot(lat-cities[i].Latitude, lng-cities[i].Longitude)
		if d < best {
			best = d
			closest = &cities[i]
		}
	}
	if closest == nil {
		return nil, ErrNoCity
	}

	snap := m.feed.Feed(ctx)
	r := findByStationID(snap.Readings, closest.ID)
	if r == nil {
		return nil, fmt.Errorf("%s: %w", closest.Name, ErrNoReading)
	}

	res := queryResult(r, closest)
	res.Distance = &best
	return res, nil
}

// ListAll enriches every feed reading from the registry, falling back
// to a placeholder record for stations the registry does not know.
func (m *Matcher) ListAll(ctx context.Context) (*Listing, error) {
	snap := m.feed.Feed(ctx)

	stations := make([]Result, 0, len(snap.Readings))
	for i := range snap.Readings {
		r := &snap.Readings[i]

		city, err := m.reg.ByID(r.StationID)
		if err != nil {
			return nil, err
		}
		if city == nil && r.ShortName != "" {
			city, err = m.reg.ByShortName(r.ShortName)
			if err != nil {
				return nil, err
			}
		}
		if city == nil {
			name := r.StationID
			if name == "" {
				name = "Unknown City"
			}
			city = &registry.City{
				ID:        r.StationID,
				Name:      name,
				ShortName: r.ShortName,
				State:     "Unknown",
			}
		}

		res := queryResult(r, city)
		res.CityID = r.StationID
		res.ShortName = r.ShortName
		stations = append(stations, *res)
	}

	return &Listing{
		Stations:  stations,
		FetchedAt: snap.FetchedAt,
		Synthetic: snap.Synthetic,
	}, nil
}

// findByStationID is the exact-id tier scan: case-sensitive, first
// match in feed order wins.
func findByStationID(readings []feed.StationReading, id string) *feed.StationReading {
	if id == "" {
		return nil
	}
	for i := range readings {
		if readings[i].StationID == id {
			return &readings[i]
		}
	}
	return nil
}

func findByShortName(readings []feed.StationReading, shortName string) *feed.StationReading {
	for i := range readings {
		if strings.EqualFold(readings[i].ShortName, shortName) {
			return &readings[i]
		}
	}
	return nil
}
