// Package geo resolves coordinates to a timezone and a human-readable place.
package geo

import (
	"log/slog"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/i474232898/weather-bot/internal/lib/sl"
)

// nameFinder is the subset of tzf.F used here.
type nameFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// TZResolver maps coordinates to an IANA zone. Resolution is best effort:
// any failure yields UTC.
type TZResolver struct {
	finder nameFinder
	log    *slog.Logger
}

// NewTZResolver loads the embedded tzf polygon data.
func NewTZResolver(log *slog.Logger) (*TZResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &TZResolver{finder: finder, log: log.With(slog.String("component", "geo"))}, nil
}

func (r *TZResolver) Location(lat, lon float64) *time.Location {
	if r == nil || r.finder == nil {
		return time.UTC
	}
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		r.log.Warn("unknown timezone, falling back to UTC", slog.String("zone", name), sl.Err(err))
		return time.UTC
	}
	return loc
}
