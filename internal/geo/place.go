package geo

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-bot/internal/lib/sl"
)

var keyOnce sync.Once

type reverseFunc func(geocoder.Location) ([]geocoder.Address, error)

// PlaceResolver reverse-geocodes coordinates into "City, Country". It is a
// no-op when no API key is configured.
type PlaceResolver struct {
	enabled bool
	reverse reverseFunc
	log     *slog.Logger
}

// NewPlaceResolver sets the geocoder's package-level key once.
func NewPlaceResolver(apiKey string, log *slog.Logger) *PlaceResolver {
	if apiKey != "" {
		keyOnce.Do(func() { geocoder.ApiKey = apiKey })
	}
	return &PlaceResolver{
		enabled: apiKey != "",
		reverse: geocoder.GeocodingReverse,
		log:     log.With(slog.String("component", "geo")),
	}
}

// Place returns "" when disabled, on lookup failure, or when nothing matches.
func (r *PlaceResolver) Place(lat, lon float64) string {
	if r == nil || !r.enabled {
		return ""
	}
	addrs, err := r.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
	if err != nil {
		r.log.Warn("reverse geocoding failed", sl.Err(err))
		return ""
	}
	for _, a := range addrs {
		parts := make([]string, 0, 2)
		if a.City != "" {
			parts = append(parts, a.City)
		}
		if a.Country != "" {
			parts = append(parts, a.Country)
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return ""
}
