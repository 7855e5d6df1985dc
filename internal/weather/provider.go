package weather

import (
	"context"

	"github.com/i474232898/weather-bot/internal/domain"
)

// Request describes one provider call.
type Request struct {
	Mode      Mode
	Latitude  float64
	Longitude float64
	Language  domain.Language
	// Days is only sent in forecast mode.
	Days int
}

// Provider abstracts the forecast source. Every failure, including an error
// object in an otherwise successful response, is reported as an error
// wrapping domain.ErrProvider.
type Provider interface {
	FetchWeather(ctx context.Context, req Request) (Payload, error)
}
