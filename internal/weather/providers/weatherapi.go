package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/lib/sl"
	"github.com/i474232898/weather-bot/internal/metrics"
	"github.com/i474232898/weather-bot/internal/weather"
)

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com.
type WeatherAPIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string, log *slog.Logger, m *metrics.Metrics) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newBreaker("weatherapi"),
		log:     log.With(slog.String("component", "weatherapi")),
		metrics: m,
	}
}

// FetchWeather calls current.json or forecast.json for the given coordinates.
func (p *WeatherAPIProvider) FetchWeather(ctx context.Context, r weather.Request) (weather.Payload, error) {
	const op = "providers.WeatherAPI.FetchWeather"

	payload, err := p.fetch(ctx, r)
	if err != nil {
		p.metrics.ProviderRequest(string(r.Mode), "error")
		p.log.Warn("provider call failed", slog.String("mode", string(r.Mode)), sl.Err(err))
		return weather.Payload{}, domain.ProviderError(op, err)
	}
	p.metrics.ProviderRequest(string(r.Mode), "ok")
	return payload, nil
}

func (p *WeatherAPIProvider) fetch(ctx context.Context, r weather.Request) (weather.Payload, error) {
	if p.apiKey == "" {
		return weather.Payload{}, errors.New("weatherapi api key is not configured")
	}

	endpoint, values, err := p.query(r)
	if err != nil {
		return weather.Payload{}, err
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode()), nil)
	if err != nil {
		return weather.Payload{}, err
	}

	resp, reqErr := doRequest(ctx, p.client, p.circuit, req)
	if resp == nil {
		return weather.Payload{}, reqErr
	}
	defer resp.Body.Close()

	var payload weather.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if reqErr != nil {
			return weather.Payload{}, reqErr
		}
		return weather.Payload{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.Error != nil {
		return weather.Payload{}, fmt.Errorf("provider error %d: %s", payload.Error.Code, payload.Error.Message)
	}
	if reqErr != nil {
		return weather.Payload{}, reqErr
	}

	switch r.Mode {
	case weather.ModeCurrent:
		if payload.Current == nil {
			return weather.Payload{}, errors.New("response has no current block")
		}
	case weather.ModeForecast:
		if payload.Forecast == nil {
			return weather.Payload{}, errors.New("response has no forecast block")
		}
	}
	return payload, nil
}

func (p *WeatherAPIProvider) query(r weather.Request) (string, url.Values, error) {
	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", formatCoord(r.Latitude)+","+formatCoord(r.Longitude))
	values.Set("lang", r.Language.ProviderHint())
	values.Set("aqi", "no")

	switch r.Mode {
	case weather.ModeCurrent:
		return "current.json", values, nil
	case weather.ModeForecast:
		days := r.Days
		if days <= 0 {
			days = weather.ForecastDays
		}
		values.Set("days", strconv.Itoa(days))
		values.Set("alerts", "no")
		return "forecast.json", values, nil
	default:
		return "", nil, fmt.Errorf("unknown mode %q", r.Mode)
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
