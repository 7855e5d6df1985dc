// Package forecast orchestrates one weather request: read preferences, call
// the provider, format the answer.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/format"
	"github.com/i474232898/weather-bot/internal/weather"
)

var (
	// ErrIncomplete means the user has not finished the setup dialogue.
	ErrIncomplete = errors.New("preferences are incomplete")
	// ErrDayUnavailable means the requested day is not in the provider window.
	ErrDayUnavailable = errors.New("day is not in the forecast")
)

type ChartRenderer interface {
	Render(series format.Series, labels format.Labels) (string, error)
}

type PlaceResolver interface {
	Place(lat, lon float64) string
}

// Service serves the read-side operations of the bot.
type Service struct {
	store    domain.PreferenceStore
	provider weather.Provider
	days     *format.DaysGenerator
	charts   ChartRenderer
	places   PlaceResolver
	log      *slog.Logger
}

func NewService(
	store domain.PreferenceStore,
	provider weather.Provider,
	days *format.DaysGenerator,
	charts ChartRenderer,
	places PlaceResolver,
	log *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		provider: provider,
		days:     days,
		charts:   charts,
		places:   places,
		log:      log.With(slog.String("component", "forecast")),
	}
}

// Language returns the stored language.
func (s *Service) Language(ctx context.Context, userID int64) (domain.Language, error) {
	return s.store.GetLanguage(ctx, userID)
}

// Today renders the current conditions.
func (s *Service) Today(ctx context.Context, userID int64) (string, domain.Language, error) {
	const op = "forecast.Today"

	prefs, err := s.completePrefs(ctx, op, userID)
	if err != nil {
		return "", prefs.Language, err
	}
	payload, err := s.fetch(ctx, weather.ModeCurrent, prefs)
	if err != nil {
		return "", prefs.Language, err
	}
	text, err := format.FormatCurrent(payload, prefs, prefs.Language)
	if err != nil {
		return "", prefs.Language, domain.ProviderError(op, err)
	}
	return text, prefs.Language, nil
}

// Days renders every forecast day, keyed by two-digit day of month.
func (s *Service) Days(ctx context.Context, userID int64) (map[string]string, domain.Language, error) {
	const op = "forecast.Days"

	prefs, err := s.completePrefs(ctx, op, userID)
	if err != nil {
		return nil, prefs.Language, err
	}
	payload, err := s.fetch(ctx, weather.ModeForecast, prefs)
	if err != nil {
		return nil, prefs.Language, err
	}
	days, err := format.FormatForecastDays(payload, prefs, prefs.Language)
	if err != nil {
		return nil, prefs.Language, domain.ProviderError(op, err)
	}
	return days, prefs.Language, nil
}

// Day renders a single forecast day.
func (s *Service) Day(ctx context.Context, userID int64, key string) (string, domain.Language, error) {
	const op = "forecast.Day"

	days, lang, err := s.Days(ctx, userID)
	if err != nil {
		return "", lang, err
	}
	text, ok := days[key]
	if !ok {
		return "", lang, domain.ProviderError(op, fmt.Errorf("%w: %s", ErrDayUnavailable, key))
	}
	return text, lang, nil
}

// DayLabels returns the labels of the forecast window in the user's zone.
func (s *Service) DayLabels(ctx context.Context, userID int64) ([]string, domain.Language, error) {
	const op = "forecast.DayLabels"

	prefs, err := s.completePrefs(ctx, op, userID)
	if err != nil {
		return nil, prefs.Language, err
	}
	return s.days.Labels(*prefs.Latitude, *prefs.Longitude, weather.ForecastDays), prefs.Language, nil
}

// Plot renders a chart and returns its path. The caller removes the file.
func (s *Service) Plot(ctx context.Context, userID int64, kind format.Kind) (string, domain.Language, error) {
	const op = "forecast.Plot"

	prefs, err := s.completePrefs(ctx, op, userID)
	if err != nil {
		return "", prefs.Language, err
	}
	payload, err := s.fetch(ctx, weather.ModeForecast, prefs)
	if err != nil {
		return "", prefs.Language, err
	}
	series, err := format.BuildSeries(payload, prefs, kind)
	if err != nil {
		return "", prefs.Language, domain.ProviderError(op, err)
	}

	labels := s.days.Labels(*prefs.Latitude, *prefs.Longitude, weather.ForecastDays)
	path, err := s.charts.Render(series.Relabel(labels), format.PlotLabels(kind, prefs, prefs.Language))
	if err != nil {
		return "", prefs.Language, fmt.Errorf("%s: %w", op, err)
	}
	return path, prefs.Language, nil
}

// Profile renders the stored settings, with the place name when known.
func (s *Service) Profile(ctx context.Context, userID int64) (string, domain.Language, error) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return "", domain.LangUnset, err
	}

	var place string
	if s.places != nil && prefs.Latitude != nil && prefs.Longitude != nil {
		place = s.places.Place(*prefs.Latitude, *prefs.Longitude)
	}
	return format.FormatProfile(prefs, prefs.Language, place), prefs.Language, nil
}

func (s *Service) completePrefs(ctx context.Context, op string, userID int64) (domain.UserPreferences, error) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return domain.UserPreferences{}, err
	}
	if !prefs.Complete() {
		return prefs, domain.StoreError(op, ErrIncomplete)
	}
	return prefs, nil
}

func (s *Service) fetch(ctx context.Context, mode weather.Mode, prefs domain.UserPreferences) (weather.Payload, error) {
	req := weather.Request{
		Mode:      mode,
		Latitude:  *prefs.Latitude,
		Longitude: *prefs.Longitude,
		Language:  prefs.Language,
	}
	if mode == weather.ModeForecast {
		req.Days = weather.ForecastDays
	}
	return s.provider.FetchWeather(ctx, req)
}
