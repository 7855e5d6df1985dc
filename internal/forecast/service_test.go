package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/format"
	"github.com/i474232898/weather-bot/internal/weather"
)

type PreferenceStoreMock struct {
	mock.Mock
}

func (m *PreferenceStoreMock) UpsertLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	return m.Called(ctx, userID, lang).Error(0)
}

func (m *PreferenceStoreMock) GetPreferences(ctx context.Context, userID int64) (domain.UserPreferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserPreferences), args.Error(1)
}

func (m *PreferenceStoreMock) UpdateSettings(ctx context.Context, userID int64, s domain.Settings) error {
	return m.Called(ctx, userID, s).Error(0)
}

func (m *PreferenceStoreMock) GetLanguage(ctx context.Context, userID int64) (domain.Language, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Language), args.Error(1)
}

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) FetchWeather(ctx context.Context, req weather.Request) (weather.Payload, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(weather.Payload), args.Error(1)
}

type recordingRenderer struct {
	series format.Series
	labels format.Labels
}

func (r *recordingRenderer) Render(series format.Series, labels format.Labels) (string, error) {
	r.series, r.labels = series, labels
	return "/tmp/plot.png", nil
}

type utcZone struct{}

func (utcZone) Location(_, _ float64) *time.Location { return time.UTC }

func ptr[T any](v T) *T { return &v }

func completePrefs() domain.UserPreferences {
	return domain.UserPreferences{
		UserID:    5,
		Language:  domain.LangRU,
		Latitude:  ptr(55.75),
		Longitude: ptr(37.61),
		TempUnit:  ptr(domain.Celsius),
		WindUnit:  ptr(domain.MetersPerSecond),
	}
}

func forecastPayload() weather.Payload {
	return weather.Payload{Forecast: &weather.Forecast{ForecastDay: []weather.ForecastDay{
		{Date: "2026-03-01", Day: weather.Day{AvgTempC: 1.2, Condition: weather.Condition{Text: "снег"}}},
		{Date: "2026-03-02", Day: weather.Day{AvgTempC: 2.9, Condition: weather.Condition{Text: "облачно"}}},
		{Date: "2026-03-03", Day: weather.Day{AvgTempC: 3.1, Condition: weather.Condition{Text: "ясно"}}},
	}}}
}

type fixture struct {
	store    *PreferenceStoreMock
	provider *ProviderMock
	charts   *recordingRenderer
	svc      *Service
}

func newFixture() fixture {
	f := fixture{
		store:    new(PreferenceStoreMock),
		provider: new(ProviderMock),
		charts:   &recordingRenderer{},
	}
	now := func() time.Time { return time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC) }
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.store, f.provider, format.NewDaysGenerator(utcZone{}, now), f.charts, nil, log)
	return f
}

func TestService_Today(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).Return(completePrefs(), nil)
	f.provider.On("FetchWeather", ctx, weather.Request{
		Mode: weather.ModeCurrent, Latitude: 55.75, Longitude: 37.61, Language: domain.LangRU,
	}).Return(weather.Payload{Current: &weather.Current{
		TempC: -3, WindKph: 36, WindDir: "N", PressureMb: 1013, Condition: weather.Condition{Text: "пасмурно"},
	}}, nil)

	text, lang, err := f.svc.Today(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.LangRU, lang)
	assert.Contains(t, text, "Пасмурно")
	assert.Contains(t, text, "скорость ветра: 10 м/с")
	assert.Contains(t, text, "Направление ветра: С,")
	f.provider.AssertExpectations(t)
}

func TestService_ProviderErrorPropagates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).Return(completePrefs(), nil)
	f.provider.On("FetchWeather", ctx, mock.Anything).
		Return(weather.Payload{}, domain.ProviderError("providers.WeatherAPI.FetchWeather", errors.New("No matching location found.")))

	_, lang, err := f.svc.Today(ctx, 5)
	assert.True(t, errors.Is(err, domain.ErrProvider))
	assert.Equal(t, domain.LangRU, lang)
}

func TestService_IncompletePreferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).Return(domain.UserPreferences{UserID: 5, Language: domain.LangEN}, nil)

	_, _, err := f.svc.Days(ctx, 5)
	assert.True(t, errors.Is(err, domain.ErrStore))
	assert.True(t, errors.Is(err, ErrIncomplete))
	f.provider.AssertNotCalled(t, "FetchWeather", mock.Anything, mock.Anything)
}

func TestService_Day(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).Return(completePrefs(), nil)
	f.provider.On("FetchWeather", ctx, weather.Request{
		Mode: weather.ModeForecast, Latitude: 55.75, Longitude: 37.61, Language: domain.LangRU, Days: 3,
	}).Return(forecastPayload(), nil)

	text, _, err := f.svc.Day(ctx, 5, "02")
	require.NoError(t, err)
	assert.Contains(t, text, "Облачно")

	_, _, err = f.svc.Day(ctx, 5, "17")
	assert.True(t, errors.Is(err, ErrDayUnavailable))
	assert.True(t, errors.Is(err, domain.ErrProvider))
}

func TestService_PlotUsesDayLabels(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).Return(completePrefs(), nil)
	f.provider.On("FetchWeather", ctx, mock.Anything).Return(forecastPayload(), nil)

	path, lang, err := f.svc.Plot(ctx, 5, format.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plot.png", path)
	assert.Equal(t, domain.LangRU, lang)

	labels, _, err := f.svc.DayLabels(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"28", "01", "02"}, labels)

	require.Len(t, f.charts.series, 3)
	for i, p := range f.charts.series {
		assert.Equal(t, labels[i], p.Label)
	}
	assert.Equal(t, []float64{1, 2, 3}, []float64{f.charts.series[0].Value, f.charts.series[1].Value, f.charts.series[2].Value})
	assert.Equal(t, "График температуры", f.charts.labels.Title)
}

func TestService_Profile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).Return(completePrefs(), nil)

	text, lang, err := f.svc.Profile(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.LangRU, lang)
	assert.Contains(t, text, "Широта: 55.75")
}

func TestService_StoreErrorPropagates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetPreferences", ctx, int64(5)).
		Return(domain.UserPreferences{}, domain.StoreError("preferences.GetPreferences", errors.New("conn reset")))

	_, _, err := f.svc.Plot(ctx, 5, format.KindHumidity)
	assert.True(t, errors.Is(err, domain.ErrStore))
}
