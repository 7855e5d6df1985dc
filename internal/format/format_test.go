package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/weather"
)

func ptr[T any](v T) *T { return &v }

func prefs(t domain.TempUnit, w domain.WindUnit) domain.UserPreferences {
	return domain.UserPreferences{
		UserID:    1,
		Language:  domain.LangEN,
		Latitude:  ptr(51.5),
		Longitude: ptr(-0.12),
		TempUnit:  &t,
		WindUnit:  &w,
	}
}

func currentPayload() weather.Payload {
	return weather.Payload{Current: &weather.Current{
		TempC: 11, TempF: 51.8, FeelsLikeC: 9.4, FeelsLikeF: 48.9,
		WindKph: 36, WindDir: "SW", PressureMb: 1013, PrecipMm: 0,
		Humidity: 82, Cloud: 75, Condition: weather.Condition{Text: "partly cloudy"},
	}}
}

func forecastPayload() weather.Payload {
	return weather.Payload{Forecast: &weather.Forecast{ForecastDay: []weather.ForecastDay{
		{Date: "2026-03-01", Day: weather.Day{AvgTempC: 7.5, AvgTempF: 45.5, MaxTempC: 9, MinTempC: 4, MaxWindKph: 20.2, TotalPrecipMm: 1.3, AvgHumidity: 80, Condition: weather.Condition{Text: "light rain"}}},
		{Date: "2026-03-02", Day: weather.Day{AvgTempC: 8.1, AvgTempF: 46.6, MaxWindKph: 36, TotalPrecipMm: 0, AvgHumidity: 70.4, Condition: weather.Condition{Text: "SUNNY"}}},
		{Date: "2026-03-03", Day: weather.Day{AvgTempC: -2.7, AvgTempF: 27.1, MaxWindKph: 10.1, TotalPrecipMm: 0.2, AvgHumidity: 65, Condition: weather.Condition{Text: "overcast"}}},
	}}}
}

func TestConversions(t *testing.T) {
	assert.Equal(t, 10, KphToMps(36))
	assert.Equal(t, 10, KphToMps(36.9))
	assert.Equal(t, 5, KphToMps(20.2))
	assert.Equal(t, 0, KphToMps(3))
	assert.Equal(t, 760, MbToMmHg(1013))
	assert.Equal(t, 760, MbToMmHg(1013.7))
}

func TestWindDirection(t *testing.T) {
	assert.Equal(t, "ЮЗ", WindDirection("SW", domain.LangRU))
	assert.Equal(t, "ССЗ", WindDirection("NNW", domain.LangRU))
	assert.Equal(t, "SW", WindDirection("SW", domain.LangEN))
	assert.Equal(t, "??", WindDirection("??", domain.LangRU))
	assert.Len(t, windDirRU, 16)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Partly cloudy", Capitalize("partly cloudy", domain.LangEN))
	assert.Equal(t, "Sunny", Capitalize("SUNNY", domain.LangEN))
	assert.Equal(t, "Небольшой дождь", Capitalize("небольшой ДОЖДЬ", domain.LangRU))
	assert.Equal(t, "", Capitalize("", domain.LangRU))
}

func TestFormatCurrent(t *testing.T) {
	t.Run("english metric", func(t *testing.T) {
		out, err := FormatCurrent(currentPayload(), prefs(domain.Celsius, domain.MetersPerSecond), domain.LangEN)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Partly cloudy\n"))
		assert.Contains(t, out, "Air temperature: 11°,")
		assert.Contains(t, out, "feels like: 9.4°")
		assert.Contains(t, out, "Wind direction: SW,")
		assert.Contains(t, out, "wind speed: 10 m/s")
		assert.Contains(t, out, "Air pressure: 760 mmHg")
		assert.Contains(t, out, "Precipitation: not expected")
		assert.Contains(t, out, "Humidity: 82%")
		assert.Contains(t, out, "Cloud cover: 75%")
	})

	t.Run("russian imperial", func(t *testing.T) {
		out, err := FormatCurrent(currentPayload(), prefs(domain.Fahrenheit, domain.KmPerHour), domain.LangRU)
		require.NoError(t, err)
		assert.Contains(t, out, "Температура воздуха: 51.8°,")
		assert.Contains(t, out, "Направление ветра: ЮЗ,")
		assert.Contains(t, out, "скорость ветра: 36 км/ч")
		assert.Contains(t, out, "Давление воздуха: 760 мм рт.ст.")
		assert.Contains(t, out, "Осадки: не ожидаются")
	})

	t.Run("precipitation present", func(t *testing.T) {
		p := currentPayload()
		p.Current.PrecipMm = 2.5
		en, err := FormatCurrent(p, prefs(domain.Celsius, domain.MetersPerSecond), domain.LangEN)
		require.NoError(t, err)
		assert.Contains(t, en, "Precipitation: 2.5 mm")
		ru, err := FormatCurrent(p, prefs(domain.Celsius, domain.MetersPerSecond), domain.LangRU)
		require.NoError(t, err)
		assert.Contains(t, ru, "Осадки: 2.5 мм")
	})

	t.Run("no current block", func(t *testing.T) {
		_, err := FormatCurrent(weather.Payload{}, prefs(domain.Celsius, domain.MetersPerSecond), domain.LangEN)
		assert.Error(t, err)
	})
}

func TestFormatForecastDays(t *testing.T) {
	out, err := FormatForecastDays(forecastPayload(), prefs(domain.Celsius, domain.MetersPerSecond), domain.LangEN)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Contains(t, out["01"], "Light rain")
	assert.Contains(t, out["01"], "Average air temperature: 7.5°,")
	assert.Contains(t, out["01"], "maximum: 9°,")
	assert.Contains(t, out["01"], "minimum: 4°")
	assert.Contains(t, out["01"], "Maximum wind speed: 5 m/s")
	assert.Contains(t, out["01"], "Precipitation: 1.3 mm")
	assert.Contains(t, out["01"], "Average air humidity: 80%")

	assert.True(t, strings.HasPrefix(out["02"], "Sunny\n"))
	assert.Contains(t, out["02"], "Maximum wind speed: 10 m/s")
	assert.Contains(t, out["02"], "Precipitation: not expected")

	// under one millimetre still reads as "not expected"
	assert.Contains(t, out["03"], "Precipitation: not expected")

	ru, err := FormatForecastDays(forecastPayload(), prefs(domain.Fahrenheit, domain.KmPerHour), domain.LangRU)
	require.NoError(t, err)
	assert.Contains(t, ru["02"], "Средняя температура воздуха: 46.6°,")
	assert.Contains(t, ru["02"], "Максимальная скорость ветра: 36 км/ч")
	assert.Contains(t, ru["02"], "Осадки: не ожидаются")
}

func TestFormatForecastDays_FirstEntryWins(t *testing.T) {
	p := forecastPayload()
	p.Forecast.ForecastDay = append(p.Forecast.ForecastDay, weather.ForecastDay{
		Date: "2026-04-01", Day: weather.Day{Condition: weather.Condition{Text: "snow"}},
	})
	out, err := FormatForecastDays(p, prefs(domain.Celsius, domain.MetersPerSecond), domain.LangEN)
	require.NoError(t, err)
	assert.Contains(t, out["01"], "Light rain")
}

func TestFormatProfile(t *testing.T) {
	p := prefs(domain.Celsius, domain.KmPerHour)

	en := FormatProfile(p, domain.LangEN, "")
	assert.Equal(t, "Language: EN\nLatitude: 51.5\nLongitude: -0.12\n"+
		"Temperature measurement units: °C\nUnits of wind speed measurement: km/h", en)

	p.Language = domain.LangRU
	ru := FormatProfile(p, domain.LangRU, "London, United Kingdom")
	assert.Contains(t, ru, "Язык: RU")
	assert.Contains(t, ru, "Единицы измерения скорости ветра: км/ч")
	assert.True(t, strings.HasSuffix(ru, "Место: London, United Kingdom"))

	partial := FormatProfile(domain.UserPreferences{Language: domain.LangEN}, domain.LangEN, "")
	assert.Contains(t, partial, "Latitude: not set")
}

func TestBuildSeries(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		prefs domain.UserPreferences
		want  []float64
	}{
		{name: "temperature celsius", kind: KindTemperature, prefs: prefs(domain.Celsius, domain.MetersPerSecond), want: []float64{7, 8, -2}},
		{name: "temperature fahrenheit", kind: KindTemperature, prefs: prefs(domain.Fahrenheit, domain.MetersPerSecond), want: []float64{45, 46, 27}},
		{name: "wind mps", kind: KindWind, prefs: prefs(domain.Celsius, domain.MetersPerSecond), want: []float64{5, 10, 2}},
		{name: "wind kmph", kind: KindWind, prefs: prefs(domain.Celsius, domain.KmPerHour), want: []float64{20, 36, 10}},
		{name: "precipitation", kind: KindPrecipitation, prefs: prefs(domain.Celsius, domain.MetersPerSecond), want: []float64{1, 0, 0}},
		{name: "humidity", kind: KindHumidity, prefs: prefs(domain.Celsius, domain.MetersPerSecond), want: []float64{80, 70, 65}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := BuildSeries(forecastPayload(), tt.prefs, tt.kind)
			require.NoError(t, err)
			require.Len(t, s, 3)
			for i, p := range s {
				assert.Equal(t, tt.want[i], p.Value)
			}
			assert.Equal(t, "01", s[0].Label)
		})
	}

	_, err := BuildSeries(forecastPayload(), prefs(domain.Celsius, domain.MetersPerSecond), Kind("pressure"))
	assert.Error(t, err)
}

func TestSeriesRelabel(t *testing.T) {
	s := Series{{Label: "01", Value: 1}, {Label: "02", Value: 2}}
	got := s.Relabel([]string{"28"})
	assert.Equal(t, "28", got[0].Label)
	assert.Equal(t, "02", got[1].Label)
	assert.Equal(t, "01", s[0].Label)
}

func TestPlotLabels(t *testing.T) {
	l := PlotLabels(KindWind, prefs(domain.Celsius, domain.KmPerHour), domain.LangRU)
	assert.Equal(t, Labels{Title: "График скорости ветра", XLabel: "Дни", YLabel: "Скорость ветра, км/ч"}, l)

	l = PlotLabels(KindTemperature, prefs(domain.Fahrenheit, domain.KmPerHour), domain.LangEN)
	assert.Equal(t, Labels{Title: "Temperature plot", XLabel: "Days", YLabel: "Temperature, °F"}, l)
}

func TestPlotLabels_AllKinds(t *testing.T) {
	p := prefs(domain.Celsius, domain.MetersPerSecond)

	tests := []struct {
		kind Kind
		lang domain.Language
		want Labels
	}{
		{kind: KindPrecipitation, lang: domain.LangEN, want: Labels{Title: "Precipitation plot", XLabel: "Days", YLabel: "Precipitation, mm"}},
		{kind: KindPrecipitation, lang: domain.LangRU, want: Labels{Title: "График осадков", XLabel: "Дни", YLabel: "Осадки, мм"}},
		{kind: KindHumidity, lang: domain.LangRU, want: Labels{Title: "График влажности", XLabel: "Дни", YLabel: "Влажность, %"}},
		{kind: KindTemperature, lang: domain.LangRU, want: Labels{Title: "График температуры", XLabel: "Дни", YLabel: "Температура, °C"}},
		{kind: KindWind, lang: domain.LangEN, want: Labels{Title: "Wind speed plot", XLabel: "Days", YLabel: "Wind speed, m/s"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.lang), func(t *testing.T) {
			assert.Equal(t, tt.want, PlotLabels(tt.kind, p, tt.lang))
		})
	}
}

func TestLexiconCoversBothLanguages(t *testing.T) {
	for key, entry := range lexicon {
		if _, ok := entry[Both]; ok {
			continue
		}
		assert.NotEmpty(t, entry[domain.LangEN], "missing EN text for %s", key)
		assert.NotEmpty(t, entry[domain.LangRU], "missing RU text for %s", key)
	}
}

func TestFormatCurrent_TextsComeFromLexicon(t *testing.T) {
	p := prefs(domain.Celsius, domain.MetersPerSecond)
	payload := weather.Payload{Current: &weather.Current{WindDir: "NW", PrecipMm: 0, PressureMb: 1013}}

	for _, lang := range []domain.Language{domain.LangEN, domain.LangRU} {
		out, err := FormatCurrent(payload, p, lang)
		require.NoError(t, err)
		assert.Contains(t, out, Text(LblPrecip, lang)+": "+Text(NotExpected, lang))
		assert.Contains(t, out, Text(LblPressure, lang)+": 760 "+Text(UnitMmHg, lang))
		assert.Contains(t, out, Text(LblWindDir, lang)+": "+WindDirection("NW", lang)+",")
	}
}

type fixedZone struct{ loc *time.Location }

func (f fixedZone) Location(_, _ float64) *time.Location { return f.loc }

func TestDaysGenerator(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on the 31st is already the 1st in Tokyo.
	now := func() time.Time { return time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC) }

	g := NewDaysGenerator(fixedZone{loc: tokyo}, now)
	assert.Equal(t, []string{"01", "02", "03"}, g.Labels(35.68, 139.69, 3))

	utc := NewDaysGenerator(nil, now)
	assert.Equal(t, []string{"31", "01", "02"}, utc.Labels(0, 0, 3))

	// deterministic for the same instant and coordinates
	assert.Equal(t, g.Labels(35.68, 139.69, 3), g.Labels(35.68, 139.69, 3))
}

func TestText(t *testing.T) {
	assert.Equal(t, "🔙Назад", Text(BtnBack, domain.LangRU))
	assert.Equal(t, "Русский", Text(BtnRU, domain.LangEN))
	assert.Contains(t, Text(Unknown, domain.LangRU), "I don't understand you")
	assert.Contains(t, Text(Unknown, domain.LangRU), "я вас не понимаю")
	assert.Equal(t, Text(Help, domain.LangEN), Text(Help, domain.LangUnset))
	assert.Equal(t, "nope", Text(Key("nope"), domain.LangEN))
}
