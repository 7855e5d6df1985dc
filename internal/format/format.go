package format

import (
	"errors"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/weather"
)

var (
	errNoCurrent  = errors.New("payload has no current block")
	errNoForecast = errors.New("payload has no forecast block")
)

// FormatCurrent renders the current-mode observation.
func FormatCurrent(p weather.Payload, prefs domain.UserPreferences, lang domain.Language) (string, error) {
	c := p.Current
	if c == nil {
		return "", errNoCurrent
	}

	temp, feels := c.TempC, c.FeelsLikeC
	if tempUnit(prefs) == domain.Fahrenheit {
		temp, feels = c.TempF, c.FeelsLikeF
	}
	wind := windSpeed(c.WindKph, windUnit(prefs), lang)
	dir := WindDirection(c.WindDir, lang)
	pressure := num(float64(MbToMmHg(c.PressureMb)))
	precip := precipitation(c.PrecipMm, lang)
	cond := Capitalize(c.Condition.Text, lang)

	return lines(
		cond,
		"",
		line(LblAirTemp, lang, num(temp)+"°,"),
		line(LblFeelsLike, lang, num(feels)+"°"),
		"",
		line(LblWindDir, lang, dir+","),
		line(LblWindSpeed, lang, wind),
		"",
		line(LblPressure, lang, pressure+" "+Text(UnitMmHg, lang)),
		"",
		line(LblPrecip, lang, precip),
		"",
		line(LblHumidity, lang, num(c.Humidity)+"%"),
		"",
		line(LblCloud, lang, num(c.Cloud)+"%"),
	), nil
}

// DayKey is the two-digit day of month taken from a YYYY-MM-DD date.
func DayKey(date string) string {
	if len(date) < 2 {
		return date
	}
	return date[len(date)-2:]
}

// FormatForecastDays renders one block per forecast day, keyed by DayKey.
// If two entries share a key the first one wins.
func FormatForecastDays(p weather.Payload, prefs domain.UserPreferences, lang domain.Language) (map[string]string, error) {
	if p.Forecast == nil {
		return nil, errNoForecast
	}

	out := make(map[string]string, len(p.Days()))
	for _, fd := range p.Days() {
		key := DayKey(fd.Date)
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = formatDay(fd.Day, prefs, lang)
	}
	return out, nil
}

func formatDay(d weather.Day, prefs domain.UserPreferences, lang domain.Language) string {
	avg, maxT, minT := d.AvgTempC, d.MaxTempC, d.MinTempC
	if tempUnit(prefs) == domain.Fahrenheit {
		avg, maxT, minT = d.AvgTempF, d.MaxTempF, d.MinTempF
	}
	wind := windSpeed(d.MaxWindKph, windUnit(prefs), lang)
	precip := precipitation(d.TotalPrecipMm, lang)
	cond := Capitalize(d.Condition.Text, lang)

	return lines(
		cond,
		"",
		line(LblAvgTemp, lang, num(avg)+"°,"),
		line(LblMaxTemp, lang, num(maxT)+"°,"),
		line(LblMinTemp, lang, num(minT)+"°"),
		"",
		line(LblMaxWind, lang, wind),
		"",
		line(LblPrecip, lang, precip),
		"",
		line(LblAvgHumidity, lang, num(d.AvgHumidity)+"%"),
	)
}

// FormatProfile renders the stored settings. place is optional.
func FormatProfile(prefs domain.UserPreferences, lang domain.Language, place string) string {
	notSet := Text(NotSet, lang)
	coord := func(v *float64) string {
		if v == nil {
			return notSet
		}
		return num(*v)
	}
	tempLabel, windLabel := notSet, notSet
	if prefs.TempUnit != nil {
		tempLabel = TempUnitLabel(*prefs.TempUnit, lang)
	}
	if prefs.WindUnit != nil {
		windLabel = WindUnitLabel(*prefs.WindUnit, lang)
	}

	out := lines(
		line(LblLanguage, lang, string(prefs.Language)),
		line(LblLatitude, lang, coord(prefs.Latitude)),
		line(LblLongitude, lang, coord(prefs.Longitude)),
		line(LblTempUnits, lang, tempLabel),
		line(LblWindUnits, lang, windLabel),
	)
	if place != "" {
		out += "\n" + line(LblPlace, lang, place)
	}
	return out
}
