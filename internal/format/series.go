package format

import (
	"fmt"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/weather"
)

// Kind selects the quantity plotted in a chart.
type Kind string

const (
	KindTemperature   Kind = "temp"
	KindWind          Kind = "wind"
	KindPrecipitation Kind = "precip"
	KindHumidity      Kind = "humid"
)

// ParseKind accepts the four chart kinds.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindTemperature, KindWind, KindPrecipitation, KindHumidity:
		return k, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", s)
	}
}

// Point is one (label, value) pair of a series.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered sequence of daily values.
type Series []Point

// Labels holds the localized texts of a chart.
type Labels struct {
	Title  string
	XLabel string
	YLabel string
}

// BuildSeries extracts one daily value per forecast day, converted the same
// way as the text blocks and truncated to whole numbers. Points are labelled
// with DayKey of the provider date.
func BuildSeries(p weather.Payload, prefs domain.UserPreferences, kind Kind) (Series, error) {
	if p.Forecast == nil {
		return nil, errNoForecast
	}

	out := make(Series, 0, len(p.Days()))
	for _, fd := range p.Days() {
		var v int
		d := fd.Day
		switch kind {
		case KindTemperature:
			if tempUnit(prefs) == domain.Fahrenheit {
				v = int(d.AvgTempF)
			} else {
				v = int(d.AvgTempC)
			}
		case KindWind:
			if windUnit(prefs) == domain.KmPerHour {
				v = int(d.MaxWindKph)
			} else {
				v = KphToMps(d.MaxWindKph)
			}
		case KindPrecipitation:
			v = int(d.TotalPrecipMm)
		case KindHumidity:
			v = int(d.AvgHumidity)
		default:
			return nil, fmt.Errorf("unknown chart kind %q", kind)
		}
		out = append(out, Point{Label: DayKey(fd.Date), Value: float64(v)})
	}
	return out, nil
}

// Relabel replaces the point labels. Extra labels are ignored; missing ones
// leave the original label in place.
func (s Series) Relabel(labels []string) Series {
	out := make(Series, len(s))
	copy(out, s)
	for i := range out {
		if i < len(labels) {
			out[i].Label = labels[i]
		}
	}
	return out
}

var plotTexts = map[Kind]struct{ title, axis Key }{
	KindTemperature:   {PlotTempTitle, AxisTemp},
	KindWind:          {PlotWindTitle, AxisWind},
	KindPrecipitation: {PlotPrecTitle, AxisPrecip},
	KindHumidity:      {PlotHumidTitle, AxisHumidity},
}

// PlotLabels returns the localized title and axis texts for a chart.
func PlotLabels(kind Kind, prefs domain.UserPreferences, lang domain.Language) Labels {
	l := Labels{XLabel: Text(PlotDays, lang)}

	t, ok := plotTexts[kind]
	if !ok {
		return l
	}
	var unit string
	switch kind {
	case KindTemperature:
		unit = TempUnitLabel(tempUnit(prefs), lang)
	case KindWind:
		unit = WindUnitLabel(windUnit(prefs), lang)
	case KindPrecipitation:
		unit = Text(UnitMm, lang)
	case KindHumidity:
		unit = "%"
	}
	l.Title = Text(t.title, lang)
	l.YLabel = Text(t.axis, lang) + ", " + unit
	return l
}
