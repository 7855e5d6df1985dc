package dispatcher

import (
	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/format"
)

// Callback payloads.
const (
	DataRU            = "RU"
	DataEN            = "EN"
	DataCelsius       = "celsius"
	DataFahrenheit    = "fahrenheit"
	DataMps           = "mps"
	DataKmph          = "kmph"
	DataForecastToday = "forecast_today"
	DataForecastWeek  = "forecast_week"
	DataBackToDays    = "back_ds"
	DataPlots         = "plots"
	DataBackToPlots   = "back_pl"
	DataTemp          = "temp"
	DataWind          = "wind"
	DataPrecip        = "precip"
	DataHumid         = "humid"
)

func inline(rows ...[]Button) *Keyboard {
	return &Keyboard{Rows: rows}
}

func languageKeyboard() *Keyboard {
	return inline([]Button{
		{Text: format.Text(format.BtnRU, format.Both), Data: DataRU},
		{Text: format.Text(format.BtnEN, format.Both), Data: DataEN},
	})
}

func locationKeyboard(lang domain.Language) *Keyboard {
	return &Keyboard{
		Reply: true,
		Rows: [][]Button{{
			{Text: format.Text(format.BtnGetLocation, lang), RequestLocation: true},
		}},
	}
}

func tempKeyboard() *Keyboard {
	return inline([]Button{
		{Text: format.Text(format.BtnCelsius, format.Both), Data: DataCelsius},
		{Text: format.Text(format.BtnFahrenheit, format.Both), Data: DataFahrenheit},
	})
}

func windKeyboard(lang domain.Language) *Keyboard {
	return inline([]Button{
		{Text: format.Text(format.BtnMps, lang), Data: DataMps},
		{Text: format.Text(format.BtnKmph, lang), Data: DataKmph},
	})
}

func removeKeyboard() *Keyboard {
	return &Keyboard{Remove: true}
}

func weatherKeyboard(lang domain.Language) *Keyboard {
	return inline(
		[]Button{{Text: format.Text(format.BtnToday, lang), Data: DataForecastToday}},
		[]Button{{Text: format.Text(format.BtnWeek, lang), Data: DataForecastWeek}},
	)
}

// daysKeyboard has one button per day label, then the plots entry.
func daysKeyboard(labels []string, lang domain.Language) *Keyboard {
	days := make([]Button, 0, len(labels))
	for _, l := range labels {
		days = append(days, Button{Text: l, Data: l})
	}
	return inline(
		days,
		[]Button{{Text: format.Text(format.BtnPlots, lang), Data: DataPlots}},
	)
}

func plotsKeyboard(lang domain.Language) *Keyboard {
	return inline(
		[]Button{
			{Text: format.Text(format.BtnTemp, lang), Data: DataTemp},
			{Text: format.Text(format.BtnWind, lang), Data: DataWind},
		},
		[]Button{
			{Text: format.Text(format.BtnPrecip, lang), Data: DataPrecip},
			{Text: format.Text(format.BtnHumid, lang), Data: DataHumid},
		},
		[]Button{{Text: format.Text(format.BtnBack, lang), Data: DataBackToDays}},
	)
}

func backKeyboard(lang domain.Language, data string) *Keyboard {
	return inline([]Button{{Text: format.Text(format.BtnBack, lang), Data: data}})
}
