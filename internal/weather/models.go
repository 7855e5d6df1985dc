// Package weather defines the forecast provider contract and the decoded
// provider payload.
package weather

// Mode selects the provider endpoint.
type Mode string

const (
	ModeCurrent  Mode = "current"
	ModeForecast Mode = "forecast"
)

// ForecastDays is the number of days requested in forecast mode.
const ForecastDays = 3

// Condition is the provider's localized condition description.
type Condition struct {
	Text string `json:"text"`
}

// Current holds the observation returned in current mode.
type Current struct {
	TempC      float64   `json:"temp_c"`
	TempF      float64   `json:"temp_f"`
	FeelsLikeC float64   `json:"feelslike_c"`
	FeelsLikeF float64   `json:"feelslike_f"`
	WindKph    float64   `json:"wind_kph"`
	WindDir    string    `json:"wind_dir"`
	PressureMb float64   `json:"pressure_mb"`
	PrecipMm   float64   `json:"precip_mm"`
	Humidity   float64   `json:"humidity"`
	Cloud      float64   `json:"cloud"`
	Condition  Condition `json:"condition"`
}

// Day is the daily aggregate of one forecast day.
type Day struct {
	MaxTempC      float64   `json:"maxtemp_c"`
	MaxTempF      float64   `json:"maxtemp_f"`
	MinTempC      float64   `json:"mintemp_c"`
	MinTempF      float64   `json:"mintemp_f"`
	AvgTempC      float64   `json:"avgtemp_c"`
	AvgTempF      float64   `json:"avgtemp_f"`
	MaxWindKph    float64   `json:"maxwind_kph"`
	TotalPrecipMm float64   `json:"totalprecip_mm"`
	AvgHumidity   float64   `json:"avghumidity"`
	Condition     Condition `json:"condition"`
}

// ForecastDay is one entry of the forecast; Date is YYYY-MM-DD in the
// location's local time.
type ForecastDay struct {
	Date string `json:"date"`
	Day  Day    `json:"day"`
}

type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// APIError is the provider's in-band error object.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Payload is a decoded provider response. Current is set in current mode,
// Forecast in forecast mode. It is consumed once by the formatter.
type Payload struct {
	Current  *Current  `json:"current,omitempty"`
	Forecast *Forecast `json:"forecast,omitempty"`
	Error    *APIError `json:"error,omitempty"`
}

// Days returns the forecast entries in provider order.
func (p Payload) Days() []ForecastDay {
	if p.Forecast == nil {
		return nil
	}
	return p.Forecast.ForecastDay
}
