// Package format turns provider payloads and stored preferences into the
// localized texts, chart series and labels shown to the user. Everything in
// it is pure.
package format

import "github.com/i474232898/weather-bot/internal/domain"

// Both marks texts shown in both languages at once, before the user has
// picked one or when the language cannot be read.
const Both domain.Language = "*"

// Key identifies a lexicon entry.
type Key string

const (
	Start             Key = "start"
	SettingsIntro     Key = "settings"
	Unknown           Key = "unknown"
	DataError         Key = "data_error"
	Help              Key = "help"
	WeatherMenu       Key = "weather_menu"
	LangSuccess       Key = "lang_success"
	LocSuccess        Key = "loc_success"
	TempSuccess       Key = "temp_success"
	SettingsCompleted Key = "settings_completed"
	WeatherToday      Key = "weather_today"
	WeatherWeek       Key = "weather_week"
	PlotsMenu         Key = "plots_menu"
	YourProfile       Key = "your_profile"
	ProviderFailure   Key = "provider_failure"

	BtnRU          Key = "btn_ru"
	BtnEN          Key = "btn_en"
	BtnGetLocation Key = "btn_get_location"
	BtnCelsius     Key = "btn_celsius"
	BtnFahrenheit  Key = "btn_fahrenheit"
	BtnMps         Key = "btn_mps"
	BtnKmph        Key = "btn_kmph"
	BtnToday       Key = "btn_today"
	BtnWeek        Key = "btn_week"
	BtnPlots       Key = "btn_plots"
	BtnTemp        Key = "btn_temp"
	BtnWind        Key = "btn_wind"
	BtnPrecip      Key = "btn_precip"
	BtnHumid       Key = "btn_humid"
	BtnBack        Key = "btn_back"

	CmdWeather  Key = "cmd_weather"
	CmdProfile  Key = "cmd_profile"
	CmdSettings Key = "cmd_settings"

	// Labels of the weather and profile blocks.
	LblAirTemp     Key = "lbl_air_temp"
	LblFeelsLike   Key = "lbl_feels_like"
	LblWindDir     Key = "lbl_wind_dir"
	LblWindSpeed   Key = "lbl_wind_speed"
	LblPressure    Key = "lbl_pressure"
	LblPrecip      Key = "lbl_precip"
	LblHumidity    Key = "lbl_humidity"
	LblCloud       Key = "lbl_cloud"
	LblAvgTemp     Key = "lbl_avg_temp"
	LblMaxTemp     Key = "lbl_max_temp"
	LblMinTemp     Key = "lbl_min_temp"
	LblMaxWind     Key = "lbl_max_wind"
	LblAvgHumidity Key = "lbl_avg_humidity"
	LblLanguage    Key = "lbl_language"
	LblLatitude    Key = "lbl_latitude"
	LblLongitude   Key = "lbl_longitude"
	LblTempUnits   Key = "lbl_temp_units"
	LblWindUnits   Key = "lbl_wind_units"
	LblPlace       Key = "lbl_place"
	NotSet         Key = "not_set"
	NotExpected    Key = "not_expected"
	UnitMm         Key = "unit_mm"
	UnitMmHg       Key = "unit_mmhg"

	// Chart titles and axes.
	PlotDays       Key = "plot_days"
	PlotTempTitle  Key = "plot_temp_title"
	PlotWindTitle  Key = "plot_wind_title"
	PlotPrecTitle  Key = "plot_precip_title"
	PlotHumidTitle Key = "plot_humid_title"
	AxisTemp       Key = "axis_temp"
	AxisWind       Key = "axis_wind"
	AxisPrecip     Key = "axis_precip"
	AxisHumidity   Key = "axis_humidity"
)

var lexicon = map[Key]map[domain.Language]string{
	Start: {Both: "<b>Hi!</b>😃\nI can show weather forecasts✨\nTo continue you need to set your language\n\n" +
		"<b>Привет!</b>😃\nЯ умею показывать прогноз погоды✨\nДля продолжения тебе нужно установить свой язык"},
	SettingsIntro: {Both: "First of all, you need to set your language\nДля начала установим язык"},
	Unknown: {Both: "Sorry, unfortunately, I don't understand you.\n" +
		"If you are setting up a bot, then follow the commands.\nIf not, then use /help\n\n" +
		"Извините, к сожалению, я вас не понимаю.\n" +
		"Если вы настраиваете бота, то следуйте командам.\nЕсли нет, то используйте /help"},
	DataError: {Both: "<b>An error has occurred!</b>😢\n" +
		"There is a problem with the database. You can try to fix it if you are not at the stage of configuration of the bot by going through the setup procedure /settings.\n" +
		"If that did not help, then try again later\n\n" +
		"<b>Произошла ошибка!</b>😢\n" +
		"Возникла проблема с базой данных. Если вы не находитесь на стадии настройки бота, то вы можете попробовать пройти процедуру настройки /settings.\n" +
		"Если это не помогло, то повторите попытку позже"},

	Help: {
		domain.LangEN: "To find out the weather forecast or configure the bot, open the menu😉",
		domain.LangRU: "Для того, чтобы узнать прогноз погоды или настроить бота под себя, откройте меню😉",
	},
	WeatherMenu: {
		domain.LangEN: "⛅<b>Weather forecast</b>⛅\n\nChoose the desired option",
		domain.LangRU: "⛅<b>Прогноз погоды</b>⛅\n\nВыберите нужный вариант",
	},
	LangSuccess: {
		domain.LangEN: "✅The language is set.\nNow let's set the location🌍",
		domain.LangRU: "✅Язык установлен.\nТеперь установим местоположение🌍",
	},
	LocSuccess: {
		domain.LangEN: "✅The location is set\n\nNow choose the temperature measurement units",
		domain.LangRU: "✅Местоположение установлено\n\nТеперь выбери единицы измерения температуры",
	},
	TempSuccess: {
		domain.LangEN: "✅The temperature measurement units are set\n\nTo complete the setup, it remains to choose the units of wind speed measurement",
		domain.LangRU: "✅Единицы измерения температуры установлены\n\nДля завершения настройки осталось выбрать единицы измерения скорости ветра",
	},
	SettingsCompleted: {
		domain.LangEN: "🏁The bot setup is complete!\n\nNow you can open the menu and get the weather forecast",
		domain.LangRU: "🏁Настройка бота завершена!\n\nТеперь вы можете открыть меню и получить прогноз погоды",
	},
	WeatherToday: {
		domain.LangEN: "<b>Here is the weather at the moment:</b>\n\n",
		domain.LangRU: "<b>Вот погода на данный момент:</b>\n\n",
	},
	WeatherWeek: {
		domain.LangEN: "<b>Choose the desired day:</b>",
		domain.LangRU: "<b>Выберите нужный день:</b>",
	},
	PlotsMenu: {
		domain.LangEN: "<b>Choose the desired plot:</b>",
		domain.LangRU: "<b>Выберите нужный график:</b>",
	},
	YourProfile: {
		domain.LangEN: "Here are your current settings:",
		domain.LangRU: "Вот ваши текущие настройки:",
	},
	ProviderFailure: {
		domain.LangEN: "Something went wrong.😢\nTry again later",
		domain.LangRU: "Что-то пошло не так.😢\nПовторите попытку позже",
	},

	BtnRU: {Both: "Русский"},
	BtnEN: {Both: "English"},
	BtnGetLocation: {
		domain.LangEN: "Set location",
		domain.LangRU: "Установить местоположение",
	},
	BtnCelsius:    {Both: "°C"},
	BtnFahrenheit: {Both: "°F"},
	BtnMps: {
		domain.LangEN: "m/s",
		domain.LangRU: "м/с",
	},
	BtnKmph: {
		domain.LangEN: "km/h",
		domain.LangRU: "км/ч",
	},
	BtnToday: {
		domain.LangEN: "Weather forecast for today",
		domain.LangRU: "Прогноз погоды на сегодня",
	},
	BtnWeek: {
		domain.LangEN: "Weather forecast for the following days",
		domain.LangRU: "Прогноз погоды на следующие дни",
	},
	BtnPlots: {
		domain.LangEN: "Weather plots",
		domain.LangRU: "Графики погоды",
	},
	BtnTemp: {
		domain.LangEN: "Temperature plot",
		domain.LangRU: "График температуры",
	},
	BtnWind: {
		domain.LangEN: "Wind plot",
		domain.LangRU: "График ветра",
	},
	BtnPrecip: {
		domain.LangEN: "Precipitation plot",
		domain.LangRU: "График осадков",
	},
	BtnHumid: {
		domain.LangEN: "Humidity plot",
		domain.LangRU: "График влажности",
	},
	BtnBack: {
		domain.LangEN: "🔙Back",
		domain.LangRU: "🔙Назад",
	},

	CmdWeather:  {Both: "Weather forecast / Прогноз погоды"},
	CmdProfile:  {Both: "Config / Конфигурация"},
	CmdSettings: {Both: "Settings / Настройки"},

	LblAirTemp:     {domain.LangEN: "Air temperature", domain.LangRU: "Температура воздуха"},
	LblFeelsLike:   {domain.LangEN: "feels like", domain.LangRU: "ощущается как"},
	LblWindDir:     {domain.LangEN: "Wind direction", domain.LangRU: "Направление ветра"},
	LblWindSpeed:   {domain.LangEN: "wind speed", domain.LangRU: "скорость ветра"},
	LblPressure:    {domain.LangEN: "Air pressure", domain.LangRU: "Давление воздуха"},
	LblPrecip:      {domain.LangEN: "Precipitation", domain.LangRU: "Осадки"},
	LblHumidity:    {domain.LangEN: "Humidity", domain.LangRU: "Влажность"},
	LblCloud:       {domain.LangEN: "Cloud cover", domain.LangRU: "Облачность"},
	LblAvgTemp:     {domain.LangEN: "Average air temperature", domain.LangRU: "Средняя температура воздуха"},
	LblMaxTemp:     {domain.LangEN: "maximum", domain.LangRU: "максимальная"},
	LblMinTemp:     {domain.LangEN: "minimum", domain.LangRU: "минимальная"},
	LblMaxWind:     {domain.LangEN: "Maximum wind speed", domain.LangRU: "Максимальная скорость ветра"},
	LblAvgHumidity: {domain.LangEN: "Average air humidity", domain.LangRU: "Средняя влажность воздуха"},
	LblLanguage:    {domain.LangEN: "Language", domain.LangRU: "Язык"},
	LblLatitude:    {domain.LangEN: "Latitude", domain.LangRU: "Широта"},
	LblLongitude:   {domain.LangEN: "Longitude", domain.LangRU: "Долгота"},
	LblTempUnits:   {domain.LangEN: "Temperature measurement units", domain.LangRU: "Единицы измерения температуры"},
	LblWindUnits:   {domain.LangEN: "Units of wind speed measurement", domain.LangRU: "Единицы измерения скорости ветра"},
	LblPlace:       {domain.LangEN: "Place", domain.LangRU: "Место"},
	NotSet:         {domain.LangEN: "not set", domain.LangRU: "не задано"},
	NotExpected:    {domain.LangEN: "not expected", domain.LangRU: "не ожидаются"},
	UnitMm:         {domain.LangEN: "mm", domain.LangRU: "мм"},
	UnitMmHg:       {domain.LangEN: "mmHg", domain.LangRU: "мм рт.ст."},

	PlotDays:       {domain.LangEN: "Days", domain.LangRU: "Дни"},
	PlotTempTitle:  {domain.LangEN: "Temperature plot", domain.LangRU: "График температуры"},
	PlotWindTitle:  {domain.LangEN: "Wind speed plot", domain.LangRU: "График скорости ветра"},
	PlotPrecTitle:  {domain.LangEN: "Precipitation plot", domain.LangRU: "График осадков"},
	PlotHumidTitle: {domain.LangEN: "Humidity plot", domain.LangRU: "График влажности"},
	AxisTemp:       {domain.LangEN: "Temperature", domain.LangRU: "Температура"},
	AxisWind:       {domain.LangEN: "Wind speed", domain.LangRU: "Скорость ветра"},
	AxisPrecip:     {domain.LangEN: "Precipitation", domain.LangRU: "Осадки"},
	AxisHumidity:   {domain.LangEN: "Humidity", domain.LangRU: "Влажность"},
}

// Text returns the entry for lang, falling back to the bilingual text, then
// to English. Unknown keys render as the key itself.
func Text(key Key, lang domain.Language) string {
	entry, ok := lexicon[key]
	if !ok {
		return string(key)
	}
	if s, ok := entry[lang]; ok {
		return s
	}
	if s, ok := entry[Both]; ok {
		return s
	}
	if s, ok := entry[domain.LangEN]; ok {
		return s
	}
	return string(key)
}

// TempUnitLabel is the display label of a temperature unit.
func TempUnitLabel(u domain.TempUnit, lang domain.Language) string {
	if u == domain.Fahrenheit {
		return Text(BtnFahrenheit, lang)
	}
	return Text(BtnCelsius, lang)
}

// WindUnitLabel is the display label of a wind unit.
func WindUnitLabel(u domain.WindUnit, lang domain.Language) string {
	if u == domain.KmPerHour {
		return Text(BtnKmph, lang)
	}
	return Text(BtnMps, lang)
}
