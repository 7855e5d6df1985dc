package format

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-bot/internal/domain"
)

// windDirs translates the 16-point compass codes. Languages without a table
// keep the provider's codes.
var windDirs = map[domain.Language]map[string]string{
	domain.LangRU: windDirRU,
}

var windDirRU = map[string]string{
	"N":   "С",
	"NNE": "ССВ",
	"NE":  "СВ",
	"ENE": "ВСВ",
	"E":   "В",
	"ESE": "ВЮВ",
	"SE":  "ЮВ",
	"SSE": "ЮЮВ",
	"S":   "Ю",
	"SSW": "ЮЮЗ",
	"SW":  "ЮЗ",
	"WSW": "ЗЮЗ",
	"W":   "З",
	"WNW": "ЗСЗ",
	"NW":  "СЗ",
	"NNW": "ССЗ",
}

var caseTags = map[domain.Language]language.Tag{
	domain.LangEN: language.English,
	domain.LangRU: language.Russian,
}

// KphToMps truncates the speed to whole km/h, divides by 3.6 and truncates
// again. Integer arithmetic keeps 36 km/h at exactly 10 m/s.
func KphToMps(kph float64) int {
	return int(kph) * 10 / 36
}

// MbToMmHg converts whole millibars to rounded millimetres of mercury.
func MbToMmHg(mb float64) int {
	return int(math.Round(float64(int(mb)) * 0.750064))
}

// WindDirection translates the 16-point compass code where a table exists;
// other languages and unknown codes pass through.
func WindDirection(dir string, lang domain.Language) string {
	if t, ok := windDirs[lang][dir]; ok {
		return t
	}
	return dir
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string, lang domain.Language) string {
	if s == "" {
		return s
	}
	tag, ok := caseTags[lang]
	if !ok {
		tag = language.English
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(tag).String(string(r)) + cases.Lower(tag).String(s[size:])
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func windSpeed(kph float64, unit domain.WindUnit, lang domain.Language) string {
	if unit == domain.KmPerHour {
		return num(kph) + " " + Text(BtnKmph, lang)
	}
	return strconv.Itoa(KphToMps(kph)) + " " + Text(BtnMps, lang)
}

// precipitation renders amounts under 1 mm as "not expected".
func precipitation(mm float64, lang domain.Language) string {
	if int(mm) == 0 {
		return Text(NotExpected, lang)
	}
	return num(mm) + " " + Text(UnitMm, lang)
}

func tempUnit(p domain.UserPreferences) domain.TempUnit {
	if p.TempUnit == nil {
		return domain.Celsius
	}
	return *p.TempUnit
}

func windUnit(p domain.UserPreferences) domain.WindUnit {
	if p.WindUnit == nil {
		return domain.MetersPerSecond
	}
	return *p.WindUnit
}

// line renders "Label: value" with the label taken from the lexicon.
func line(key Key, lang domain.Language, value string) string {
	return Text(key, lang) + ": " + value
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
