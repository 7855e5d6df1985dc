// Package domain holds the types shared by the dialogue, the preference
// store and the presentation layer.
package domain

import (
	"context"
	"fmt"
)

// Language is the user's interface language.
type Language string

const (
	LangUnset Language = ""
	LangRU    Language = "RU"
	LangEN    Language = "EN"
)

// ParseLanguage accepts only the two supported codes.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangRU, LangEN:
		return Language(s), nil
	default:
		return LangUnset, fmt.Errorf("unsupported language %q", s)
	}
}

// ProviderHint is the response-language hint sent to the forecast provider.
func (l Language) ProviderHint() string {
	if l == LangRU {
		return "ru"
	}
	return "en"
}

// TempUnit is the preferred temperature unit.
type TempUnit string

const (
	Celsius    TempUnit = "celsius"
	Fahrenheit TempUnit = "fahrenheit"
)

// ParseTempUnit accepts celsius or fahrenheit.
func ParseTempUnit(s string) (TempUnit, error) {
	switch TempUnit(s) {
	case Celsius, Fahrenheit:
		return TempUnit(s), nil
	default:
		return "", fmt.Errorf("unsupported temperature unit %q", s)
	}
}

// WindUnit is the preferred wind speed unit.
type WindUnit string

const (
	MetersPerSecond WindUnit = "mps"
	KmPerHour       WindUnit = "kmph"
)

// ParseWindUnit accepts mps or kmph.
func ParseWindUnit(s string) (WindUnit, error) {
	switch WindUnit(s) {
	case MetersPerSecond, KmPerHour:
		return WindUnit(s), nil
	default:
		return "", fmt.Errorf("unsupported wind unit %q", s)
	}
}

// UserPreferences is the durable per-user settings record. Every field
// except UserID stays nil until its setup step has completed.
type UserPreferences struct {
	UserID    int64     `json:"user_id"`
	Language  Language  `json:"language,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	TempUnit  *TempUnit `json:"temp_unit,omitempty"`
	WindUnit  *WindUnit `json:"wind_unit,omitempty"`
}

// Complete reports whether all settings needed to query weather are present.
func (p UserPreferences) Complete() bool {
	return p.Latitude != nil && p.Longitude != nil && p.TempUnit != nil && p.WindUnit != nil
}

// Settings is a partial update of the non-language fields. Nil fields are
// left untouched.
type Settings struct {
	Latitude  *float64
	Longitude *float64
	TempUnit  *TempUnit
	WindUnit  *WindUnit
}

// PreferenceStore is typed access to one user's stored preferences.
// Every failure wraps ErrStore.
type PreferenceStore interface {
	UpsertLanguage(ctx context.Context, userID int64, lang Language) error
	GetPreferences(ctx context.Context, userID int64) (UserPreferences, error)
	UpdateSettings(ctx context.Context, userID int64, s Settings) error
	GetLanguage(ctx context.Context, userID int64) (Language, error)
}
