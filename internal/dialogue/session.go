// Package dialogue implements the linear setup conversation
// (language, location, temperature unit, wind unit) and its per-user session.
package dialogue

import (
	"context"

	"github.com/i474232898/weather-bot/internal/domain"
)

// State is the position of a user in the setup dialogue. The dialogue is
// strictly linear, so a single ordinal is enough.
type State int

const (
	Idle State = iota
	AwaitingLanguage
	AwaitingLocation
	AwaitingTempUnit
	AwaitingWindUnit
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingLanguage:
		return "awaiting_language"
	case AwaitingLocation:
		return "awaiting_location"
	case AwaitingTempUnit:
		return "awaiting_temp_unit"
	case AwaitingWindUnit:
		return "awaiting_wind_unit"
	default:
		return "unknown"
	}
}

// Pending accumulates the answers collected during the current run-through.
type Pending struct {
	Language  *domain.Language `json:"language,omitempty"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
	TempUnit  *domain.TempUnit `json:"temp_unit,omitempty"`
	WindUnit  *domain.WindUnit `json:"wind_unit,omitempty"`
}

// Fields lists the names of the collected fields in dialogue order.
func (p Pending) Fields() []string {
	var out []string
	if p.Language != nil {
		out = append(out, "language")
	}
	if p.Latitude != nil {
		out = append(out, "latitude")
	}
	if p.Longitude != nil {
		out = append(out, "longitude")
	}
	if p.TempUnit != nil {
		out = append(out, "temp_unit")
	}
	if p.WindUnit != nil {
		out = append(out, "wind_unit")
	}
	return out
}

// Settings converts the accumulator into the store's partial update.
func (p Pending) Settings() domain.Settings {
	return domain.Settings{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		TempUnit:  p.TempUnit,
		WindUnit:  p.WindUnit,
	}
}

// Session is the ephemeral dialogue state of one user. The zero value is an
// idle session with an empty accumulator.
type Session struct {
	State   State   `json:"state"`
	Pending Pending `json:"pending"`
}

// SessionRepository stores sessions keyed by user id. Get on an unknown user
// returns the zero Session. Losing a session is tolerated: the user only has
// to restart the dialogue.
type SessionRepository interface {
	Get(ctx context.Context, userID int64) (Session, error)
	Set(ctx context.Context, userID int64, s Session) error
	Clear(ctx context.Context, userID int64) error
}
