package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/lib/sl"
	"github.com/i474232898/weather-bot/internal/metrics"
)

// ErrUnexpectedInput is returned when an input does not belong to the
// user's current state. The session is left untouched.
var ErrUnexpectedInput = errors.New("input does not match dialogue state")

// Prompt tells the caller what to present after a transition.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptLanguage
	PromptLocation
	PromptTempUnit
	PromptWindUnit
	PromptCompleted
)

// Result describes an accepted transition.
type Result struct {
	Next Prompt
	// Language is the language to render the next prompt in. It is unset
	// before the language step.
	Language domain.Language
}

type coordinates struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

// Machine owns the setup dialogue. Language is written to the store as soon
// as it is chosen so that every later prompt can be localized; the remaining
// fields are written once, at the last step.
type Machine struct {
	sessions SessionRepository
	store    domain.PreferenceStore
	log      *slog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func NewMachine(sessions SessionRepository, store domain.PreferenceStore, log *slog.Logger, m *metrics.Metrics) *Machine {
	return &Machine{
		sessions: sessions,
		store:    store,
		log:      log.With(slog.String("component", "dialogue")),
		metrics:  m,
		validate: validator.New(),
	}
}

// State returns the user's current dialogue state.
func (m *Machine) State(ctx context.Context, userID int64) (State, error) {
	s, err := m.session(ctx, userID)
	if err != nil {
		return Idle, err
	}
	return s.State, nil
}

// Begin starts (or restarts) the dialogue from any state.
func (m *Machine) Begin(ctx context.Context, userID int64) (Result, error) {
	const op = "dialogue.Begin"

	prev, err := m.session(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if err := m.save(ctx, op, userID, prev.State, Session{State: AwaitingLanguage}); err != nil {
		return Result{}, err
	}
	return Result{Next: PromptLanguage}, nil
}

// SelectLanguage stashes and immediately persists the chosen language.
// A store failure aborts the dialogue.
func (m *Machine) SelectLanguage(ctx context.Context, userID int64, lang domain.Language) (Result, error) {
	const op = "dialogue.SelectLanguage"

	s, err := m.expect(ctx, userID, AwaitingLanguage)
	if err != nil {
		return Result{}, err
	}
	s.Pending.Language = &lang

	if err := m.store.UpsertLanguage(ctx, userID, lang); err != nil {
		m.abort(ctx, op, userID, err)
		return Result{Language: lang}, err
	}

	s.State = AwaitingLocation
	if err := m.save(ctx, op, userID, AwaitingLanguage, s); err != nil {
		return Result{Language: lang}, err
	}
	return Result{Next: PromptLocation, Language: lang}, nil
}

// ShareLocation stashes the coordinates.
func (m *Machine) ShareLocation(ctx context.Context, userID int64, lat, lon float64) (Result, error) {
	const op = "dialogue.ShareLocation"

	s, err := m.expect(ctx, userID, AwaitingLocation)
	if err != nil {
		return Result{}, err
	}
	if err := m.validate.Struct(coordinates{Lat: lat, Lon: lon}); err != nil {
		return Result{}, fmt.Errorf("%s: %w: %v", op, ErrUnexpectedInput, err)
	}
	s.Pending.Latitude = &lat
	s.Pending.Longitude = &lon
	s.State = AwaitingTempUnit

	if err := m.save(ctx, op, userID, AwaitingLocation, s); err != nil {
		return Result{}, err
	}
	return Result{Next: PromptTempUnit, Language: s.language()}, nil
}

// SelectTempUnit stashes the temperature unit.
func (m *Machine) SelectTempUnit(ctx context.Context, userID int64, unit domain.TempUnit) (Result, error) {
	const op = "dialogue.SelectTempUnit"

	s, err := m.expect(ctx, userID, AwaitingTempUnit)
	if err != nil {
		return Result{}, err
	}
	s.Pending.TempUnit = &unit
	s.State = AwaitingWindUnit

	if err := m.save(ctx, op, userID, AwaitingTempUnit, s); err != nil {
		return Result{}, err
	}
	return Result{Next: PromptWindUnit, Language: s.language()}, nil
}

// SelectWindUnit stashes the wind unit and flushes the accumulator to the
// store. The session is cleared whatever the outcome; on failure the caller
// gets the error and no completion prompt.
func (m *Machine) SelectWindUnit(ctx context.Context, userID int64, unit domain.WindUnit) (Result, error) {
	const op = "dialogue.SelectWindUnit"

	s, err := m.expect(ctx, userID, AwaitingWindUnit)
	if err != nil {
		return Result{}, err
	}
	s.Pending.WindUnit = &unit
	lang := s.language()

	writeErr := m.store.UpdateSettings(ctx, userID, s.Pending.Settings())
	if writeErr != nil {
		m.abort(ctx, op, userID, writeErr)
		return Result{Language: lang}, writeErr
	}

	if err := m.sessions.Clear(ctx, userID); err != nil {
		// Settings are already durable; a stale session only costs a restart.
		m.log.Warn("failed to clear finished session", sl.UserID(userID), slog.String("op", op), sl.Err(err))
	}
	m.metrics.Transition(AwaitingWindUnit.String(), Idle.String())
	return Result{Next: PromptCompleted, Language: lang}, nil
}

func (m *Machine) session(ctx context.Context, userID int64) (Session, error) {
	const op = "dialogue.session"
	s, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return Session{}, domain.StoreError(op, err)
	}
	return s, nil
}

func (m *Machine) expect(ctx context.Context, userID int64, want State) (Session, error) {
	s, err := m.session(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if s.State != want {
		return Session{}, fmt.Errorf("%w: in %s, want %s", ErrUnexpectedInput, s.State, want)
	}
	return s, nil
}

func (m *Machine) save(ctx context.Context, op string, userID int64, from State, s Session) error {
	if err := m.sessions.Set(ctx, userID, s); err != nil {
		return domain.StoreError(op, err)
	}
	m.metrics.Transition(from.String(), s.State.String())
	return nil
}

// abort clears the session after a failed store write. The write error
// itself is returned to the caller, which logs it.
func (m *Machine) abort(ctx context.Context, op string, userID int64, cause error) {
	m.log.Debug("dialogue aborted", sl.UserID(userID), slog.String("op", op), sl.Err(cause))
	if err := m.sessions.Clear(ctx, userID); err != nil {
		m.log.Warn("failed to clear aborted session", sl.UserID(userID), slog.String("op", op), sl.Err(err))
	}
}

func (s Session) language() domain.Language {
	if s.Pending.Language == nil {
		return domain.LangUnset
	}
	return *s.Pending.Language
}
