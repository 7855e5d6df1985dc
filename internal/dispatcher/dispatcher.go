package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/i474232898/weather-bot/internal/dialogue"
	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/format"
	"github.com/i474232898/weather-bot/internal/lib/sl"
	"github.com/i474232898/weather-bot/internal/metrics"
)

// Forecaster is the read side used by the menu handlers.
type Forecaster interface {
	Language(ctx context.Context, userID int64) (domain.Language, error)
	Today(ctx context.Context, userID int64) (string, domain.Language, error)
	Day(ctx context.Context, userID int64, key string) (string, domain.Language, error)
	DayLabels(ctx context.Context, userID int64) ([]string, domain.Language, error)
	Plot(ctx context.Context, userID int64, kind format.Kind) (string, domain.Language, error)
	Profile(ctx context.Context, userID int64) (string, domain.Language, error)
}

type handlerFunc func(ctx context.Context, ev Event) error

// anyState matches every dialogue state.
const anyState dialogue.State = -1

const (
	triggerLocation = "location"
	triggerDay      = "day"
)

type routeKey struct {
	trigger string
	state   dialogue.State
}

type route struct {
	name    string
	handler handlerFunc
}

// Dispatcher owns the routing table.
type Dispatcher struct {
	machine   *dialogue.Machine
	forecasts Forecaster
	messenger Messenger
	log       *slog.Logger
	metrics   *metrics.Metrics

	routes map[routeKey]route
}

func New(machine *dialogue.Machine, forecasts Forecaster, messenger Messenger, log *slog.Logger, m *metrics.Metrics) *Dispatcher {
	d := &Dispatcher{
		machine:   machine,
		forecasts: forecasts,
		messenger: messenger,
		log:       log.With(slog.String("component", "dispatcher")),
		metrics:   m,
		routes:    make(map[routeKey]route),
	}
	d.registerRoutes()
	return d
}

func (d *Dispatcher) registerRoutes() {
	idle := dialogue.Idle

	d.handle("/start", anyState, "cmd_start", d.onStart)
	d.handle("/settings", anyState, "cmd_settings", d.onSettings)
	d.handle("/help", idle, "cmd_help", d.onHelp)
	d.handle("/weather", idle, "cmd_weather", d.onWeather)
	d.handle("/profile", idle, "cmd_profile", d.onProfile)

	d.handle(button(DataRU), dialogue.AwaitingLanguage, "select_language", d.onLanguage)
	d.handle(button(DataEN), dialogue.AwaitingLanguage, "select_language", d.onLanguage)
	d.handle(triggerLocation, dialogue.AwaitingLocation, "share_location", d.onLocation)
	d.handle(button(DataCelsius), dialogue.AwaitingTempUnit, "select_temp_unit", d.onTempUnit)
	d.handle(button(DataFahrenheit), dialogue.AwaitingTempUnit, "select_temp_unit", d.onTempUnit)
	d.handle(button(DataMps), dialogue.AwaitingWindUnit, "select_wind_unit", d.onWindUnit)
	d.handle(button(DataKmph), dialogue.AwaitingWindUnit, "select_wind_unit", d.onWindUnit)

	d.handle(button(DataForecastToday), idle, "forecast_today", d.onToday)
	d.handle(button(DataForecastWeek), idle, "forecast_days", d.onDays)
	d.handle(button(DataBackToDays), idle, "forecast_days", d.onDays)
	d.handle(triggerDay, idle, "forecast_day", d.onDay)
	d.handle(button(DataPlots), idle, "plots_menu", d.onPlots)
	d.handle(button(DataBackToPlots), idle, "plots_menu", d.onPlots)
	for _, k := range []string{DataTemp, DataWind, DataPrecip, DataHumid} {
		d.handle(button(k), idle, "plot", d.onPlot)
	}
}

func (d *Dispatcher) handle(trigger string, state dialogue.State, name string, h handlerFunc) {
	d.routes[routeKey{trigger: trigger, state: state}] = route{name: name, handler: h}
}

func button(data string) string {
	return "btn:" + data
}

// trigger derives the routing key of an event. Plain text has no routes and
// always ends up unrecognized.
func trigger(ev Event) string {
	switch ev.Intent {
	case IntentCommand:
		return "/" + ev.Command
	case IntentLocation:
		return triggerLocation
	case IntentButton:
		if isDayKey(ev.Data) {
			return triggerDay
		}
		return button(ev.Data)
	default:
		return "text"
	}
}

// isDayKey matches "01".."31".
func isDayKey(s string) bool {
	if len(s) != 2 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 31
}

// Dispatch routes one event. Handler failures have already been reported to
// the user by the handler and are only logged here. An unreadable session is
// treated as Idle.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	state, err := d.machine.State(ctx, ev.UserID)
	if err != nil {
		d.log.Error("failed to read session", sl.UserID(ev.UserID), sl.Err(err))
		state = dialogue.Idle
	}

	r, ok := d.lookup(trigger(ev), state)
	if !ok {
		d.metrics.Unrecognized()
		d.unrecognized(ctx, ev)
		return
	}

	d.metrics.Event(r.name)
	if ev.Intent == IntentButton && ev.CallbackID != "" {
		if err := d.messenger.AnswerCallback(ctx, ev.CallbackID); err != nil {
			d.log.Warn("failed to answer callback", sl.UserID(ev.UserID), sl.Err(err))
		}
	}

	err = r.handler(ctx, ev)
	switch {
	case err == nil:
	case errors.Is(err, dialogue.ErrUnexpectedInput):
		d.metrics.Unrecognized()
		d.log.Info("unexpected input", sl.UserID(ev.UserID), slog.String("intent", r.name), sl.Err(err))
	default:
		if errors.Is(err, domain.ErrStore) {
			d.metrics.StoreError(r.name)
		}
		d.log.Error("handler failed",
			sl.UserID(ev.UserID),
			slog.String("intent", r.name),
			slog.String("state", state.String()),
			sl.Err(err),
		)
	}
}

func (d *Dispatcher) lookup(trigger string, state dialogue.State) (route, bool) {
	if r, ok := d.routes[routeKey{trigger: trigger, state: state}]; ok {
		return r, true
	}
	r, ok := d.routes[routeKey{trigger: trigger, state: anyState}]
	return r, ok
}

func (d *Dispatcher) unrecognized(ctx context.Context, ev Event) {
	if ev.CallbackID != "" {
		if err := d.messenger.AnswerCallback(ctx, ev.CallbackID); err != nil {
			d.log.Warn("failed to answer callback", sl.UserID(ev.UserID), sl.Err(err))
		}
	}
	if err := d.messenger.SendText(ctx, ev.ChatID, format.Text(format.Unknown, format.Both), nil); err != nil {
		d.log.Error("failed to send reply", sl.UserID(ev.UserID), sl.Err(err))
	}
}
