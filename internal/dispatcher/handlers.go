package dispatcher

import (
	"context"
	"errors"
	"os"

	"github.com/i474232898/weather-bot/internal/dialogue"
	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/format"
	"github.com/i474232898/weather-bot/internal/lib/sl"
)

func (d *Dispatcher) onStart(ctx context.Context, ev Event) error {
	return d.begin(ctx, ev, format.Start)
}

func (d *Dispatcher) onSettings(ctx context.Context, ev Event) error {
	return d.begin(ctx, ev, format.SettingsIntro)
}

func (d *Dispatcher) begin(ctx context.Context, ev Event, intro format.Key) error {
	if _, err := d.machine.Begin(ctx, ev.UserID); err != nil {
		return d.report(ctx, ev, domain.LangUnset, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(intro, format.Both), languageKeyboard())
}

func (d *Dispatcher) onHelp(ctx context.Context, ev Event) error {
	lang, err := d.forecasts.Language(ctx, ev.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return d.report(ctx, ev, domain.LangUnset, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(format.Help, lang), nil)
}

func (d *Dispatcher) onWeather(ctx context.Context, ev Event) error {
	lang, err := d.forecasts.Language(ctx, ev.UserID)
	if err != nil {
		return d.report(ctx, ev, domain.LangUnset, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(format.WeatherMenu, lang), weatherKeyboard(lang))
}

func (d *Dispatcher) onProfile(ctx context.Context, ev Event) error {
	text, lang, err := d.forecasts.Profile(ctx, ev.UserID)
	if err != nil {
		return d.report(ctx, ev, lang, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(format.YourProfile, lang)+"\n\n"+text, nil)
}

func (d *Dispatcher) onLanguage(ctx context.Context, ev Event) error {
	lang, err := domain.ParseLanguage(ev.Data)
	if err != nil {
		return d.report(ctx, ev, domain.LangUnset, errors.Join(dialogue.ErrUnexpectedInput, err))
	}
	res, err := d.machine.SelectLanguage(ctx, ev.UserID, lang)
	if err != nil {
		return d.report(ctx, ev, res.Language, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(format.LangSuccess, res.Language), locationKeyboard(res.Language))
}

func (d *Dispatcher) onLocation(ctx context.Context, ev Event) error {
	res, err := d.machine.ShareLocation(ctx, ev.UserID, ev.Latitude, ev.Longitude)
	if err != nil {
		return d.report(ctx, ev, res.Language, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(format.LocSuccess, res.Language), tempKeyboard())
}

func (d *Dispatcher) onTempUnit(ctx context.Context, ev Event) error {
	unit, err := domain.ParseTempUnit(ev.Data)
	if err != nil {
		return d.report(ctx, ev, domain.LangUnset, errors.Join(dialogue.ErrUnexpectedInput, err))
	}
	res, err := d.machine.SelectTempUnit(ctx, ev.UserID, unit)
	if err != nil {
		return d.report(ctx, ev, res.Language, err)
	}
	return d.messenger.EditText(ctx, ev.ChatID, ev.MessageID, format.Text(format.TempSuccess, res.Language), windKeyboard(res.Language))
}

// onWindUnit finishes the dialogue. On a failed write the user only sees the
// database error.
func (d *Dispatcher) onWindUnit(ctx context.Context, ev Event) error {
	unit, err := domain.ParseWindUnit(ev.Data)
	if err != nil {
		return d.report(ctx, ev, domain.LangUnset, errors.Join(dialogue.ErrUnexpectedInput, err))
	}
	res, err := d.machine.SelectWindUnit(ctx, ev.UserID, unit)
	if err != nil {
		return d.report(ctx, ev, res.Language, err)
	}
	return d.messenger.SendText(ctx, ev.ChatID, format.Text(format.SettingsCompleted, res.Language), removeKeyboard())
}

func (d *Dispatcher) onToday(ctx context.Context, ev Event) error {
	text, lang, err := d.forecasts.Today(ctx, ev.UserID)
	if err != nil {
		return d.report(ctx, ev, lang, err)
	}
	return d.messenger.EditText(ctx, ev.ChatID, ev.MessageID, format.Text(format.WeatherToday, lang)+text, nil)
}

func (d *Dispatcher) onDays(ctx context.Context, ev Event) error {
	labels, lang, err := d.forecasts.DayLabels(ctx, ev.UserID)
	if err != nil {
		return d.report(ctx, ev, lang, err)
	}
	return d.messenger.EditText(ctx, ev.ChatID, ev.MessageID, format.Text(format.WeatherWeek, lang), daysKeyboard(labels, lang))
}

func (d *Dispatcher) onDay(ctx context.Context, ev Event) error {
	text, lang, err := d.forecasts.Day(ctx, ev.UserID, ev.Data)
	if err != nil {
		return d.report(ctx, ev, lang, err)
	}
	return d.messenger.EditText(ctx, ev.ChatID, ev.MessageID, text, backKeyboard(lang, DataBackToDays))
}

// onPlots shows the chart menu. Coming back from a chart the pressed button
// sits under a photo, which cannot be edited into text, so a new message is
// sent instead.
func (d *Dispatcher) onPlots(ctx context.Context, ev Event) error {
	lang, err := d.forecasts.Language(ctx, ev.UserID)
	if err != nil {
		return d.report(ctx, ev, domain.LangUnset, err)
	}
	text := format.Text(format.PlotsMenu, lang)
	if ev.Data == DataBackToPlots {
		return d.messenger.SendText(ctx, ev.ChatID, text, plotsKeyboard(lang))
	}
	return d.messenger.EditText(ctx, ev.ChatID, ev.MessageID, text, plotsKeyboard(lang))
}

func (d *Dispatcher) onPlot(ctx context.Context, ev Event) error {
	kind, err := format.ParseKind(ev.Data)
	if err != nil {
		return d.report(ctx, ev, domain.LangUnset, errors.Join(dialogue.ErrUnexpectedInput, err))
	}
	path, lang, err := d.forecasts.Plot(ctx, ev.UserID, kind)
	if err != nil {
		return d.report(ctx, ev, lang, err)
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			d.log.Warn("failed to remove plot", sl.UserID(ev.UserID), sl.Err(rmErr))
		}
	}()
	return d.messenger.SendPhoto(ctx, ev.ChatID, path, backKeyboard(lang, DataBackToPlots))
}

// report tells the user why the request failed and returns err joined with
// any delivery failure. Button events edit the pressed message in place.
func (d *Dispatcher) report(ctx context.Context, ev Event, lang domain.Language, err error) error {
	var text string
	switch {
	case errors.Is(err, dialogue.ErrUnexpectedInput):
		text = format.Text(format.Unknown, format.Both)
	case errors.Is(err, domain.ErrStore):
		text = format.Text(format.DataError, format.Both)
	default:
		if lang == domain.LangUnset {
			// Best effort; an unreadable language falls back to English.
			lang, _ = d.forecasts.Language(ctx, ev.UserID)
		}
		text = format.Text(format.ProviderFailure, lang)
	}

	var sendErr error
	if ev.Intent == IntentButton && ev.MessageID != 0 {
		sendErr = d.messenger.EditText(ctx, ev.ChatID, ev.MessageID, text, nil)
	} else {
		sendErr = d.messenger.SendText(ctx, ev.ChatID, text, nil)
	}
	return errors.Join(err, sendErr)
}
