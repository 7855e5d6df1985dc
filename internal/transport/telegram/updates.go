package telegram

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/i474232898/weather-bot/internal/dispatcher"
	"github.com/i474232898/weather-bot/internal/flood"
	"github.com/i474232898/weather-bot/internal/metrics"
)

// ToEvent classifies an update. Updates the bot does not handle (edits,
// channel posts, anonymous messages) report false.
func ToEvent(u *models.Update) (dispatcher.Event, bool) {
	switch {
	case u == nil:
		return dispatcher.Event{}, false

	case u.CallbackQuery != nil:
		cq := u.CallbackQuery
		ev := dispatcher.Event{
			UserID:     cq.From.ID,
			ChatID:     cq.From.ID,
			Intent:     dispatcher.IntentButton,
			Data:       cq.Data,
			CallbackID: cq.ID,
		}
		if m := cq.Message.Message; m != nil {
			ev.ChatID = m.Chat.ID
			ev.MessageID = m.ID
		}
		return ev, true

	case u.Message != nil && u.Message.From != nil:
		m := u.Message
		ev := dispatcher.Event{UserID: m.From.ID, ChatID: m.Chat.ID}
		switch {
		case m.Location != nil:
			ev.Intent = dispatcher.IntentLocation
			ev.Latitude = m.Location.Latitude
			ev.Longitude = m.Location.Longitude
		case strings.HasPrefix(m.Text, "/"):
			ev.Intent = dispatcher.IntentCommand
			ev.Command = commandName(m.Text)
			ev.Text = m.Text
		default:
			ev.Intent = dispatcher.IntentText
			ev.Text = m.Text
		}
		return ev, true
	}
	return dispatcher.Event{}, false
}

// commandName strips the slash, any @botname suffix and arguments.
func commandName(text string) string {
	name := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

// Handler feeds every update into the dispatcher.
func Handler(d *dispatcher.Dispatcher, log *slog.Logger) bot.HandlerFunc {
	return func(ctx context.Context, _ *bot.Bot, u *models.Update) {
		ev, ok := ToEvent(u)
		if !ok {
			log.Debug("ignoring update", slog.Int64("update_id", u.ID))
			return
		}
		d.Dispatch(ctx, ev)
	}
}

// FloodMiddleware drops events from users over their rate before any
// handler runs.
func FloodMiddleware(gate *flood.Gate, m *metrics.Metrics, log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, u *models.Update) {
			if ev, ok := ToEvent(u); ok && !gate.Allow(ev.UserID) {
				m.Throttled()
				log.Debug("event throttled", slog.Int64("user_id", ev.UserID))
				return
			}
			next(ctx, b, u)
		}
	}
}
