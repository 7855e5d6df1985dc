// Package telegram connects the dispatcher to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/i474232898/weather-bot/internal/dispatcher"
	"github.com/i474232898/weather-bot/internal/format"
)

// api is the part of *bot.Bot the client needs.
type api interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// Client implements dispatcher.Messenger. All texts are sent as HTML.
type Client struct {
	api api
}

func NewClient(b api) *Client {
	return &Client{api: b}
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string, kb *dispatcher.Keyboard) error {
	const op = "telegram.SendText"

	_, err := c.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup(kb),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, path string, kb *dispatcher.Keyboard) error {
	const op = "telegram.SendPhoto"

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	_, err = c.api.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: filepath.Base(path), Data: f},
		ReplyMarkup: markup(kb),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *dispatcher.Keyboard) error {
	const op = "telegram.EditText"

	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	// Only inline keyboards can be attached to an edited message.
	if kb != nil && !kb.Reply && !kb.Remove {
		params.ReplyMarkup = markup(kb)
	}
	if _, err := c.api.EditMessageText(ctx, params); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	const op = "telegram.AnswerCallback"

	if _, err := c.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callbackID}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func markup(kb *dispatcher.Keyboard) models.ReplyMarkup {
	switch {
	case kb == nil:
		return nil
	case kb.Remove:
		return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	case kb.Reply:
		rows := make([][]models.KeyboardButton, 0, len(kb.Rows))
		for _, r := range kb.Rows {
			row := make([]models.KeyboardButton, 0, len(r))
			for _, b := range r {
				row = append(row, models.KeyboardButton{Text: b.Text, RequestLocation: b.RequestLocation})
			}
			rows = append(rows, row)
		}
		return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true, OneTimeKeyboard: true}
	default:
		rows := make([][]models.InlineKeyboardButton, 0, len(kb.Rows))
		for _, r := range kb.Rows {
			row := make([]models.InlineKeyboardButton, 0, len(r))
			for _, b := range r {
				row = append(row, models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
			}
			rows = append(rows, row)
		}
		return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	}
}

// MenuCommands is the bilingual command menu shown by Telegram clients.
func MenuCommands() []models.BotCommand {
	return []models.BotCommand{
		{Command: "weather", Description: format.Text(format.CmdWeather, format.Both)},
		{Command: "profile", Description: format.Text(format.CmdProfile, format.Both)},
		{Command: "settings", Description: format.Text(format.CmdSettings, format.Both)},
	}
}
