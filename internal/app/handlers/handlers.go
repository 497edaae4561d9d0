// Package handlers contains the bot's per-update callbacks.
package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/maya-florenko/miniappbot/internal/miniapp"
)

// Sender is the part of *bot.Bot the handlers use.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Func handles one update. A returned error means the reply could not be
// sent; the router logs and counts it.
type Func func(ctx context.Context, s Sender, u *models.Update) error

type Deps struct {
	Links miniapp.Linker
}

func webAppButton(text, url string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: text, WebApp: &models.WebAppInfo{URL: url}}},
		},
	}
}

func reply(ctx context.Context, s Sender, chatID int64, text string) error {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func replyHTML(ctx context.Context, s Sender, chatID int64, text string) error {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

func sender(u *models.Update) (*models.Message, *models.User, bool) {
	if u.Message == nil || u.Message.From == nil {
		return nil, nil, false
	}
	return u.Message, u.Message.From, true
}
