package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/maya-florenko/miniappbot/internal/metrics"
	"github.com/maya-florenko/miniappbot/internal/miniapp"
)

// Profile opens the mini-app on the user's profile.
func Profile(deps Deps) Func {
	return func(ctx context.Context, s Sender, u *models.Update) error {
		msg, from, ok := sender(u)
		if !ok {
			return nil
		}

		metrics.IncLink("")
		_, err := s.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        "Open your profile to see your stats:",
			ReplyMarkup: webAppButton("👤 My profile", deps.Links.Home(from.ID)),
		})
		return err
	}
}

// Create opens the character creation page.
func Create(deps Deps) Func {
	return func(ctx context.Context, s Sender, u *models.Update) error {
		msg, from, ok := sender(u)
		if !ok {
			return nil
		}

		metrics.IncLink(miniapp.PageCreate)
		_, err := s.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        "Create your own unique character!",
			ReplyMarkup: webAppButton("➕ Create a character", deps.Links.Page(from.ID, miniapp.PageCreate)),
		})
		return err
	}
}
