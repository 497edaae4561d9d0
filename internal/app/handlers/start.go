package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/maya-florenko/miniappbot/internal/metrics"
)

// Start greets the user and offers the character picker.
func Start(deps Deps) Func {
	return func(ctx context.Context, s Sender, u *models.Update) error {
		msg, from, ok := sender(u)
		if !ok {
			return nil
		}

		name := from.FirstName
		if name == "" {
			name = "friend"
		}

		url := deps.Links.Home(from.ID)
		metrics.IncLink("")
		zerolog.Ctx(ctx).Info().
			Str("first_name", from.FirstName).
			Str("username", from.Username).
			Str("url", url).
			Msg("issued mini-app link")

		_, err := s.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text: fmt.Sprintf("Hi, %s! 👋\n\n"+
				"Pick a character to talk to from our collection.\n"+
				"There are public characters, and you can create your own!", name),
			ReplyMarkup: webAppButton("🎭 Choose a character", url),
		})
		return err
	}
}
