package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Text echoes plain messages until a character is picked.
func Text() Func {
	return func(ctx context.Context, s Sender, u *models.Update) error {
		if u.Message == nil || u.Message.Text == "" {
			return nil
		}

		return reply(ctx, s, u.Message.Chat.ID, fmt.Sprintf(
			"You wrote: %s\n\n💡 Choose a character with /start to begin a conversation!",
			u.Message.Text,
		))
	}
}
