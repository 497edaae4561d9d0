package handlers

import (
	"context"

	"github.com/go-telegram/bot/models"
)

const helpText = "📚 <b>Available commands:</b>\n\n" +
	"/start - Choose a character to talk to\n" +
	"/profile - See your profile and stats\n" +
	"/create - Create your own character\n" +
	"/help - Show this help\n\n" +
	"💡 <b>How does it work?</b>\n" +
	"1. Pick a character from the list or create your own\n" +
	"2. Start talking by simply sending a message\n" +
	"3. The character answers in its own unique style!"

// Commands is the command menu published to Telegram.
var Commands = []models.BotCommand{
	{Command: "start", Description: "Choose a character"},
	{Command: "profile", Description: "Your profile and stats"},
	{Command: "create", Description: "Create a character"},
	{Command: "help", Description: "Show help"},
}

func Help() Func {
	return func(ctx context.Context, s Sender, u *models.Update) error {
		if u.Message == nil {
			return nil
		}
		return replyHTML(ctx, s, u.Message.Chat.ID, helpText)
	}
}
