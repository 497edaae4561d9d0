package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/maya-florenko/miniappbot/internal/metrics"
	"github.com/maya-florenko/miniappbot/internal/miniapp"
)

const (
	replyUnknownAction = "Data received, but the action was not recognized."
	replyBadPayload    = "Failed to process data from the app."
	replyFailed        = "Something went wrong while processing your choice."
)

// WebAppData handles data posted back by the mini-app.
func WebAppData() Func {
	return func(ctx context.Context, s Sender, u *models.Update) error {
		if u.Message == nil || u.Message.WebAppData == nil {
			return nil
		}
		chatID := u.Message.Chat.ID
		log := zerolog.Ctx(ctx)

		p, err := miniapp.ParsePayload(u.Message.WebAppData.Data)
		switch {
		case errors.Is(err, miniapp.ErrMalformedPayload):
			metrics.IncAction("invalid")
			log.Warn().Err(err).Msg("web app payload is not JSON")
			return reply(ctx, s, chatID, replyBadPayload)
		case errors.Is(err, miniapp.ErrMissingAction):
			metrics.IncAction("unknown")
			log.Warn().RawJSON("payload", p.Raw()).Msg("web app payload has no usable action")
			return reply(ctx, s, chatID, replyUnknownAction)
		case err != nil:
			metrics.IncAction("invalid")
			log.Warn().Err(err).Msg("web app payload rejected")
			return reply(ctx, s, chatID, replyFailed)
		}

		metrics.IncAction(p.Action)
		log.Info().RawJSON("payload", p.Raw()).Str("action", p.Action).Msg("web app data received")
		log.Debug().Msg("web app payload:\n" + p.Indent())

		switch p.Action {
		case miniapp.ActionSelectCharacter:
			return selectCharacter(ctx, s, chatID, p)
		default:
			log.Warn().Str("action", p.Action).Msg("unknown web app action")
			return reply(ctx, s, chatID, replyUnknownAction)
		}
	}
}

func selectCharacter(ctx context.Context, s Sender, chatID int64, p miniapp.Payload) error {
	log := zerolog.Ctx(ctx)

	sc, err := p.SelectCharacter()
	if err != nil {
		log.Error().Err(err).Msg("select_character payload rejected")
		return reply(ctx, s, chatID, replyFailed)
	}

	log.Info().
		Str("character_id", sc.CharacterID.String()).
		Str("character_name", sc.CharacterName).
		Str("telegram_id", sc.TelegramID.String()).
		Str("username", sc.Username).
		Str("first_name", sc.FirstName).
		Msg("character selected")

	text := fmt.Sprintf("✅ You chose the character: <b>%s</b>\n\n", html.EscapeString(sc.CharacterName))
	if sc.CharacterDescription != "" {
		text += html.EscapeString(sc.CharacterDescription) + "\n\n"
	}
	text += "Now you can start talking! Just send a message."
	return replyHTML(ctx, s, chatID, text)
}
