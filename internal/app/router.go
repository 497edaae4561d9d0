package app

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maya-florenko/miniappbot/internal/app/handlers"
	"github.com/maya-florenko/miniappbot/internal/metrics"
)

// Match reports whether a route applies to an update.
type Match func(u *models.Update) bool

type route struct {
	name    string
	match   Match
	handler handlers.Func
}

// Router dispatches each update to the first route that matches it.
// Routes are tried in registration order, so a broad predicate registered
// early shadows the routes after it.
type Router struct {
	log    zerolog.Logger
	routes []route
}

// NewRouter returns an empty router logging through log.
func NewRouter(log zerolog.Logger) *Router {
	return &Router{log: log}
}

// Handle appends a route; it is tried after every route added before it.
func (r *Router) Handle(name string, match Match, h handlers.Func) {
	r.routes = append(r.routes, route{name: name, match: match, handler: h})
}

// Dispatch runs the first matching route and reports its name, or "" if no
// route matched.
func (r *Router) Dispatch(ctx context.Context, s handlers.Sender, u *models.Update) string {
	log := r.log.With().
		Str("trace_id", uuid.NewString()).
		Int64("update_id", u.ID).
		Logger()
	if u.Message != nil && u.Message.From != nil {
		log = log.With().Int64("tg_id", u.Message.From.ID).Logger()
	}

	for _, rt := range r.routes {
		if !rt.match(u) {
			continue
		}

		log = log.With().Str("route", rt.name).Logger()
		metrics.IncUpdate(rt.name)
		if err := rt.handler(log.WithContext(ctx), s, u); err != nil {
			metrics.IncSendError(rt.name)
			log.Error().Err(err).Msg("handler failed")
		}
		return rt.name
	}

	log.Debug().Msg("no route for update")
	return ""
}

// BotHandler adapts the router to the go-telegram/bot default handler.
func (r *Router) BotHandler() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, u *models.Update) {
		r.Dispatch(ctx, b, u)
	}
}

// Command matches /name and /name with arguments. A /name@mention form
// matches only when the mention is botUsername, so commands addressed to
// other bots in a group are left alone.
func Command(name, botUsername string) Match {
	botUsername = strings.TrimPrefix(botUsername, "@")
	return func(u *models.Update) bool {
		if u.Message == nil {
			return false
		}
		fields := strings.Fields(u.Message.Text)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
			return false
		}
		cmd, mention, addressed := strings.Cut(fields[0][1:], "@")
		if addressed && (botUsername == "" || !strings.EqualFold(mention, botUsername)) {
			return false
		}
		return strings.EqualFold(cmd, name)
	}
}

func HasWebAppData(u *models.Update) bool {
	return u.Message != nil && u.Message.WebAppData != nil
}

func HasText(u *models.Update) bool {
	return u.Message != nil && u.Message.Text != ""
}
