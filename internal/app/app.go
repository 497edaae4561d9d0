package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/maya-florenko/miniappbot/internal/app/handlers"
	"github.com/maya-florenko/miniappbot/internal/config"
	"github.com/maya-florenko/miniappbot/internal/metrics"
	"github.com/maya-florenko/miniappbot/internal/miniapp"
)

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	links  miniapp.Linker
	router *Router
	bot    *bot.Bot
}

// New builds the bot client and its routes. The bot's username comes from
// config when set, otherwise from getMe; command mentions are checked
// against it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	metrics.MustRegister()

	links := miniapp.NewLinker(cfg.Bot.WebAppURL)
	router := NewRouter(log)

	opts := []bot.Option{
		bot.WithCheckInitTimeout(cfg.Bot.CheckInitTimeout),
		bot.WithDefaultHandler(router.BotHandler()),
		bot.WithErrorsHandler(func(err error) {
			log.Error().Err(err).Msg("telegram client error")
		}),
	}

	b, err := bot.New(cfg.Bot.Token, opts...)
	if err != nil {
		return nil, err
	}

	username := cfg.Bot.Username
	if username == "" {
		me, err := b.GetMe(ctx)
		if err != nil {
			return nil, fmt.Errorf("get bot username: %w", err)
		}
		username = me.Username
	}
	log.Info().Str("username", username).Msg("bot identity resolved")

	routes(router, handlers.Deps{Links: links}, username)
	return &App{cfg: cfg, log: log, links: links, router: router, bot: b}, nil
}

func routes(r *Router, deps handlers.Deps, username string) *Router {
	r.Handle("start", Command("start", username), handlers.Start(deps))
	r.Handle("profile", Command("profile", username), handlers.Profile(deps))
	r.Handle("create", Command("create", username), handlers.Create(deps))
	r.Handle("help", Command("help", username), handlers.Help())
	r.Handle("webapp_data", HasWebAppData, handlers.WebAppData())
	r.Handle("text", HasText, handlers.Text())
	return r
}

// Run polls Telegram until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: handlers.Commands}); err != nil {
		a.log.Warn().Err(err).Msg("failed to publish command menu")
	}

	srv := a.opsServer()
	if srv != nil {
		go func() {
			a.log.Info().Str("addr", srv.Addr).Msg("ops server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error().Err(err).Msg("ops server stopped")
			}
		}()
	}

	a.log.Info().Str("webapp_url", a.cfg.Bot.WebAppURL).Msg("bot started, waiting for messages")
	a.bot.Start(ctx)

	if srv != nil {
		return shutdown(srv)
	}
	return nil
}

func (a *App) opsServer() *http.Server {
	if a.cfg.HTTP.Addr == "" {
		return nil
	}
	return &http.Server{
		Addr:    a.cfg.HTTP.Addr,
		Handler: NewOpsHandler(a.links, a.log),
	}
}
