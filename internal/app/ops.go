package app

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/maya-florenko/miniappbot/internal/miniapp"
	"github.com/maya-florenko/miniappbot/internal/token"
)

// NewOpsHandler serves health, metrics and link debugging endpoints.
func NewOpsHandler(links miniapp.Linker, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/link", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.ParseInt(req.URL.Query().Get("id"), 10, 64)
		if err != nil || id < 0 {
			http.Error(w, "id must be a non-negative integer", http.StatusBadRequest)
			return
		}
		page := req.URL.Query().Get("page")
		writeJSON(w, log, map[string]string{
			"url":   links.Page(id, page),
			"token": token.Encode(id),
		})
	})

	r.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
		id, err := miniapp.UserFromQuery(req.URL.RawQuery)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, log, map[string]int64{"telegram_id": id})
	})

	return r
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write ops response")
	}
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
