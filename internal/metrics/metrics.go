package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Updates dispatched, by matched route.",
		},
		[]string{"route"},
	)

	sendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_send_errors_total",
			Help: "Failed outbound Telegram calls, by route.",
		},
		[]string{"route"},
	)

	linksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miniapp_links_total",
			Help: "Mini-app links issued, by page.",
		},
		[]string{"page"},
	)

	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miniapp_actions_total",
			Help: "Mini-app payloads received, by action (unknown/invalid included).",
		},
		[]string{"action"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(updatesTotal, sendErrorsTotal, linksTotal, actionsTotal)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncUpdate(route string) {
	updatesTotal.WithLabelValues(norm(route)).Inc()
}

func IncSendError(route string) {
	sendErrorsTotal.WithLabelValues(norm(route)).Inc()
}

// IncLink counts an issued link. The root page is reported as "home".
func IncLink(page string) {
	if page = norm(page); page == "" {
		page = "home"
	}
	linksTotal.WithLabelValues(page).Inc()
}

func IncAction(action string) {
	actionsTotal.WithLabelValues(norm(action)).Inc()
}
