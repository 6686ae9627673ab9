// Package metrics exposes Prometheus counters for the watcher loops and
// Telegram delivery. Everything registers on the default registry and is
// served via promhttp.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PollCycles counts completed poll cycles per watcher.
	PollCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alertbot_poll_cycles_total",
		Help: "Completed poll cycles per watcher.",
	}, []string{"watcher"})

	// PollErrors counts aborted poll cycles per watcher.
	PollErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alertbot_poll_errors_total",
		Help: "Poll cycles aborted by a fetch or classify error.",
	}, []string{"watcher"})

	// AlertsSent counts alerts delivered, by watcher and alert kind.
	AlertsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alertbot_alerts_sent_total",
		Help: "Alerts delivered to Telegram.",
	}, []string{"watcher", "kind"})

	// DeliveryFailures counts failed Telegram sends per watcher.
	DeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alertbot_delivery_failures_total",
		Help: "Telegram sends that returned an error.",
	}, []string{"watcher"})

	// SubscribersDropped counts subscribers removed after permanent
	// delivery failures.
	SubscribersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alertbot_subscribers_dropped_total",
		Help: "Subscribers removed because the chat became unreachable.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
