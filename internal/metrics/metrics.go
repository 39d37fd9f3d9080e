// Package metrics collects and exposes Prometheus metrics for the bot.
package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Commands handled, labelled by resolved command name.
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crabigator_commands_total",
		Help: "Total number of commands dispatched.",
	}, []string{"command"})

	// Handler failures converted to the generic failure reply.
	CommandErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crabigator_command_errors_total",
		Help: "Total number of command handlers that failed.",
	}, []string{"command"})

	// WaniKani API requests by resource and HTTP status.
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crabigator_api_requests_total",
		Help: "Total number of WaniKani API requests.",
	}, []string{"resource", "status"})

	// WaniKani API request latency.
	APIRequestSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "crabigator_api_request_seconds",
		Help:    "WaniKani API request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	// Presence rotations executed by the recurring task.
	PresenceRotationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crabigator_presence_rotations_total",
		Help: "Total number of presence rotation runs.",
	})
)

// MustRegister registers all bot metrics on the given registry.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		CommandsTotal,
		CommandErrorsTotal,
		APIRequestsTotal,
		APIRequestSeconds,
		PresenceRotationsTotal,
	)
}

// Router returns the operational HTTP surface: /metrics and /healthz.
func Router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
