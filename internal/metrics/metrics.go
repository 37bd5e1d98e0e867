// Package metrics exposes Prometheus instrumentation for the game
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons for HitsRejected.
const (
	ReasonUntrusted  = "untrusted"
	ReasonNotRunning = "not_running"
	ReasonNotVisible = "not_visible"
)

var (
	RoundsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whackamole_rounds_started_total",
		Help: "Rounds started.",
	})
	RoundsEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whackamole_rounds_ended_total",
		Help: "Rounds that reached the ended phase.",
	})
	HitsCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whackamole_hits_credited_total",
		Help: "Hits that landed on a visible target.",
	})
	HitsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "whackamole_hits_rejected_total",
		Help: "Hits ignored by the controller, by reason.",
	}, []string{"reason"})
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "whackamole_active_sessions",
		Help: "Player sessions currently held in memory.",
	})
)

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
