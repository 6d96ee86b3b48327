package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

	// BroadcastsTotal counts finished broadcasts by terminal outcome.
	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamboard_broadcasts_total",
			Help: "Total number of broadcasts by terminal outcome.",
		},
		[]string{"outcome"},
	)

	// BroadcastDuration measures resolve + write time of a broadcast.
	BroadcastDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamboard_broadcast_duration_seconds",
			Help:    "Histogram of broadcast duration in seconds, by terminal outcome.",
			Buckets: durationBuckets,
		},
		[]string{"outcome"},
	)

	// BatchesTotal counts insert batches by result ("ok" or "error").
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamboard_notification_batches_total",
			Help: "Total number of notification insert batches, by result.",
		},
		[]string{"result"},
	)

	NotificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teamboard_notifications_created_total",
			Help: "Total number of notification records confirmed persisted.",
		},
	)

	// SourceErrors counts recipient source failures absorbed by the resolver.
	SourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamboard_recipient_source_errors_total",
			Help: "Total number of recipient source query failures, by source.",
		},
		[]string{"source"},
	)

	// PushAttempts counts push strategy attempts by strategy and result.
	PushAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamboard_push_attempts_total",
			Help: "Total number of push delivery attempts, by strategy and result.",
		},
		[]string{"strategy", "result"},
	)
)

// Handler returns the HTTP handler for the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveBroadcast(outcome string, start time.Time) {
	BroadcastsTotal.WithLabelValues(outcome).Inc()
	BroadcastDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func ObserveBatch(created int, err error) {
	if err != nil {
		BatchesTotal.WithLabelValues("error").Inc()
		return
	}
	BatchesTotal.WithLabelValues("ok").Inc()
	NotificationsCreated.Add(float64(created))
}

func ObservePush(strategy string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	PushAttempts.WithLabelValues(strategy, result).Inc()
}
