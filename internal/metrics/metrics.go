// Package metrics holds the Prometheus collectors of the pool bot and the
// HTTP router that exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// intentsTotal counts dispatched intents.
	// Labels: intent, outcome (ok or an error kind)
	intentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolbot",
		Subsystem: "intent",
		Name:      "dispatched_total",
		Help:      "Total intents dispatched by kind and outcome",
	}, []string{"intent", "outcome"})

	// publishTotal counts status message publishes.
	// Labels: result (edited, created, skipped, failed)
	publishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolbot",
		Subsystem: "status",
		Name:      "publish_total",
		Help:      "Total status message publishes by result",
	}, []string{"result"})

	// votesTotal counts votes newly recorded.
	// Labels: decision
	votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolbot",
		Subsystem: "ledger",
		Name:      "votes_total",
		Help:      "Total votes recorded by decision",
	}, []string{"decision"})

	// resolvedTotal counts buy-in requests leaving pending.
	// Labels: status (approved, rejected)
	resolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolbot",
		Subsystem: "ledger",
		Name:      "requests_resolved_total",
		Help:      "Total buy-in requests resolved by final status",
	}, []string{"status"})

	// sessionsTotal counts session lifecycle events.
	// Labels: event (started, ended)
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolbot",
		Subsystem: "session",
		Name:      "events_total",
		Help:      "Total session lifecycle events",
	}, []string{"event"})
)

// Publish results
const (
	PublishEdited  = "edited"
	PublishCreated = "created"
	PublishSkipped = "skipped"
	PublishFailed  = "failed"
)

// RecordIntent counts one dispatched intent
func RecordIntent(intent, outcome string) {
	intentsTotal.WithLabelValues(intent, outcome).Inc()
}

// RecordPublish counts one status publish attempt
func RecordPublish(result string) {
	publishTotal.WithLabelValues(result).Inc()
}

// RecordVote counts a newly recorded vote
func RecordVote(decision string) {
	votesTotal.WithLabelValues(decision).Inc()
}

// RecordResolved counts a request transition out of pending
func RecordResolved(status string) {
	resolvedTotal.WithLabelValues(status).Inc()
}

// RecordSessionStarted counts a started session
func RecordSessionStarted() {
	sessionsTotal.WithLabelValues("started").Inc()
}

// RecordSessionEnded counts an ended session
func RecordSessionEnded() {
	sessionsTotal.WithLabelValues("ended").Inc()
}
