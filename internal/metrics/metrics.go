// Package metrics exposes Prometheus collectors for the ingestion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesProcessed counts inbound activity messages that completed the pipeline.
	MessagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jiaa_pipeline_messages_processed_total",
		Help: "Activity messages processed end-to-end by the ingestion pipeline.",
	})

	// ParseFailures counts inbound messages dropped because they could not be parsed.
	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jiaa_pipeline_parse_failures_total",
		Help: "Inbound messages dropped due to malformed payloads.",
	})

	// Classifications counts pipeline outcomes by final attention state.
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jiaa_pipeline_classifications_total",
		Help: "Final attention states produced by the pipeline.",
	}, []string{"state"})

	// DownstreamPublishes counts command messages forwarded to the command topic.
	DownstreamPublishes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jiaa_pipeline_downstream_publishes_total",
		Help: "State-change commands published downstream after deduplication.",
	})

	// VerifyOverrides counts gaming classifications downgraded by the verification step.
	VerifyOverrides = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jiaa_pipeline_verify_overrides_total",
		Help: "GAMING classifications downgraded to NORMAL by content verification.",
	})
)
