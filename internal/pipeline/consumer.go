package pipeline

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"jiaa/data-service/internal/logging"
)

// Consumer is the ingestion loop: it reads raw activity messages from Kafka
// and runs each through the orchestrator, one at a time. Processing inline
// (rather than in parallel) is what gives the debounce logic its ordering
// guarantee; a slow verification call simply backpressures into the topic.
type Consumer struct {
	reader *kafka.Reader
	orch   *Orchestrator
}

// NewConsumer creates a consumer for the activity topic. brokers must be
// non-empty. Call Close when shutting down.
func NewConsumer(brokers []string, topic, groupID string, orch *Orchestrator) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
	})
	return &Consumer{reader: reader, orch: orch}
}

// Run consumes until ctx is canceled. Read errors and processing errors are
// logged and never stop the loop; malformed messages are dropped, not retried.
func (c *Consumer) Run(ctx context.Context) {
	log := logging.WithComponent("pipeline")
	log.Info("consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.WithError(err).Warn("kafka read error")
			continue
		}

		// Process errors are already logged with context; nothing to retry.
		_ = c.orch.Process(ctx, msg.Value)
	}
}

// Close closes the Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
