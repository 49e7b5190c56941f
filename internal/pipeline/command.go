package pipeline

import (
	"context"
	"encoding/json"
)

// Command is the downstream message published on qualifying state
// transitions, keyed by the user id.
type Command struct {
	ClientID string `json:"client_id"`
	// State uses the fixed downstream vocabulary (THINKING, SLEEPING,
	// DISTRACTED, EMERGENCY, AWAKE), not the internal state names.
	State string `json:"state"`
	// Payload is a JSON string carrying auxiliary data (currently the score).
	Payload   string `json:"payload"`
	Priority  int    `json:"priority"` // 1-10, higher is more urgent
	Timestamp int64  `json:"timestamp"`
}

func commandPayload(score int) string {
	b, _ := json.Marshal(struct {
		Score int `json:"score"`
	}{Score: score})
	return string(b)
}

// Publisher emits downstream commands. Callers use it best-effort: log and
// ignore errors; a failed publish is not retried.
type Publisher interface {
	// Publish sends a single command keyed by its ClientID.
	Publish(ctx context.Context, cmd *Command) error
	// Close releases resources (e.g. Kafka writer). Safe to call if already closed.
	Close() error
}

// Reporter feeds confirmed gaming titles back to the denylist.
type Reporter interface {
	ReportApplication(ctx context.Context, appName string, isGame bool) error
}
