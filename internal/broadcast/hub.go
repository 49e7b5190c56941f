// Package broadcast is the in-process publish/subscribe channel for live
// score updates. Every processed message is published to all active
// subscribers (e.g. WebSocket stream handlers); there is no deduplication.
package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"jiaa/data-service/internal/logging"
)

// Update is one live score event, emitted once per processed message.
type Update struct {
	CurrentScore int    `json:"current_score"`
	State        string `json:"state"`
	FeedbackMsg  string `json:"feedback_msg"`
	Timestamp    int64  `json:"timestamp"` // unix milliseconds
}

const defaultBuffer = 16

// Hub fans updates out to subscriber channels. Slow subscribers drop updates
// rather than block the producer; removing one subscriber never affects the
// others or the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan Update
	buffer int
}

// NewHub returns a hub whose subscriber channels buffer the given number of
// updates; buffer <= 0 uses the default.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[string]chan Update), buffer: buffer}
}

// Subscribe registers a new subscriber and returns its handle and channel.
// The channel is closed by Unsubscribe.
func (h *Hub) Subscribe() (string, <-chan Update) {
	id := uuid.NewString()
	ch := make(chan Update, h.buffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// with an unknown or already removed id.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()

	if ok {
		close(ch)
	}
}

// Publish delivers the update to every subscriber without blocking. Updates
// to a full subscriber buffer are dropped and logged.
func (h *Hub) Publish(u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- u:
		default:
			logging.WithComponent("broadcast").WithField("subscriber", id).
				Debug("dropping update for slow subscriber")
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
