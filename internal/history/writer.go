package history

import (
	"context"
	"sync"
	"time"

	"jiaa/data-service/internal/logging"
)

const writeTimeout = 5 * time.Second

// Writer decouples the pipeline from the database: records are queued on a
// bounded channel and written by a single background goroutine. A full queue
// drops the record and logs; persistence is best-effort by contract.
type Writer struct {
	repo Repository
	ch   chan *Record

	closeOnce sync.Once
	done      chan struct{}
}

// NewWriter starts the background writer with the given queue size.
func NewWriter(repo Repository, buffer int) *Writer {
	if buffer <= 0 {
		buffer = 256
	}
	w := &Writer{
		repo: repo,
		ch:   make(chan *Record, buffer),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

// Write queues the record without blocking. Drops and logs when the queue is
// full or the writer is closed.
func (w *Writer) Write(rec *Record) {
	if w == nil || rec == nil {
		return
	}
	select {
	case <-w.done:
		logging.WithComponent("history").Warn("writer closed, dropping record")
	default:
		select {
		case w.ch <- rec:
		default:
			logging.WithComponent("history").WithField("user_id", rec.UserID).
				Warn("write queue full, dropping record")
		}
	}
}

// Close stops accepting records and lets the background goroutine drain the
// queue. Callers must stop producing before calling Close (the worker shuts
// the consumer loop down first).
func (w *Writer) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		close(w.ch)
	})
}

func (w *Writer) run() {
	for rec := range w.ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := w.repo.Save(ctx, rec); err != nil {
			logging.WithComponent("history").WithError(err).WithField("user_id", rec.UserID).
				Warn("failed to persist activity record")
		}
		cancel()
	}
}
