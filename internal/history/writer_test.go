package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	mu      sync.Mutex
	records []*Record
	saveErr error
}

func (m *mockRepo) Save(ctx context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, r)
	return nil
}

func (m *mockRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records, nil
}

func (m *mockRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWriter_PersistsQueuedRecords(t *testing.T) {
	repo := &mockRepo{}
	w := NewWriter(repo, 8)
	defer w.Close()

	for i := 0; i < 5; i++ {
		w.Write(&Record{UserID: "u", Score: i})
	}

	waitFor(t, func() bool { return repo.count() == 5 })
}

func TestWriter_SaveFailureDoesNotStopWriter(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("db down")}
	w := NewWriter(repo, 8)
	defer w.Close()

	w.Write(&Record{UserID: "u"})
	time.Sleep(50 * time.Millisecond)

	// Recover and keep writing.
	repo.mu.Lock()
	repo.saveErr = nil
	repo.mu.Unlock()

	w.Write(&Record{UserID: "u"})
	waitFor(t, func() bool { return repo.count() == 1 })
}

func TestWriter_NilRecordIgnored(t *testing.T) {
	repo := &mockRepo{}
	w := NewWriter(repo, 1)
	defer w.Close()
	w.Write(nil)
	time.Sleep(20 * time.Millisecond)
	if repo.count() != 0 {
		t.Errorf("count = %d, want 0", repo.count())
	}
}

func TestWriter_CloseDrainsQueue(t *testing.T) {
	repo := &mockRepo{}
	w := NewWriter(repo, 16)
	for i := 0; i < 10; i++ {
		w.Write(&Record{UserID: "u", Score: i})
	}
	w.Close()
	waitFor(t, func() bool { return repo.count() == 10 })
}
