package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"jiaa/data-service/internal/logging"
)

// TitleIndex is the decision engine's game-title matcher: a static substring
// list extended with active denylist entries, refreshed in the background so
// per-message classification never touches the database.
type TitleIndex struct {
	svc    *Service
	static []string

	mu      sync.RWMutex
	dynamic []string
}

// NewTitleIndex returns an index over the static substrings. Call Refresh (or
// RefreshLoop) to fold in denylist entries; until then only the static list
// matches.
func NewTitleIndex(svc *Service, static []string) *TitleIndex {
	return &TitleIndex{svc: svc, static: static}
}

// MatchesGameTitle reports whether title contains any known game substring.
func (t *TitleIndex) MatchesGameTitle(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, sub := range t.static {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, sub := range t.dynamic {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// Refresh reloads the dynamic entries from the denylist. Failures keep the
// previous snapshot.
func (t *TitleIndex) Refresh(ctx context.Context) {
	if t.svc == nil {
		return
	}
	titles, err := t.svc.ActiveGameTitles(ctx)
	if err != nil {
		logging.WithComponent("denylist").WithError(err).Warn("title index refresh failed")
		return
	}
	t.mu.Lock()
	t.dynamic = titles
	t.mu.Unlock()
}

// RefreshLoop refreshes immediately and then on every tick until ctx is done.
func (t *TitleIndex) RefreshLoop(ctx context.Context, interval time.Duration) {
	t.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Refresh(ctx)
		}
	}
}
