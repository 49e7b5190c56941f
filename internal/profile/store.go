package profile

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"jiaa/data-service/internal/logging"
)

const keyPrefix = "profile:"

const redisOpTimeout = 2 * time.Second

// Store caches user profiles in process memory and persists them to Redis.
// Reads are fail-open: a missing or unreachable Redis yields a default
// profile and never an error. Saves are best-effort: failures are logged and
// do not roll back the in-memory mutation.
type Store struct {
	rdb *redis.Client // nil means memory-only (tests, Redis not configured)

	mu    sync.RWMutex
	cache map[string]*Profile
}

// NewStore returns a Store backed by the given Redis client. A nil client is
// allowed and keeps all profiles in memory only.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, cache: make(map[string]*Profile)}
}

// Dial connects to Redis using a redis:// URL with pool settings sized for
// the single-consumer pipeline. Caller must Close the client on shutdown.
func Dial(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Get returns the cached profile for userID, loading it from Redis on a cache
// miss. Any storage failure falls back to a fresh default profile. The
// returned profile is the store's single instance for that user; callers must
// not retain mutable references across messages.
func (s *Store) Get(ctx context.Context, userID string) *Profile {
	s.mu.RLock()
	p, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok {
		return p
	}

	p = s.load(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have populated the entry while we were loading.
	if existing, ok := s.cache[userID]; ok {
		return existing
	}
	s.cache[userID] = p
	return p
}

// Save persists the in-memory profile for userID to Redis. Failures are
// logged, never returned; liveness of the pipeline must not depend on Redis.
func (s *Store) Save(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	s.mu.RLock()
	p, ok := s.cache[userID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	payload, err := json.Marshal(p)
	if err != nil {
		logging.WithComponent("profile").WithError(err).WithField("user_id", userID).
			Warn("failed to encode profile")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := s.rdb.Set(opCtx, keyPrefix+userID, payload, 0).Err(); err != nil {
		logging.WithComponent("profile").WithError(err).WithField("user_id", userID).
			Warn("failed to save profile")
	}
}

func (s *Store) load(ctx context.Context, userID string) *Profile {
	if s.rdb == nil {
		return New()
	}

	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	raw, err := s.rdb.Get(opCtx, keyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.WithComponent("profile").WithError(err).WithField("user_id", userID).
				Warn("failed to load profile, using default")
		}
		return New()
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		logging.WithComponent("profile").WithError(err).WithField("user_id", userID).
			Warn("corrupt stored profile, using default")
		return New()
	}
	if p.AvgCodingEntropy <= 0 {
		return New()
	}
	return &p
}
