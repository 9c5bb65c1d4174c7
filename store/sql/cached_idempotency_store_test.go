package sqlstore

import (
	"context"
	"sync"
	"testing"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-payments/core"
)

type stubIdempotencyStore struct {
	mu          sync.Mutex
	attempt     core.IdempotencyAttempt
	getCalls    int
	recordCalls int
}

func (s *stubIdempotencyStore) Record(_ context.Context, attempt core.IdempotencyAttempt) (core.IdempotencyAttempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordCalls++
	replayed := s.attempt.Key == attempt.Key && s.attempt.Key != ""
	if !replayed {
		s.attempt = attempt
	}
	return s.attempt, replayed, nil
}

func (s *stubIdempotencyStore) GetByKey(_ context.Context, _ string) (core.IdempotencyAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return s.attempt, nil
}

func (s *stubIdempotencyStore) PruneOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newTestCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

func TestCachedIdempotencyStore_GetByKey_MissFetchThenHit(t *testing.T) {
	base := &stubIdempotencyStore{
		attempt: core.IdempotencyAttempt{Key: "idem_1", Method: "POST", Path: "/v1/account"},
	}
	store, err := NewCachedIdempotencyStore(base, newTestCacheService(t))
	if err != nil {
		t.Fatalf("new cached store: %v", err)
	}

	if _, err := store.GetByKey(context.Background(), "idem_1"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected first get to fetch base store once, got %d", base.getCalls)
	}

	if _, err := store.GetByKey(context.Background(), "idem_1"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected second get to be cache hit, base get calls=%d", base.getCalls)
	}
}

func TestCachedIdempotencyStore_RecordInvalidatesCache(t *testing.T) {
	base := &stubIdempotencyStore{}
	store, err := NewCachedIdempotencyStore(base, newTestCacheService(t))
	if err != nil {
		t.Fatalf("new cached store: %v", err)
	}

	if _, _, err := store.Record(context.Background(), core.IdempotencyAttempt{
		Key:    "idem_2",
		Method: "POST",
		Path:   "/v1/account",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	attempt, err := store.GetByKey(context.Background(), "idem_2")
	if err != nil {
		t.Fatalf("get after record: %v", err)
	}
	if attempt.Key != "idem_2" {
		t.Fatalf("expected recorded attempt, got %+v", attempt)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected cache invalidation to force base fetch, got %d", base.getCalls)
	}
}

func TestIdempotencyCacheKey_EscapesSegments(t *testing.T) {
	key, err := IdempotencyCacheKey("idem/with spaces")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	want := idempotencyCacheKeyPrefix + "::idem%2Fwith%20spaces"
	if key != want {
		t.Fatalf("unexpected cache key %q want %q", key, want)
	}

	if _, err := IdempotencyCacheKey("  "); err == nil {
		t.Fatalf("expected empty key to fail")
	}
}
