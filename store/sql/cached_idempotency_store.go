package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-payments/core"
)

const idempotencyCacheKeyPrefix = "go-payments::idempotency_attempt::v1"

// CachedIdempotencyStore fronts an idempotency ledger with a read-through
// cache keyed by idempotency key. Pruned rows age out of the cache by TTL
// rather than explicit invalidation.
type CachedIdempotencyStore struct {
	base  core.IdempotencyStore
	cache repositorycache.CacheService
}

func NewCachedIdempotencyStore(
	base core.IdempotencyStore,
	cacheService repositorycache.CacheService,
) (*CachedIdempotencyStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base idempotency store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: idempotency cache service is required")
	}
	return &CachedIdempotencyStore{base: base, cache: cacheService}, nil
}

// IdempotencyCacheKey returns the deterministic cache key contract:
// go-payments::idempotency_attempt::v1::<key> with the key URL-path escaped.
func IdempotencyCacheKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: idempotency key is required")
	}
	return idempotencyCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedIdempotencyStore) Record(ctx context.Context, attempt core.IdempotencyAttempt) (core.IdempotencyAttempt, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.IdempotencyAttempt{}, false, fmt.Errorf("sqlstore: cached idempotency store is not configured")
	}
	stored, replayed, err := s.base.Record(ctx, attempt)
	if err != nil {
		return core.IdempotencyAttempt{}, false, err
	}

	cacheKey, keyErr := IdempotencyCacheKey(stored.Key)
	if keyErr != nil {
		return core.IdempotencyAttempt{}, false, keyErr
	}
	if deleteErr := s.cache.Delete(ctx, cacheKey); deleteErr != nil {
		return core.IdempotencyAttempt{}, false, deleteErr
	}
	return stored, replayed, nil
}

func (s *CachedIdempotencyStore) GetByKey(ctx context.Context, key string) (core.IdempotencyAttempt, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.IdempotencyAttempt{}, fmt.Errorf("sqlstore: cached idempotency store is not configured")
	}
	cacheKey, err := IdempotencyCacheKey(key)
	if err != nil {
		return core.IdempotencyAttempt{}, err
	}

	attempt, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.IdempotencyAttempt, error) {
		return s.base.GetByKey(ctx, key)
	})
	if err != nil {
		return core.IdempotencyAttempt{}, err
	}
	return attempt, nil
}

func (s *CachedIdempotencyStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.base == nil {
		return 0, fmt.Errorf("sqlstore: cached idempotency store is not configured")
	}
	return s.base.PruneOlderThan(ctx, cutoff)
}

var _ core.IdempotencyStore = (*CachedIdempotencyStore)(nil)
