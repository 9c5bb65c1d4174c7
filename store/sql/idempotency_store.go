package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-payments/core"
)

type IdempotencyStore struct {
	db   *bun.DB
	repo repository.Repository[*idempotencyAttemptRecord]
}

// Record stores a mutating-call attempt keyed by its idempotency key. When
// the key was seen before, the stored attempt is returned with replayed set
// and no new row is written.
func (s *IdempotencyStore) Record(ctx context.Context, attempt core.IdempotencyAttempt) (core.IdempotencyAttempt, bool, error) {
	if s == nil || s.repo == nil || s.db == nil {
		return core.IdempotencyAttempt{}, false, fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	trimmedKey := strings.TrimSpace(attempt.Key)
	if trimmedKey == "" {
		return core.IdempotencyAttempt{}, false, fmt.Errorf("sqlstore: idempotency key is required")
	}
	attempt.Key = trimmedKey
	now := time.Now().UTC()

	var stored core.IdempotencyAttempt
	var replayed bool
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := &idempotencyAttemptRecord{}
		findErr := tx.NewSelect().
			Model(existing).
			Where("key = ?", trimmedKey).
			Limit(1).
			Scan(ctx)
		if findErr == nil {
			stored = existing.toDomain()
			replayed = true
			return nil
		}
		if !errors.Is(findErr, sql.ErrNoRows) {
			return findErr
		}

		record := newIdempotencyAttemptRecord(attempt, now)
		inserted, createErr := s.repo.CreateTx(ctx, tx, record)
		if createErr != nil {
			return createErr
		}
		stored = inserted.toDomain()
		return nil
	})
	if err != nil {
		return core.IdempotencyAttempt{}, false, err
	}
	return stored, replayed, nil
}

func (s *IdempotencyStore) GetByKey(ctx context.Context, key string) (core.IdempotencyAttempt, error) {
	if s == nil || s.repo == nil {
		return core.IdempotencyAttempt{}, fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return core.IdempotencyAttempt{}, fmt.Errorf("sqlstore: idempotency key is required")
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("key", "=", trimmedKey),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.IdempotencyAttempt{}, err
	}
	if len(records) == 0 {
		return core.IdempotencyAttempt{}, fmt.Errorf("sqlstore: idempotency attempt not found for key %q", trimmedKey)
	}
	return records[0].toDomain(), nil
}

// PruneOlderThan deletes attempts created before cutoff and reports how many
// rows were removed.
func (s *IdempotencyStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	result, err := s.db.NewDelete().
		Model((*idempotencyAttemptRecord)(nil)).
		Where("created_at < ?", cutoff.UTC()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return affected, nil
}

var _ core.IdempotencyStore = (*IdempotencyStore)(nil)
