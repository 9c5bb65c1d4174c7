// Package sqlstore persists the client's idempotency ledger through bun
// repositories.
package sqlstore

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-payments/core"
)

type idempotencyAttemptRecord struct {
	bun.BaseModel `bun:"table:payment_idempotency_attempts,alias:pia"`

	ID         string    `bun:"id,pk"`
	Key        string    `bun:"key,notnull,unique"`
	Method     string    `bun:"method,notnull"`
	Path       string    `bun:"path,notnull"`
	StatusCode int       `bun:"status_code"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func newIdempotencyAttemptRecord(attempt core.IdempotencyAttempt, now time.Time) *idempotencyAttemptRecord {
	id := strings.TrimSpace(attempt.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return &idempotencyAttemptRecord{
		ID:         id,
		Key:        strings.TrimSpace(attempt.Key),
		Method:     strings.TrimSpace(attempt.Method),
		Path:       strings.TrimSpace(attempt.Path),
		StatusCode: attempt.StatusCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (r *idempotencyAttemptRecord) toDomain() core.IdempotencyAttempt {
	if r == nil {
		return core.IdempotencyAttempt{}
	}
	return core.IdempotencyAttempt{
		ID:         r.ID,
		Key:        r.Key,
		Method:     r.Method,
		Path:       r.Path,
		StatusCode: r.StatusCode,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
