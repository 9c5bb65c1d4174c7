// Package query holds the read-side handlers: lookups against the local
// idempotency ledger, paired with the mutating handlers in command.
package query

import (
	"context"

	"github.com/goliatone/go-payments/core"
)

// IdempotencyAttemptReader is the read slice of the idempotency ledger.
type IdempotencyAttemptReader interface {
	GetByKey(ctx context.Context, key string) (core.IdempotencyAttempt, error)
}

type GetIdempotencyAttemptQuery struct {
	reader IdempotencyAttemptReader
}

func NewGetIdempotencyAttemptQuery(reader IdempotencyAttemptReader) *GetIdempotencyAttemptQuery {
	return &GetIdempotencyAttemptQuery{reader: reader}
}

func (q *GetIdempotencyAttemptQuery) Query(ctx context.Context, msg GetIdempotencyAttemptMessage) (core.IdempotencyAttempt, error) {
	if q == nil || q.reader == nil {
		return core.IdempotencyAttempt{}, queryDependencyError("query: idempotency attempt reader is required")
	}
	return q.reader.GetByKey(ctx, msg.IdempotencyKey)
}
