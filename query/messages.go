package query

import "strings"

const TypeGetIdempotencyAttempt = "payments.query.idempotency_attempt.get"

type GetIdempotencyAttemptMessage struct {
	IdempotencyKey string
}

func (GetIdempotencyAttemptMessage) Type() string { return TypeGetIdempotencyAttempt }

func (m GetIdempotencyAttemptMessage) Validate() error {
	if strings.TrimSpace(m.IdempotencyKey) == "" {
		return queryValidationError("idempotency_key", "idempotency key is required")
	}
	return nil
}
