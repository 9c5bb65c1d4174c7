package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-payments/core"
)

var _ gocmd.Querier[GetIdempotencyAttemptMessage, core.IdempotencyAttempt] = (*GetIdempotencyAttemptQuery)(nil)
