package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func idempotencyAttemptHandlers() repository.ModelHandlers[*idempotencyAttemptRecord] {
	return repository.ModelHandlers[*idempotencyAttemptRecord]{
		NewRecord: func() *idempotencyAttemptRecord {
			return &idempotencyAttemptRecord{}
		},
		GetID: func(record *idempotencyAttemptRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *idempotencyAttemptRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *idempotencyAttemptRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
