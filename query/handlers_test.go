package query

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-payments/core"
)

type stubAttemptReader struct {
	getByKeyFn func(ctx context.Context, key string) (core.IdempotencyAttempt, error)
}

func (s stubAttemptReader) GetByKey(ctx context.Context, key string) (core.IdempotencyAttempt, error) {
	return s.getByKeyFn(ctx, key)
}

func TestGetIdempotencyAttemptQuery_DelegatesToReader(t *testing.T) {
	expected := core.IdempotencyAttempt{Key: "idem_1", Method: "POST", Path: "/v1/account"}
	called := false

	reader := stubAttemptReader{
		getByKeyFn: func(_ context.Context, key string) (core.IdempotencyAttempt, error) {
			called = true
			if key != "idem_1" {
				t.Fatalf("expected key idem_1, got %q", key)
			}
			return expected, nil
		},
	}

	attempt, err := NewGetIdempotencyAttemptQuery(reader).Query(context.Background(), GetIdempotencyAttemptMessage{
		IdempotencyKey: "idem_1",
	})
	if err != nil {
		t.Fatalf("query attempt: %v", err)
	}
	if !called {
		t.Fatalf("expected reader invocation")
	}
	if attempt.Path != expected.Path {
		t.Fatalf("unexpected attempt: %#v", attempt)
	}
}

func TestGetIdempotencyAttemptQuery_NilReaderReturnsRichError(t *testing.T) {
	var q *GetIdempotencyAttemptQuery
	_, err := q.Query(context.Background(), GetIdempotencyAttemptMessage{IdempotencyKey: "idem_1"})
	if err == nil {
		t.Fatalf("expected dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}

func TestGetIdempotencyAttemptMessage_Validate(t *testing.T) {
	if err := (GetIdempotencyAttemptMessage{}).Validate(); err == nil {
		t.Fatalf("expected validation error for empty key")
	}
	if err := (GetIdempotencyAttemptMessage{IdempotencyKey: "idem_1"}).Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
