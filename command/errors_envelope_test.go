package command

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-payments/core"
)

func TestSaveAccountMessage_ValidateReturnsRichError(t *testing.T) {
	err := (SaveAccountMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.PaymentsErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.PaymentsErrorBadInput, rich.TextCode)
	}
}

func TestRetrieveAccountCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *RetrieveAccountCommand
	err := cmd.Execute(context.Background(), RetrieveAccountMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.PaymentsErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.PaymentsErrorInternal, rich.TextCode)
	}
}
