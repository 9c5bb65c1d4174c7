package core

import (
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestErrorEnvelope_DefaultsStatusAndTextCode(t *testing.T) {
	err := NewInvalidCredentialsError("core: api key is explicitly empty")

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", richErr.Code)
	}
	if richErr.TextCode != PaymentsErrorInvalidCredentials {
		t.Fatalf("expected invalid-credentials text code, got %q", richErr.TextCode)
	}
}

func TestErrorClassifiers(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		matches func(error) bool
	}{
		{"invalid credentials", NewInvalidCredentialsError("empty key"), IsInvalidCredentials},
		{"immutable assignment", NewImmutableAssignmentError("legal_entity", "account"), IsImmutableAssignment},
		{"attribute not found", NewAttributeNotFoundError("missing", "account"), IsAttributeNotFound},
	}
	for _, tc := range cases {
		if !tc.matches(tc.err) {
			t.Fatalf("%s: classifier rejected its own error %v", tc.name, tc.err)
		}
		if tc.matches(fmt.Errorf("unrelated")) {
			t.Fatalf("%s: classifier matched unrelated error", tc.name)
		}
	}
}

func TestPaymentsErrorMapper_PlainErrors(t *testing.T) {
	mapped := DefaultErrorMapper(fmt.Errorf("api key credential missing"))
	if mapped.TextCode != PaymentsErrorInvalidCredentials {
		t.Fatalf("expected credentials mapping, got %q", mapped.TextCode)
	}

	mapped = DefaultErrorMapper(fmt.Errorf("field name is required"))
	if mapped.TextCode != PaymentsErrorBadInput {
		t.Fatalf("expected bad-input mapping, got %q", mapped.TextCode)
	}
}

func TestImmutableAssignmentError_CarriesFieldMetadata(t *testing.T) {
	err := NewImmutableAssignmentError("legal_entity", "account")

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Metadata["field"] != "legal_entity" {
		t.Fatalf("expected field metadata, got %v", richErr.Metadata)
	}
	if richErr.Metadata["record_tag"] != "account" {
		t.Fatalf("expected record_tag metadata, got %v", richErr.Metadata)
	}
}
