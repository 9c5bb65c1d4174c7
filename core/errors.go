package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	PaymentsErrorBadInput           = "PAYMENTS_BAD_INPUT"
	PaymentsErrorInvalidCredentials = "PAYMENTS_INVALID_CREDENTIALS"
	PaymentsErrorImmutableField     = "PAYMENTS_IMMUTABLE_FIELD"
	PaymentsErrorAttributeNotFound  = "PAYMENTS_ATTRIBUTE_NOT_FOUND"
	PaymentsErrorAPIFailure         = "PAYMENTS_API_FAILURE"
	PaymentsErrorInternal           = "PAYMENTS_INTERNAL_ERROR"
)

// NewBadInputError reports locally detected invalid arguments.
func NewBadInputError(message string) error {
	return newPaymentsError(message, goerrors.CategoryBadInput, PaymentsErrorBadInput)
}

// NewInvalidCredentialsError reports an explicitly empty credential. An
// omitted credential falls back to the configured default and never reaches
// this path.
func NewInvalidCredentialsError(message string) error {
	return newPaymentsError(message, goerrors.CategoryAuth, PaymentsErrorInvalidCredentials)
}

// NewImmutableAssignmentError reports a wholesale assignment to a protected
// composite field.
func NewImmutableAssignmentError(field string, tag string) error {
	message := fmt.Sprintf("core: field %q cannot be replaced wholesale; assign its leaf fields instead", field)
	err := newPaymentsError(message, goerrors.CategoryValidation, PaymentsErrorImmutableField)
	return withFieldMetadata(err, field, tag)
}

// NewAttributeNotFoundError reports a read of a field absent from both the
// loaded snapshot and the mutation set.
func NewAttributeNotFoundError(field string, tag string) error {
	message := fmt.Sprintf("core: attribute %q is not present on the record", field)
	err := newPaymentsError(message, goerrors.CategoryNotFound, PaymentsErrorAttributeNotFound)
	return withFieldMetadata(err, field, tag)
}

// IsInvalidCredentials reports whether err carries the invalid-credentials
// text code.
func IsInvalidCredentials(err error) bool {
	return hasTextCode(err, PaymentsErrorInvalidCredentials)
}

// IsImmutableAssignment reports whether err carries the immutable-field text
// code.
func IsImmutableAssignment(err error) bool {
	return hasTextCode(err, PaymentsErrorImmutableField)
}

// IsAttributeNotFound reports whether err carries the attribute-not-found
// text code.
func IsAttributeNotFound(err error) bool {
	return hasTextCode(err, PaymentsErrorAttributeNotFound)
}

func hasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}

func newPaymentsError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensurePaymentsErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func withFieldMetadata(err *goerrors.Error, field string, tag string) *goerrors.Error {
	metadata := map[string]any{"field": field}
	if strings.TrimSpace(tag) != "" {
		metadata["record_tag"] = tag
	}
	err.WithMetadata(metadata)
	return err
}

func paymentsErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensurePaymentsErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "credential") || strings.Contains(msg, "api key"):
		return newPaymentsError(err.Error(), goerrors.CategoryAuth, PaymentsErrorInvalidCredentials)
	case strings.Contains(msg, "attribute") && strings.Contains(msg, "not present"):
		return newPaymentsError(err.Error(), goerrors.CategoryNotFound, PaymentsErrorAttributeNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newPaymentsError(err.Error(), goerrors.CategoryBadInput, PaymentsErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensurePaymentsErrorEnvelope(mapped)
}

func ensurePaymentsErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = paymentsHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultPaymentsTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultPaymentsTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return PaymentsErrorBadInput
	case goerrors.CategoryNotFound:
		return PaymentsErrorAttributeNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return PaymentsErrorInvalidCredentials
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return PaymentsErrorAPIFailure
	default:
		return PaymentsErrorInternal
	}
}

func paymentsHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
