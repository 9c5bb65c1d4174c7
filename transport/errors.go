package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-payments/core"
)

// errorEnvelope mirrors the remote API's error body shape:
// {"error": {"type": ..., "code": ..., "param": ..., "message": ...}}.
type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Param   string `json:"param"`
		Message string `json:"message"`
	} `json:"error"`
}

func remoteAPIError(statusCode int, payload []byte) error {
	category := goerrors.CategoryExternal
	switch statusCode {
	case http.StatusUnauthorized:
		category = goerrors.CategoryAuth
	case http.StatusForbidden:
		category = goerrors.CategoryAuthz
	case http.StatusTooManyRequests:
		category = goerrors.CategoryRateLimit
	}

	message := fmt.Sprintf("transport: remote api returned status %d", statusCode)
	metadata := map[string]any{"status_code": statusCode}

	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil {
		if trimmed := strings.TrimSpace(envelope.Error.Message); trimmed != "" {
			message = trimmed
		}
		if trimmed := strings.TrimSpace(envelope.Error.Type); trimmed != "" {
			metadata["error_type"] = trimmed
		}
		if trimmed := strings.TrimSpace(envelope.Error.Code); trimmed != "" {
			metadata["error_code"] = trimmed
		}
		if trimmed := strings.TrimSpace(envelope.Error.Param); trimmed != "" {
			metadata["error_param"] = trimmed
		}
	}

	return goerrors.New(message, category).
		WithCode(statusCode).
		WithTextCode(core.PaymentsErrorAPIFailure).
		WithMetadata(metadata)
}

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.PaymentsErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return core.PaymentsErrorInvalidCredentials
	case goerrors.CategoryExternal, goerrors.CategoryOperation, goerrors.CategoryRateLimit:
		return core.PaymentsErrorAPIFailure
	default:
		return core.PaymentsErrorInternal
	}
}
