// Package transport implements the HTTP backend the resource clients call
// through. It owns the form encoding of request parameters, bearer
// authentication, and decoding of response payloads and error envelopes.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-payments/core"
)

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type RESTBackend struct {
	Client               HTTPDoer
	UserAgent            string
	MaxResponseBodyBytes int64
}

func NewRESTBackend(client HTTPDoer) *RESTBackend {
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}
	return &RESTBackend{
		Client:               client,
		UserAgent:            "go-payments/1.0",
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

func (b *RESTBackend) Call(ctx context.Context, req core.APIRequest) (map[string]any, error) {
	if b == nil || b.Client == nil {
		return nil, transportError(
			"transport: rest backend requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	requestURL, err := buildRequestURL(req.BaseURL, req.Path)
	if err != nil {
		return nil, err
	}

	form := core.EncodeFormValues(req.Params)
	var body io.Reader
	if method == http.MethodGet || method == http.MethodDelete {
		requestURL.RawQuery = form.Encode()
	} else if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}

	requestCtx := ctx
	cancel := func() {}
	if req.Timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, method, requestURL.String(), body)
	if err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create http request",
			http.StatusBadRequest,
			map[string]any{"method": method, "url": requestURL.String()},
		)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if strings.TrimSpace(req.Key) != "" {
		httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(req.Key))
	}
	if strings.TrimSpace(req.IdempotencyKey) != "" {
		httpReq.Header.Set("Idempotency-Key", strings.TrimSpace(req.IdempotencyKey))
	}
	if strings.TrimSpace(b.UserAgent) != "" {
		httpReq.Header.Set("User-Agent", strings.TrimSpace(b.UserAgent))
	}

	httpRes, err := b.Client.Do(httpReq)
	if err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute http request",
			http.StatusBadGateway,
			map[string]any{"method": method, "url": requestURL.String()},
		)
	}
	defer httpRes.Body.Close()

	maxBodyBytes := b.MaxResponseBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultResponseBodyLimit
	}
	payload, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read response body",
			http.StatusBadGateway,
			map[string]any{"status_code": httpRes.StatusCode},
		)
	}
	if int64(len(payload)) > maxBodyBytes {
		return nil, transportError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{"status_code": httpRes.StatusCode, "response_limit_b": maxBodyBytes},
		)
	}

	if httpRes.StatusCode >= http.StatusBadRequest {
		return nil, remoteAPIError(httpRes.StatusCode, payload)
	}

	return decodePayload(payload, httpRes.StatusCode)
}

func buildRequestURL(base string, path string) (*url.URL, error) {
	trimmedBase := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmedBase == "" {
		return nil, transportError(
			"transport: request base url is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			nil,
		)
	}
	trimmedPath := strings.TrimSpace(path)
	if !strings.HasPrefix(trimmedPath, "/") {
		trimmedPath = "/" + trimmedPath
	}
	parsed, err := url.Parse(trimmedBase + trimmedPath)
	if err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid request url",
			http.StatusBadRequest,
			map[string]any{"base": trimmedBase, "path": trimmedPath},
		)
	}
	return parsed, nil
}

func decodePayload(payload []byte, statusCode int) (map[string]any, error) {
	if len(payload) == 0 {
		return map[string]any{}, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: decode response payload",
			http.StatusBadGateway,
			map[string]any{"status_code": statusCode},
		)
	}
	return decoded, nil
}

var _ core.Backend = (*RESTBackend)(nil)
