// Package account binds the remote account resource: retrieval, dirty-field
// updates, connected-account deauthorization, and the external bank-account
// sub-resource.
package account

import (
	"context"
	"net/http"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"

	"github.com/goliatone/go-payments/core"
)

const (
	ResourceTag    = "account"
	BankAccountTag = "bank_account"

	singularPath    = "/v1/account"
	collectionPath  = "/v1/accounts"
	deauthorizePath = "/oauth/deauthorize"
)

type Client struct {
	config       core.Config
	backend      core.Backend
	logger       core.Logger
	metrics      core.MetricsRecorder
	materializer *core.Materializer
	ledger       core.IdempotencyStore
}

type Option func(*Client)

func WithLogger(logger core.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(c *Client) {
		c.metrics = recorder
	}
}

func WithMaterializer(materializer *core.Materializer) Option {
	return func(c *Client) {
		c.materializer = materializer
	}
}

// WithIdempotencyLedger records mutating calls so replays of an idempotency
// key can be detected and audited.
func WithIdempotencyLedger(ledger core.IdempotencyStore) Option {
	return func(c *Client) {
		c.ledger = ledger
	}
}

func New(cfg core.Config, backend core.Backend, opts ...Option) (*Client, error) {
	if backend == nil {
		return nil, core.NewBadInputError("account: backend is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		config:  cfg,
		backend: backend,
		metrics: core.NopMetricsRecorder{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(client)
	}
	if client.logger == nil {
		_, logger := glog.Resolve("payments.account", nil, nil)
		client.logger = glog.Ensure(logger)
	}
	if client.materializer == nil {
		registry := core.NewTypeRegistry()
		if err := RegisterTypes(registry); err != nil {
			return nil, err
		}
		client.materializer = core.NewMaterializer(registry)
	}
	return client, nil
}

// CallOption adjusts one API call. Credentials supplied explicitly through
// WithKey must be non-empty; an omitted key falls back to the configured
// default.
type CallOption func(*callSettings)

type callSettings struct {
	key            *string
	idempotencyKey string
}

func WithKey(key string) CallOption {
	return func(s *callSettings) {
		s.key = &key
	}
}

func WithIdempotencyKey(key string) CallOption {
	return func(s *callSettings) {
		s.idempotencyKey = strings.TrimSpace(key)
	}
}

func applyCallOptions(opts []CallOption) callSettings {
	settings := callSettings{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&settings)
	}
	return settings
}

// Retrieve fetches an account by id, or the current account when id is
// empty.
func (c *Client) Retrieve(ctx context.Context, id string, opts ...CallOption) (*core.Record, error) {
	settings := applyCallOptions(opts)
	key, err := c.resolveKey(settings)
	if err != nil {
		return nil, err
	}

	path := singularPath
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		path = collectionPath + "/" + trimmed
	}

	startedAt := time.Now().UTC()
	data, err := c.backend.Call(ctx, core.APIRequest{
		Method:  http.MethodGet,
		BaseURL: c.config.APIBase,
		Path:    path,
		Key:     key,
		Timeout: c.config.RequestTimeout,
	})
	c.observe(ctx, startedAt, "account.retrieve", err, map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	return c.materializer.Materialize(data), nil
}

// Save posts the record's dirty fields to its identity path and
// re-materializes the response over the record, clearing the dirty set.
func (c *Client) Save(ctx context.Context, record *core.Record, opts ...CallOption) (*core.Record, error) {
	if record == nil {
		return nil, core.NewBadInputError("account: record is required")
	}
	settings := applyCallOptions(opts)
	key, err := c.resolveKey(settings)
	if err != nil {
		return nil, err
	}

	path := singularPath
	if record.Has("id") {
		if id, idErr := record.GetString("id"); idErr == nil && strings.TrimSpace(id) != "" {
			path = collectionPath + "/" + strings.TrimSpace(id)
		}
	}

	idempotencyKey := settings.idempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	c.recordAttempt(ctx, idempotencyKey, http.MethodPost, path)

	params := core.ChangedParams(record)
	startedAt := time.Now().UTC()
	data, err := c.backend.Call(ctx, core.APIRequest{
		Method:         http.MethodPost,
		BaseURL:        c.config.APIBase,
		Path:           path,
		Params:         params,
		Key:            key,
		IdempotencyKey: idempotencyKey,
		Timeout:        c.config.RequestTimeout,
	})
	c.observe(ctx, startedAt, "account.save", err, map[string]any{
		"path":        path,
		"dirty_count": len(params),
	})
	if err != nil {
		return nil, err
	}
	c.materializer.Refresh(record, data)
	return record, nil
}

// Deauthorize revokes a connected account's platform access. The revocation
// endpoint lives on the connect base, outside the resource's CRUD paths.
func (c *Client) Deauthorize(ctx context.Context, accountID string, opts ...CallOption) (*core.Record, error) {
	trimmedAccount := strings.TrimSpace(accountID)
	if trimmedAccount == "" {
		return nil, core.NewBadInputError("account: account id is required")
	}
	clientID := strings.TrimSpace(c.config.ClientID)
	if clientID == "" {
		return nil, core.NewBadInputError("account: client_id is required to deauthorize")
	}
	settings := applyCallOptions(opts)
	key, err := c.resolveKey(settings)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	data, err := c.backend.Call(ctx, core.APIRequest{
		Method:  http.MethodPost,
		BaseURL: c.config.ConnectBase,
		Path:    deauthorizePath,
		Params: map[string]any{
			"client_id":      clientID,
			"stripe_user_id": trimmedAccount,
		},
		Key:     key,
		Timeout: c.config.RequestTimeout,
	})
	c.observe(ctx, startedAt, "account.deauthorize", err, map[string]any{"account_id": trimmedAccount})
	if err != nil {
		return nil, err
	}
	return c.materializer.Materialize(data), nil
}

// CreateExternalAccount posts params to the account's external-accounts
// collection and materializes the created sub-resource.
func (c *Client) CreateExternalAccount(ctx context.Context, accountID string, params map[string]any, opts ...CallOption) (*core.Record, error) {
	path, err := externalAccountsPath(accountID)
	if err != nil {
		return nil, err
	}
	settings := applyCallOptions(opts)
	key, keyErr := c.resolveKey(settings)
	if keyErr != nil {
		return nil, keyErr
	}

	idempotencyKey := settings.idempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	c.recordAttempt(ctx, idempotencyKey, http.MethodPost, path)

	startedAt := time.Now().UTC()
	data, err := c.backend.Call(ctx, core.APIRequest{
		Method:         http.MethodPost,
		BaseURL:        c.config.APIBase,
		Path:           path,
		Params:         params,
		Key:            key,
		IdempotencyKey: idempotencyKey,
		Timeout:        c.config.RequestTimeout,
	})
	c.observe(ctx, startedAt, "account.external_accounts.create", err, map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	return c.materializer.Materialize(data), nil
}

// ListExternalAccounts reads the account's external-accounts collection.
// Elements materialize into typed records per their discriminator tag.
func (c *Client) ListExternalAccounts(ctx context.Context, accountID string, params map[string]any, opts ...CallOption) (*core.Record, error) {
	path, err := externalAccountsPath(accountID)
	if err != nil {
		return nil, err
	}
	settings := applyCallOptions(opts)
	key, keyErr := c.resolveKey(settings)
	if keyErr != nil {
		return nil, keyErr
	}

	startedAt := time.Now().UTC()
	data, err := c.backend.Call(ctx, core.APIRequest{
		Method:  http.MethodGet,
		BaseURL: c.config.APIBase,
		Path:    path,
		Params:  params,
		Key:     key,
		Timeout: c.config.RequestTimeout,
	})
	c.observe(ctx, startedAt, "account.external_accounts.list", err, map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	return c.materializer.Materialize(data), nil
}

func externalAccountsPath(accountID string) (string, error) {
	trimmed := strings.TrimSpace(accountID)
	if trimmed == "" {
		return "", core.NewBadInputError("account: account id is required")
	}
	return collectionPath + "/" + trimmed + "/external_accounts", nil
}

func (c *Client) resolveKey(settings callSettings) (string, error) {
	if settings.key != nil {
		trimmed := strings.TrimSpace(*settings.key)
		if trimmed == "" {
			return "", core.NewInvalidCredentialsError("account: api key was explicitly supplied empty")
		}
		return trimmed, nil
	}
	trimmed := strings.TrimSpace(c.config.SecretKey)
	if trimmed == "" {
		return "", core.NewInvalidCredentialsError("account: no api key supplied and no default secret key configured")
	}
	return trimmed, nil
}

func (c *Client) recordAttempt(ctx context.Context, key string, method string, path string) {
	if c == nil || c.ledger == nil {
		return
	}
	_, replayed, err := c.ledger.Record(ctx, core.IdempotencyAttempt{
		Key:    key,
		Method: method,
		Path:   path,
	})
	if err != nil {
		c.logError(ctx, "account: record idempotency attempt failed", map[string]any{
			"idempotency_key": key,
			"error":           err.Error(),
		})
		return
	}
	if replayed {
		c.logInfo(ctx, "account: idempotency key replayed", map[string]any{
			"idempotency_key": key,
			"path":            path,
		})
	}
}

func (c *Client) observe(ctx context.Context, startedAt time.Time, operation string, err error, fields map[string]any) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	tags := map[string]string{"operation": operation, "status": status}
	if c.metrics != nil {
		c.metrics.IncCounter(ctx, "payments."+operation+".total", 1, tags)
		c.metrics.ObserveHistogram(ctx, "payments."+operation+".duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)
	}

	logFields := map[string]any{"status": status, "duration_ms": time.Since(startedAt).Milliseconds()}
	for key, value := range fields {
		logFields[key] = value
	}
	if err != nil {
		logFields["error"] = err.Error()
		c.logError(ctx, operation+" failed", logFields)
		return
	}
	c.logInfo(ctx, operation+" succeeded", logFields)
}

func (c *Client) logInfo(ctx context.Context, message string, fields map[string]any) {
	c.logWithLevel(ctx, "info", message, fields)
}

func (c *Client) logError(ctx context.Context, message string, fields map[string]any) {
	c.logWithLevel(ctx, "error", message, fields)
}

func (c *Client) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	var args []any
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	} else {
		args = make([]any, 0, len(fields)*2)
		for key, value := range fields {
			args = append(args, key, value)
		}
	}
	switch level {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}
