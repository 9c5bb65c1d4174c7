package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// APIRequest describes one call against the remote API. Params carry the
// already-serialized nested parameter mapping; the backend owns the wire
// encoding.
type APIRequest struct {
	Method         string
	BaseURL        string
	Path           string
	Params         map[string]any
	Key            string
	IdempotencyKey string
	Timeout        time.Duration
}

// Backend executes API requests and returns the decoded response payload.
// Transport-level failures surface unmodified; the caller does not retry.
type Backend interface {
	Call(ctx context.Context, req APIRequest) (map[string]any, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// IdempotencyAttempt is one recorded mutating call keyed by its idempotency
// key.
type IdempotencyAttempt struct {
	ID         string
	Key        string
	Method     string
	Path       string
	StatusCode int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IdempotencyStore records mutating calls so replays of the same key can be
// detected. Record returns the stored attempt and whether the key was seen
// before.
type IdempotencyStore interface {
	Record(ctx context.Context, attempt IdempotencyAttempt) (IdempotencyAttempt, bool, error)
	GetByKey(ctx context.Context, key string) (IdempotencyAttempt, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}
