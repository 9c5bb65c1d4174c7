// Package payments is the composition root for the payment API client:
// it resolves configuration, wires the REST backend, and exposes the
// account resource client plus command handlers over it.
package payments

import "github.com/goliatone/go-payments/core"

type Config = core.Config

type Record = core.Record

type Backend = core.Backend

type APIRequest = core.APIRequest

type MetricsRecorder = core.MetricsRecorder

type IdempotencyStore = core.IdempotencyStore

type IdempotencyAttempt = core.IdempotencyAttempt

type ConfigProvider = core.ConfigProvider

type OptionsResolver = core.OptionsResolver

var (
	NewRecord = core.NewRecord

	IsInvalidCredentials  = core.IsInvalidCredentials
	IsImmutableAssignment = core.IsImmutableAssignment
	IsAttributeNotFound   = core.IsAttributeNotFound
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}
