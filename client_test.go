package payments

import (
	"context"
	"testing"
	"time"

	gocmd "github.com/goliatone/go-command"

	paymentscommand "github.com/goliatone/go-payments/command"
	"github.com/goliatone/go-payments/core"
	paymentsquery "github.com/goliatone/go-payments/query"
)

type mapLoader map[string]any

func (l mapLoader) LoadRaw(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(l))
	for key, value := range l {
		out[key] = value
	}
	return out, nil
}

type stubBackend struct {
	requests  []core.APIRequest
	responses []map[string]any
}

func (s *stubBackend) Call(_ context.Context, req core.APIRequest) (map[string]any, error) {
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return map[string]any{}, nil
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func TestNew_ResolvesConfigLayers(t *testing.T) {
	provider := core.NewCfgxConfigProvider(mapLoader{
		"secret_key": "sk_from_config",
		"api_base":   "https://api.config.example.com",
	})

	client, err := New(context.Background(), core.Config{SecretKey: "sk_runtime"},
		WithConfigProvider(provider),
		WithBackend(&stubBackend{}),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cfg := client.Config()
	if cfg.SecretKey != "sk_runtime" {
		t.Fatalf("expected runtime secret key to win, got %q", cfg.SecretKey)
	}
	if cfg.APIBase != "https://api.config.example.com" {
		t.Fatalf("expected config provider api base, got %q", cfg.APIBase)
	}
	if cfg.ConnectBase != "https://connect.stripe.com" {
		t.Fatalf("expected default connect base, got %q", cfg.ConnectBase)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default request timeout, got %s", cfg.RequestTimeout)
	}
}

func TestNew_DefaultsWithoutProvider(t *testing.T) {
	client, err := New(context.Background(), core.Config{SecretKey: "sk_test"},
		WithBackend(&stubBackend{}),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cfg := client.Config()
	if cfg.APIBase != "https://api.stripe.com" {
		t.Fatalf("expected default api base, got %q", cfg.APIBase)
	}
	if client.Accounts() == nil {
		t.Fatalf("expected account client")
	}
}

func TestClient_CommandsWiredToAccountClient(t *testing.T) {
	backend := &stubBackend{
		responses: []map[string]any{{
			"object": "account",
			"id":     "acct_1",
		}},
	}
	client, err := New(context.Background(), core.Config{SecretKey: "sk_test"},
		WithBackend(backend),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	commands := client.Commands()
	collector := gocmd.NewResult[*core.Record]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := commands.RetrieveAccount.Execute(ctx, paymentscommand.RetrieveAccountMessage{}); err != nil {
		t.Fatalf("execute retrieve command: %v", err)
	}

	if len(backend.requests) != 1 {
		t.Fatalf("expected one backend call, got %d", len(backend.requests))
	}
	req := backend.requests[0]
	if req.Method != "GET" || req.Path != "/v1/account" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Key != "sk_test" {
		t.Fatalf("expected configured key, got %q", req.Key)
	}

	record, ok := collector.Load()
	if !ok {
		t.Fatalf("expected retrieved record stored in collector")
	}
	if got, _ := record.GetString("id"); got != "acct_1" {
		t.Fatalf("unexpected account id %q", got)
	}
}

type stubLedger struct {
	attempt core.IdempotencyAttempt
}

func (s stubLedger) Record(_ context.Context, attempt core.IdempotencyAttempt) (core.IdempotencyAttempt, bool, error) {
	return attempt, false, nil
}

func (s stubLedger) GetByKey(context.Context, string) (core.IdempotencyAttempt, error) {
	return s.attempt, nil
}

func (s stubLedger) PruneOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestClient_QueriesRequireLedger(t *testing.T) {
	client, err := New(context.Background(), core.Config{SecretKey: "sk_test"},
		WithBackend(&stubBackend{}),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Queries().GetIdempotencyAttempt != nil {
		t.Fatalf("expected no ledger query without a store")
	}

	ledger := stubLedger{attempt: core.IdempotencyAttempt{Key: "idem_1"}}
	client, err = New(context.Background(), core.Config{SecretKey: "sk_test"},
		WithBackend(&stubBackend{}),
		WithIdempotencyStore(ledger),
	)
	if err != nil {
		t.Fatalf("new client with ledger: %v", err)
	}

	attempt, err := client.Queries().GetIdempotencyAttempt.Query(context.Background(), paymentsquery.GetIdempotencyAttemptMessage{
		IdempotencyKey: "idem_1",
	})
	if err != nil {
		t.Fatalf("query attempt: %v", err)
	}
	if attempt.Key != "idem_1" {
		t.Fatalf("unexpected attempt: %#v", attempt)
	}
}
