package payments

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"

	paymentscommand "github.com/goliatone/go-payments/command"
	"github.com/goliatone/go-payments/core"
	paymentsquery "github.com/goliatone/go-payments/query"
	"github.com/goliatone/go-payments/resources/account"
	"github.com/goliatone/go-payments/transport"
)

// Commands bundles the go-command handlers wired over the account client.
type Commands struct {
	RetrieveAccount       *paymentscommand.RetrieveAccountCommand
	SaveAccount           *paymentscommand.SaveAccountCommand
	DeauthorizeAccount    *paymentscommand.DeauthorizeAccountCommand
	CreateExternalAccount *paymentscommand.CreateExternalAccountCommand
	ListExternalAccounts  *paymentscommand.ListExternalAccountsCommand
}

// Queries bundles the read-side handlers. GetIdempotencyAttempt is only
// wired when an idempotency store was configured.
type Queries struct {
	GetIdempotencyAttempt *paymentsquery.GetIdempotencyAttemptQuery
}

type Client struct {
	config   core.Config
	logger   core.Logger
	backend  core.Backend
	accounts *account.Client
	commands Commands
	queries  Queries
}

type Option func(*clientOptions)

type clientOptions struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metrics         core.MetricsRecorder
	backend         core.Backend
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	ledger          core.IdempotencyStore
	materializer    *core.Materializer
}

func WithLogger(logger core.Logger) Option {
	return func(options *clientOptions) {
		options.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(options *clientOptions) {
		options.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(options *clientOptions) {
		options.metrics = recorder
	}
}

// WithBackend swaps the transport used for API calls. Tests use this to
// point the client at a stub.
func WithBackend(backend core.Backend) Option {
	return func(options *clientOptions) {
		options.backend = backend
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(options *clientOptions) {
		options.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(options *clientOptions) {
		options.optionsResolver = resolver
	}
}

func WithIdempotencyStore(store core.IdempotencyStore) Option {
	return func(options *clientOptions) {
		options.ledger = store
	}
}

func WithMaterializer(materializer *core.Materializer) Option {
	return func(options *clientOptions) {
		options.materializer = materializer
	}
}

// New resolves configuration and builds a ready client. Configuration merges
// three layers with later layers winning: library defaults, values from the
// config provider, and the runtime overrides passed here.
func New(ctx context.Context, runtime core.Config, opts ...Option) (*Client, error) {
	options := clientOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	defaults := core.DefaultConfig()
	loaded := defaults
	if options.configProvider != nil {
		var err error
		loaded, err = options.configProvider.Load(ctx, defaults)
		if err != nil {
			return nil, err
		}
	}

	resolver := options.optionsResolver
	if resolver == nil {
		resolver = core.GoOptionsResolver{}
	}
	cfg, err := resolver.Resolve(defaults, loaded, runtime)
	if err != nil {
		return nil, err
	}

	logger := options.logger
	if logger == nil {
		_, logger = glog.Resolve("payments", options.loggerProvider, nil)
	}
	logger = glog.Ensure(logger)

	backend := options.backend
	if backend == nil {
		backend = transport.NewRESTBackend(nil)
	}

	accountOpts := []account.Option{
		account.WithLogger(logger),
	}
	if options.metrics != nil {
		accountOpts = append(accountOpts, account.WithMetricsRecorder(options.metrics))
	}
	if options.materializer != nil {
		accountOpts = append(accountOpts, account.WithMaterializer(options.materializer))
	}
	if options.ledger != nil {
		accountOpts = append(accountOpts, account.WithIdempotencyLedger(options.ledger))
	}

	accounts, err := account.New(cfg, backend, accountOpts...)
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:   cfg,
		logger:   logger,
		backend:  backend,
		accounts: accounts,
	}
	client.commands = Commands{
		RetrieveAccount:       paymentscommand.NewRetrieveAccountCommand(accounts),
		SaveAccount:           paymentscommand.NewSaveAccountCommand(accounts),
		DeauthorizeAccount:    paymentscommand.NewDeauthorizeAccountCommand(accounts),
		CreateExternalAccount: paymentscommand.NewCreateExternalAccountCommand(accounts),
		ListExternalAccounts:  paymentscommand.NewListExternalAccountsCommand(accounts),
	}
	if options.ledger != nil {
		client.queries = Queries{
			GetIdempotencyAttempt: paymentsquery.NewGetIdempotencyAttemptQuery(options.ledger),
		}
	}
	return client, nil
}

func (c *Client) Accounts() *account.Client {
	if c == nil {
		return nil
	}
	return c.accounts
}

func (c *Client) Commands() Commands {
	if c == nil {
		return Commands{}
	}
	return c.commands
}

func (c *Client) Queries() Queries {
	if c == nil {
		return Queries{}
	}
	return c.queries
}

func (c *Client) Config() core.Config {
	if c == nil {
		return core.Config{}
	}
	return c.config
}

func (c *Client) Backend() core.Backend {
	if c == nil {
		return nil
	}
	return c.backend
}
