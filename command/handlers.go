package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-payments/core"
	"github.com/goliatone/go-payments/resources/account"
)

// AccountService is the slice of the account client the command layer
// depends on. *account.Client satisfies it.
type AccountService interface {
	Retrieve(ctx context.Context, id string, opts ...account.CallOption) (*core.Record, error)
	Save(ctx context.Context, record *core.Record, opts ...account.CallOption) (*core.Record, error)
	Deauthorize(ctx context.Context, accountID string, opts ...account.CallOption) (*core.Record, error)
	CreateExternalAccount(ctx context.Context, accountID string, params map[string]any, opts ...account.CallOption) (*core.Record, error)
	ListExternalAccounts(ctx context.Context, accountID string, params map[string]any, opts ...account.CallOption) (*core.Record, error)
}

type RetrieveAccountCommand struct {
	service AccountService
}

func NewRetrieveAccountCommand(service AccountService) *RetrieveAccountCommand {
	return &RetrieveAccountCommand{service: service}
}

func (c *RetrieveAccountCommand) Execute(ctx context.Context, msg RetrieveAccountMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account service is required")
	}
	out, err := c.service.Retrieve(ctx, msg.AccountID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SaveAccountCommand struct {
	service AccountService
}

func NewSaveAccountCommand(service AccountService) *SaveAccountCommand {
	return &SaveAccountCommand{service: service}
}

func (c *SaveAccountCommand) Execute(ctx context.Context, msg SaveAccountMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account service is required")
	}
	out, err := c.service.Save(ctx, msg.Record)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeauthorizeAccountCommand struct {
	service AccountService
}

func NewDeauthorizeAccountCommand(service AccountService) *DeauthorizeAccountCommand {
	return &DeauthorizeAccountCommand{service: service}
}

func (c *DeauthorizeAccountCommand) Execute(ctx context.Context, msg DeauthorizeAccountMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account service is required")
	}
	out, err := c.service.Deauthorize(ctx, msg.AccountID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateExternalAccountCommand struct {
	service AccountService
}

func NewCreateExternalAccountCommand(service AccountService) *CreateExternalAccountCommand {
	return &CreateExternalAccountCommand{service: service}
}

func (c *CreateExternalAccountCommand) Execute(ctx context.Context, msg CreateExternalAccountMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account service is required")
	}
	out, err := c.service.CreateExternalAccount(ctx, msg.AccountID, msg.Params)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ListExternalAccountsCommand struct {
	service AccountService
}

func NewListExternalAccountsCommand(service AccountService) *ListExternalAccountsCommand {
	return &ListExternalAccountsCommand{service: service}
}

func (c *ListExternalAccountsCommand) Execute(ctx context.Context, msg ListExternalAccountsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account service is required")
	}
	out, err := c.service.ListExternalAccounts(ctx, msg.AccountID, msg.Params)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
