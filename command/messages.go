package command

import (
	"strings"

	"github.com/goliatone/go-payments/core"
)

const (
	TypeRetrieveAccount       = "payments.command.account.retrieve"
	TypeSaveAccount           = "payments.command.account.save"
	TypeDeauthorizeAccount    = "payments.command.account.deauthorize"
	TypeCreateExternalAccount = "payments.command.account.external_account.create"
	TypeListExternalAccounts  = "payments.command.account.external_account.list"
)

// RetrieveAccountMessage fetches an account. An empty AccountID targets the
// account owned by the credentials in use.
type RetrieveAccountMessage struct {
	AccountID string
}

func (RetrieveAccountMessage) Type() string { return TypeRetrieveAccount }

func (RetrieveAccountMessage) Validate() error { return nil }

type SaveAccountMessage struct {
	Record *core.Record
}

func (SaveAccountMessage) Type() string { return TypeSaveAccount }

func (m SaveAccountMessage) Validate() error {
	if m.Record == nil {
		return commandValidationError("record", "account record is required")
	}
	return nil
}

type DeauthorizeAccountMessage struct {
	AccountID string
}

func (DeauthorizeAccountMessage) Type() string { return TypeDeauthorizeAccount }

func (m DeauthorizeAccountMessage) Validate() error {
	if strings.TrimSpace(m.AccountID) == "" {
		return commandValidationError("account_id", "account id is required")
	}
	return nil
}

type CreateExternalAccountMessage struct {
	AccountID string
	Params    map[string]any
}

func (CreateExternalAccountMessage) Type() string { return TypeCreateExternalAccount }

func (m CreateExternalAccountMessage) Validate() error {
	if strings.TrimSpace(m.AccountID) == "" {
		return commandValidationError("account_id", "account id is required")
	}
	if len(m.Params) == 0 {
		return commandValidationError("params", "external account params are required")
	}
	return nil
}

type ListExternalAccountsMessage struct {
	AccountID string
	Params    map[string]any
}

func (ListExternalAccountsMessage) Type() string { return TypeListExternalAccounts }

func (m ListExternalAccountsMessage) Validate() error {
	if strings.TrimSpace(m.AccountID) == "" {
		return commandValidationError("account_id", "account id is required")
	}
	return nil
}
