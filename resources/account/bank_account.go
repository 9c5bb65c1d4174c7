package account

import "github.com/goliatone/go-payments/core"

// RegisterTypes installs the account resource shapes into a type registry so
// materialization resolves discriminator tags to typed records.
func RegisterTypes(registry *core.TypeRegistry) error {
	if err := registry.Register(ResourceTag, newAccountRecord); err != nil {
		return err
	}
	if err := registry.Register(BankAccountTag, newBankAccountRecord); err != nil {
		return err
	}
	return nil
}

// newAccountRecord shapes an account record. The legal entity composite may
// only be mutated through its leaves.
func newAccountRecord(tag string) *core.Record {
	record := core.NewRecord(tag, nil)
	record.Protect("legal_entity")
	return record
}

func newBankAccountRecord(tag string) *core.Record {
	return core.NewRecord(tag, nil)
}

// NewBankAccount builds a fresh bank-account record for wholesale sequence
// replacement or external-account creation.
func NewBankAccount(values map[string]any) *core.Record {
	return core.NewRecord(BankAccountTag, values)
}
