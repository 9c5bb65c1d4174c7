package sqlstore

import (
	"context"
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-payments/core"
)

type RepositoryFactory struct {
	db *bun.DB

	idempotencyStore *IdempotencyStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) error {
	if f == nil {
		return fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return err
		}
		f.db = db
	}
	if f.idempotencyStore != nil {
		return nil
	}
	return f.initStores()
}

func (f *RepositoryFactory) IdempotencyStore() core.IdempotencyStore {
	if f == nil || f.idempotencyStore == nil {
		return nil
	}
	return f.idempotencyStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

// EnsureSchema creates the ledger table when it does not exist yet. Callers
// owning real migration pipelines can skip this and manage DDL themselves.
func (f *RepositoryFactory) EnsureSchema(ctx context.Context) error {
	if f == nil || f.db == nil {
		return fmt.Errorf("sqlstore: repository factory is not configured")
	}
	_, err := f.db.NewCreateTable().
		Model((*idempotencyAttemptRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (f *RepositoryFactory) initStores() error {
	attemptRepo := repository.NewRepository[*idempotencyAttemptRecord](f.db, idempotencyAttemptHandlers())
	if validator, ok := attemptRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid idempotency repository wiring: %w", err)
		}
	}
	f.idempotencyStore = &IdempotencyStore{db: f.db, repo: attemptRepo}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned a nil db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client %T", candidate)
	}
}
