package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// NewPostgresClient opens a postgres-backed persistence client for the
// ledger.
func NewPostgresClient(dsn string) (*persistence.Client, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlstore: postgres dsn is required")
	}
	sqlDB, err := sql.Open("postgres", trimmed)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open postgres database: %w", err)
	}

	client, err := persistence.New(persistenceConfig{driver: "postgres", server: trimmed}, sqlDB, pgdialect.New())
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return client, nil
}
