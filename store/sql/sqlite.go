package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type persistenceConfig struct {
	driver string
	server string
	debug  bool
}

func (c persistenceConfig) GetDebug() bool {
	return c.debug
}

func (c persistenceConfig) GetDriver() string {
	return c.driver
}

func (c persistenceConfig) GetServer() string {
	return c.server
}

func (c persistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c persistenceConfig) GetOtelIdentifier() string {
	return "go-payments"
}

// NewSQLiteClient opens a sqlite-backed persistence client for the ledger.
// Connection count is pinned to one so shared-cache memory databases behave.
func NewSQLiteClient(dsn string) (*persistence.Client, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlstore: sqlite dsn is required")
	}
	sqlDB, err := sql.Open("sqlite3", trimmed)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open sqlite database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	client, err := persistence.New(persistenceConfig{driver: "sqlite3", server: trimmed}, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return client, nil
}
