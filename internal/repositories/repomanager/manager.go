// Package repomanager vends storage-specific repository implementations and
// exposes a schema migration hook for each supported backend.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/repositories/categories"
	"github.com/dmitrijs2005/finanzas/internal/repositories/movements"
	"github.com/dmitrijs2005/finanzas/internal/repositories/profiles"
)

// Supported storage backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Categories(db dbx.DBTX) categories.Repository
	Movements(db dbx.DBTX) movements.Repository
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to the configured backend, checks the connection and
// applies migrations. dsn is a pgx connection string or a SQLite file path.
func Open(ctx context.Context, backend, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		m      RepositoryManager
		driver string
	)
	switch backend {
	case BackendPostgres:
		m, driver = NewPostgresRepositoryManager(), "pgx"
	case BackendSQLite:
		m, driver = NewSQLiteRepositoryManager(), "sqlite"
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidArgument, backend)
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, nil, dbx.DBError(err)
	}
	if backend == BackendSQLite && dsn == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, dbx.DBError(err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("error running migrations: %w", err)
	}
	return db, m, nil
}
