package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/migrations"
	"github.com/dmitrijs2005/finanzas/internal/repositories/categories"
	"github.com/dmitrijs2005/finanzas/internal/repositories/movements"
	"github.com/dmitrijs2005/finanzas/internal/repositories/profiles"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations
// for local, zero-setup use.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Movements(db dbx.DBTX) movements.Repository {
	return movements.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, migrations.DialectSQLite)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
