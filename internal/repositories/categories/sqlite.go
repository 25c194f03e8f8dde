package categories

import (
	"context"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerProfileID string) ([]models.CategoryType, error) {
	query := `select id, nombre, meta, usuario_id, created_at from tipo_movimiento
		where usuario_id = ? order by created_at asc, rowid asc`

	rows, err := r.db.QueryContext(ctx, query, ownerProfileID)
	if err != nil {
		return nil, dbx.DBError(err)
	}
	return scanAll(rows)
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.CategoryType) (*models.CategoryType, error) {
	query := `insert into tipo_movimiento (id, nombre, meta, usuario_id, created_at) values (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.GoalAmount.String(), c.OwnerProfileID, timex.FormatInstant(c.CreatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, dbx.DBError(err)
	}

	out := *c
	return &out, nil
}
