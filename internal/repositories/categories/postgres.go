package categories

import (
	"context"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerProfileID string) ([]models.CategoryType, error) {
	query :=
		`SELECT id, nombre, meta, usuario_id, created_at FROM tipo_movimiento
		 WHERE usuario_id = $1
		 ORDER BY created_at ASC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerProfileID)
	if err != nil {
		return nil, dbx.DBError(err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.CategoryType) (*models.CategoryType, error) {
	query :=
		`INSERT INTO tipo_movimiento (id, nombre, meta, usuario_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.GoalAmount, c.OwnerProfileID, c.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, dbx.DBError(err)
	}

	out := *c
	return &out, nil
}
