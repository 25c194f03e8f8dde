package movements

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerProfileID string) ([]models.Movement, error) {
	query :=
		`SELECT id, nombre, importe, fecha, descripcion, id_tipo_movimiento, usuario_id, created_at
		 FROM movimientos
		 WHERE usuario_id = $1
		 ORDER BY fecha DESC, created_at ASC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerProfileID)
	if err != nil {
		return nil, dbx.DBError(err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	query :=
		`INSERT INTO movimientos (id, nombre, importe, fecha, descripcion, id_tipo_movimiento, usuario_id)
		 SELECT $1, $2, $3::numeric, $4::timestamptz, $5, $6, $7
		 WHERE EXISTS (SELECT 1 FROM tipo_movimiento WHERE id = $6 AND usuario_id = $7)
		 RETURNING created_at
		 `

	var createdAt timex.Instant
	err := r.db.QueryRowContext(ctx, query,
		m.ID, m.Name, m.Amount, m.Date, nullString(m.Description), m.CategoryTypeID, m.OwnerProfileID,
	).Scan(&createdAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, errForeignCategory
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrConflict
		}
		return nil, dbx.DBError(err)
	}

	out := persisted(m)
	out.CreatedAt = createdAt.Time
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	query :=
		`UPDATE movimientos
		 SET nombre = $1, importe = $2, fecha = $3, descripcion = $4, id_tipo_movimiento = $5
		 WHERE id = $6 AND usuario_id = $7
		   AND EXISTS (SELECT 1 FROM tipo_movimiento WHERE id = $5 AND usuario_id = $7)
		 RETURNING created_at
		 `

	var createdAt timex.Instant
	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Amount, m.Date, nullString(m.Description), m.CategoryTypeID, m.ID, m.OwnerProfileID,
	).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.DBError(err)
	}

	out := persisted(m)
	out.CreatedAt = createdAt.Time
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerProfileID string) error {
	query := `DELETE FROM movimientos WHERE id = $1 AND usuario_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerProfileID)
	if err != nil {
		return dbx.DBError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return dbx.DBError(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
