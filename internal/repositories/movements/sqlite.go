package movements

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerProfileID string) ([]models.Movement, error) {
	query := `select id, nombre, importe, fecha, descripcion, id_tipo_movimiento, usuario_id, created_at
		from movimientos where usuario_id = ? order by fecha desc, rowid asc`

	rows, err := r.db.QueryContext(ctx, query, ownerProfileID)
	if err != nil {
		return nil, dbx.DBError(err)
	}
	return scanAll(rows)
}

func (r *SQLiteRepository) Create(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	out := persisted(m)
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	query := `insert into movimientos (id, nombre, importe, fecha, descripcion, id_tipo_movimiento, usuario_id, created_at)
		select ?, ?, ?, ?, ?, ?, ?, ?
		where exists (select 1 from tipo_movimiento where id = ? and usuario_id = ?)`

	result, err := r.db.ExecContext(ctx, query,
		out.ID, out.Name, out.Amount.String(), timex.FormatInstant(out.Date), nullString(out.Description),
		out.CategoryTypeID, out.OwnerProfileID, timex.FormatInstant(out.CreatedAt),
		out.CategoryTypeID, out.OwnerProfileID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, dbx.DBError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, dbx.DBError(err)
	}
	if n == 0 {
		return nil, errForeignCategory
	}
	return out, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	query := `update movimientos
		set nombre = ?, importe = ?, fecha = ?, descripcion = ?, id_tipo_movimiento = ?
		where id = ? and usuario_id = ?
		  and exists (select 1 from tipo_movimiento where id = ? and usuario_id = ?)
		returning created_at`

	var createdAt timex.Instant
	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Amount.String(), timex.FormatInstant(m.Date), nullString(m.Description),
		m.CategoryTypeID, m.ID, m.OwnerProfileID, m.CategoryTypeID, m.OwnerProfileID,
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

func (r *SQLiteRepository) Delete(ctx context.Context, id, ownerProfileID string) error {
	result, err := r.db.ExecContext(ctx, `delete from movimientos where id = ? and usuario_id = ?`, id, ownerProfileID)
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
