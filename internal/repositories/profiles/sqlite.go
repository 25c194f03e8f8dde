package profiles

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

func (r *SQLiteRepository) FindByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Profile, error) {
	query := `select id, user_id, email, nombre, created_at from usuarios where user_id = ?`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, externalAuthID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case errors.Is(err, common.ErrDataFormat):
			return nil, dbx.ScanError(err)
		}
		return nil, dbx.DBError(err)
	}
	return p, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	out := *p
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	query := `insert into usuarios (id, user_id, email, nombre, created_at) values (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		out.ID, out.ExternalAuthID, out.Email, nullString(out.DisplayName), timex.FormatInstant(out.CreatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, dbx.DBError(err)
	}
	return &out, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `update usuarios set email = ?, nombre = ? where id = ?`
	result, err := r.db.ExecContext(ctx, query, p.Email, nullString(p.DisplayName), p.ID)
	if err != nil {
		return nil, dbx.DBError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, dbx.DBError(err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	row := r.db.QueryRowContext(ctx, `select id, user_id, email, nombre, created_at from usuarios where id = ?`, p.ID)
	out, err := scanProfile(row)
	if err != nil {
		return nil, dbx.DBError(err)
	}
	return out, nil
}
