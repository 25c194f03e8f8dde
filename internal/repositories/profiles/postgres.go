package profiles

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

func (r *PostgresRepository) FindByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Profile, error) {
	query :=
		`SELECT id, user_id, email, nombre, created_at FROM usuarios
		 WHERE user_id = $1
		 `

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO usuarios (id, user_id, email, nombre)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	var createdAt timex.Instant
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.ExternalAuthID, p.Email, nullString(p.DisplayName)).Scan(&createdAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, dbx.DBError(err)
	}

	out := *p
	out.CreatedAt = createdAt.Time
	return &out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`UPDATE usuarios SET email = $1, nombre = $2
		 WHERE id = $3
		 RETURNING id, user_id, email, nombre, created_at
		 `

	out, err := scanProfile(r.db.QueryRowContext(ctx, query, p.Email, nullString(p.DisplayName), p.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.DBError(err)
	}

	return out, nil
}
