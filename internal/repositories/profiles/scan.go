package profiles

import (
	"database/sql"

	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		p         models.Profile
		name      sql.NullString
		createdAt timex.Instant
	)
	if err := row.Scan(&p.ID, &p.ExternalAuthID, &p.Email, &name, &createdAt); err != nil {
		return nil, err
	}
	p.DisplayName = name.String
	p.CreatedAt = createdAt.Time
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
