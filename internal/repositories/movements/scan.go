package movements

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

var errForeignCategory = fmt.Errorf("%w: category does not belong to owner", common.ErrInvalidArgument)

func scanAll(rows *sql.Rows) ([]models.Movement, error) {
	defer rows.Close()

	result := make([]models.Movement, 0)
	for rows.Next() {
		var (
			m           models.Movement
			description sql.NullString
			date        timex.Instant
			createdAt   timex.Instant
		)
		err := rows.Scan(&m.ID, &m.Name, &m.Amount, &date, &description,
			&m.CategoryTypeID, &m.OwnerProfileID, &createdAt)
		if err != nil {
			return nil, dbx.ScanError(err)
		}
		m.Date = date.Time
		m.Description = description.String
		m.CreatedAt = createdAt.Time
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, common.ErrDataFormat) {
			return nil, dbx.ScanError(err)
		}
		return nil, dbx.DBError(err)
	}
	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// persisted returns a copy of m without the derived join fields.
func persisted(m *models.Movement) *models.Movement {
	out := *m
	out.CategoryName, out.CategoryGoalAmount = nil, nil
	return &out
}
