package categories

import (
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

func scanAll(rows *sql.Rows) ([]models.CategoryType, error) {
	defer rows.Close()

	result := make([]models.CategoryType, 0)
	for rows.Next() {
		var (
			c         models.CategoryType
			createdAt timex.Instant
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.GoalAmount, &c.OwnerProfileID, &createdAt); err != nil {
			return nil, dbx.ScanError(err)
		}
		c.CreatedAt = createdAt.Time
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, common.ErrDataFormat) {
			return nil, dbx.ScanError(err)
		}
		return nil, dbx.DBError(err)
	}
	return result, nil
}
