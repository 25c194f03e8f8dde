// Package categories stores user-owned category types (table tipo_movimiento).
package categories

import (
	"context"

	"github.com/dmitrijs2005/finanzas/internal/models"
)

// Repository lists and creates category types for one owner profile.
// ListByOwner orders by creation time, oldest first.
type Repository interface {
	ListByOwner(ctx context.Context, ownerProfileID string) ([]models.CategoryType, error)
	Create(ctx context.Context, c *models.CategoryType) (*models.CategoryType, error)
}
