// Package movements stores ledger movements (table movimientos).
package movements

import (
	"context"

	"github.com/dmitrijs2005/finanzas/internal/models"
)

// Repository reads and writes movements scoped to an owner profile.
//
// ListByOwner orders by date, newest first. Create and Update only succeed
// when the referenced category belongs to the same owner: Create reports a
// foreign category as common.ErrInvalidArgument, Update as
// common.ErrorNotFound. Delete removes only a row matching both id and owner.
//
// Returned movements never carry the derived category fields.
type Repository interface {
	ListByOwner(ctx context.Context, ownerProfileID string) ([]models.Movement, error)
	Create(ctx context.Context, m *models.Movement) (*models.Movement, error)
	Update(ctx context.Context, m *models.Movement) (*models.Movement, error)
	Delete(ctx context.Context, id, ownerProfileID string) error
}
