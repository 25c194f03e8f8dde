// Package profiles stores the local account records (table usuarios).
package profiles

import (
	"context"

	"github.com/dmitrijs2005/finanzas/internal/models"
)

// Repository persists profiles keyed by their external auth subject.
//
// FindByExternalAuthID returns common.ErrorNotFound when no row exists.
// Create returns common.ErrConflict when the external id is already taken.
type Repository interface {
	FindByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) (*models.Profile, error)
}
