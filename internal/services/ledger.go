package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/logging"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the ledger of one profile as fetched in a single load cycle.
// Movements are joined against CategoryTypes from the same cycle.
type Snapshot struct {
	OwnerProfileID string
	CategoryTypes  []models.CategoryType
	Movements      []models.Movement
}

// LedgerService reads and writes movements and category types.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	newID       func() string
	now         func() time.Time
}

// NewLedgerService constructs a LedgerService over the given storage.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "ledger"),
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// ListCategoryTypes returns the owner's categories, oldest first.
func (s *LedgerService) ListCategoryTypes(ctx context.Context, ownerProfileID string) ([]models.CategoryType, error) {
	types, err := s.repomanager.Categories(s.db).ListByOwner(ctx, ownerProfileID)
	if err != nil {
		return nil, fmt.Errorf("error listing category types: %w", err)
	}
	return types, nil
}

// ListMovements fetches the category types, then the movements newest
// first, and joins them.
func (s *LedgerService) ListMovements(ctx context.Context, ownerProfileID string) ([]models.Movement, error) {
	types, err := s.ListCategoryTypes(ctx, ownerProfileID)
	if err != nil {
		return nil, err
	}
	movements, err := s.repomanager.Movements(s.db).ListByOwner(ctx, ownerProfileID)
	if err != nil {
		return nil, fmt.Errorf("error listing movements: %w", err)
	}
	return models.Join(movements, types), nil
}

// Load fetches category types and movements concurrently and joins them
// once both have arrived.
func (s *LedgerService) Load(ctx context.Context, ownerProfileID string) (*Snapshot, error) {
	var (
		types     []models.CategoryType
		movements []models.Movement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		types, err = s.repomanager.Categories(s.db).ListByOwner(gctx, ownerProfileID)
		if err != nil {
			return fmt.Errorf("error listing category types: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movements, err = s.repomanager.Movements(s.db).ListByOwner(gctx, ownerProfileID)
		if err != nil {
			return fmt.Errorf("error listing movements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "ledger loaded", "profile_id", ownerProfileID, "types", len(types), "movements", len(movements))
	return &Snapshot{
		OwnerProfileID: ownerProfileID,
		CategoryTypes:  types,
		Movements:      models.Join(movements, types),
	}, nil
}

// CreateMovement stores draft and joins the result against cachedTypes,
// which the caller keeps current.
func (s *LedgerService) CreateMovement(ctx context.Context, draft models.Movement, cachedTypes []models.CategoryType) (*models.Movement, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if draft.ID == "" {
		draft.ID = s.newID()
	}

	created, err := s.repomanager.Movements(s.db).Create(ctx, &draft)
	if err != nil {
		return nil, fmt.Errorf("error creating movement: %w", err)
	}
	joined := models.JoinOne(*created, cachedTypes)
	return &joined, nil
}

// UpdateMovement stores m, which must already have an id, and joins the
// result against cachedTypes.
func (s *LedgerService) UpdateMovement(ctx context.Context, m models.Movement, cachedTypes []models.CategoryType) (*models.Movement, error) {
	if m.ID == "" {
		return nil, fmt.Errorf("%w: movement id is required for update", common.ErrInvalidArgument)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Movements(s.db).Update(ctx, &m)
	if err != nil {
		return nil, fmt.Errorf("error updating movement: %w", err)
	}
	joined := models.JoinOne(*updated, cachedTypes)
	return &joined, nil
}

// DeleteMovement removes a movement only if it belongs to ownerProfileID.
func (s *LedgerService) DeleteMovement(ctx context.Context, id, ownerProfileID string) error {
	if id == "" || ownerProfileID == "" {
		return fmt.Errorf("%w: movement id and owner are required", common.ErrInvalidArgument)
	}
	if err := s.repomanager.Movements(s.db).Delete(ctx, id, ownerProfileID); err != nil {
		return fmt.Errorf("error deleting movement: %w", err)
	}
	return nil
}

// CreateCategoryType stores a new category for its owner.
func (s *LedgerService) CreateCategoryType(ctx context.Context, c models.CategoryType) (*models.CategoryType, error) {
	created, err := s.CreateCategoryTypes(ctx, []models.CategoryType{c})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateCategoryTypes stores several categories in one transaction.
// Creation times are strictly increasing in input order.
func (s *LedgerService) CreateCategoryTypes(ctx context.Context, cs []models.CategoryType) ([]models.CategoryType, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: no categories given", common.ErrInvalidArgument)
	}
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	out := make([]models.CategoryType, 0, len(cs))

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Categories(tx)
		for i, c := range cs {
			if c.ID == "" {
				c.ID = s.newID()
			}
			c.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
			created, err := repo.Create(ctx, &c)
			if err != nil {
				return err
			}
			out = append(out, *created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating category types: %w", err)
	}

	s.log.Info(ctx, "category types created", "count", len(out))
	return out, nil
}
