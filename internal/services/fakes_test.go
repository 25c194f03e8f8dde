package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/dbx"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/repositories/categories"
	"github.com/dmitrijs2005/finanzas/internal/repositories/movements"
	"github.com/dmitrijs2005/finanzas/internal/repositories/profiles"
)

// --- profiles ---

type findResult struct {
	p   *models.Profile
	err error
}

type fakeProfilesRepo struct {
	mu sync.Mutex

	finds     []findResult // consumed in order, last one repeats
	findCalls int
	// findGate, when set, blocks lookups until closed or ctx is done.
	findGate    chan struct{}
	findEntered chan struct{}

	createErr   error
	createCalls int
	created     []*models.Profile

	updateOut *models.Profile
	updateErr error
}

func (f *fakeProfilesRepo) FindByExternalAuthID(ctx context.Context, externalAuthID string) (*models.Profile, error) {
	if f.findGate != nil {
		if f.findEntered != nil {
			f.findEntered <- struct{}{}
		}
		select {
		case <-f.findGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findCalls
	if i >= len(f.finds) {
		i = len(f.finds) - 1
	}
	f.findCalls++
	r := f.finds[i]
	return r.p, r.err
}

func (f *fakeProfilesRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *p
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakeProfilesRepo) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

// --- ledger ---

type fakeCategoriesRepo struct {
	list    []models.CategoryType
	listErr error

	createErr error
	created   []models.CategoryType
}

func (f *fakeCategoriesRepo) ListByOwner(ctx context.Context, owner string) ([]models.CategoryType, error) {
	return f.list, f.listErr
}

func (f *fakeCategoriesRepo) Create(ctx context.Context, c *models.CategoryType) (*models.CategoryType, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *c)
	out := *c
	return &out, nil
}

type fakeMovementsRepo struct {
	calls int

	list    []models.Movement
	listErr error

	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeMovementsRepo) ListByOwner(ctx context.Context, owner string) ([]models.Movement, error) {
	f.calls++
	return f.list, f.listErr
}

func (f *fakeMovementsRepo) Create(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *m
	out.CategoryName, out.CategoryGoalAmount = nil, nil
	return &out, nil
}

func (f *fakeMovementsRepo) Update(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	f.calls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	out := *m
	out.CategoryName, out.CategoryGoalAmount = nil, nil
	return &out, nil
}

func (f *fakeMovementsRepo) Delete(ctx context.Context, id, owner string) error {
	f.calls++
	return f.deleteErr
}

type fakeRepoManager struct {
	p *fakeProfilesRepo
	c *fakeCategoriesRepo
	m *fakeMovementsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository     { return m.p }
func (m *fakeRepoManager) Categories(db dbx.DBTX) categories.Repository { return m.c }
func (m *fakeRepoManager) Movements(db dbx.DBTX) movements.Repository   { return m.m }

var notFound = findResult{err: common.ErrorNotFound}
