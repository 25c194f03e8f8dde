package movements

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/migrations"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, migrations.DialectSQLite))

	_, err = db.Exec(`insert into tipo_movimiento (id, nombre, meta, usuario_id, created_at) values
		('c-1', 'Ingresos', '5000', 'p-1', '2024-01-01T00:00:00.000000000Z'),
		('c-2', 'Alimentacion', '800', 'p-1', '2024-01-01T00:00:01.000000000Z'),
		('c-9', 'Ajena', '0', 'p-2', '2024-01-01T00:00:02.000000000Z')`)
	require.NoError(t, err)
	return db
}

func mov(id, cat, owner string, day int, amount int64) *models.Movement {
	return &models.Movement{
		ID:             id,
		Name:           "mov " + id,
		Amount:         decimal.NewFromInt(amount),
		Date:           time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
		CategoryTypeID: cat,
		OwnerProfileID: owner,
	}
}

func TestSQLite_CreateListOrderedByDateDesc(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, m := range []*models.Movement{
		mov("m-1", "c-1", "p-1", 5, 4500),
		mov("m-3", "c-2", "p-1", 20, 50),
		mov("m-2", "c-2", "p-1", 10, 800),
	} {
		_, err := r.Create(ctx, m)
		require.NoError(t, err)
	}

	got, err := r.ListByOwner(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"m-3", "m-2", "m-1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.True(t, decimal.NewFromInt(800).Equal(got[1].Amount))
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), got[1].Date)
	assert.False(t, got[1].CreatedAt.IsZero())

	other, err := r.ListByOwner(ctx, "p-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLite_CreateRejectsForeignCategory(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Create(context.Background(), mov("m-1", "c-9", "p-1", 5, 10))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = r.Create(context.Background(), mov("m-1", "missing", "p-1", 5, 10))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	var n int
	require.NoError(t, db.QueryRow(`select count(*) from movimientos`).Scan(&n))
	assert.Zero(t, n)
}

func TestSQLite_Update(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := r.Create(ctx, mov("m-1", "c-2", "p-1", 5, 10))
	require.NoError(t, err)

	upd := *created
	upd.Amount = decimal.RequireFromString("12.34")
	upd.CategoryTypeID = "c-1"
	upd.Description = "corregido"
	got, err := r.Update(ctx, &upd)
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	list, err := r.ListByOwner(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Equal(*got))

	// someone else's category
	upd.CategoryTypeID = "c-9"
	_, err = r.Update(ctx, &upd)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// someone else's movement
	upd.CategoryTypeID = "c-1"
	upd.OwnerProfileID = "p-2"
	_, err = r.Update(ctx, &upd)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DeleteScopedByOwner(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, mov("m-1", "c-2", "p-1", 5, 10))
	require.NoError(t, err)

	assert.ErrorIs(t, r.Delete(ctx, "m-1", "p-2"), common.ErrorNotFound)
	list, err := r.ListByOwner(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, r.Delete(ctx, "m-1", "p-1"))
	list, err = r.ListByOwner(ctx, "p-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLite_BadStoredDate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := db.Exec(`insert into movimientos (id, nombre, importe, fecha, id_tipo_movimiento, usuario_id, created_at)
		values ('m-1', 'x', '1', 'mañana', 'c-1', 'p-1', '2024-01-01')`)
	require.NoError(t, err)

	_, err = r.ListByOwner(context.Background(), "p-1")
	assert.ErrorIs(t, err, common.ErrDataFormat)
}
