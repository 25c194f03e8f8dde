package profiles

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/migrations"
	"github.com/dmitrijs2005/finanzas/internal/models"
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
	return db
}

func TestSQLite_CreateFindUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.FindByExternalAuthID(ctx, "auth-1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	created, err := r.Create(ctx, &models.Profile{ID: "p-1", ExternalAuthID: "auth-1", Email: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.FindByExternalAuthID(ctx, "auth-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Empty(t, got.DisplayName)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Microsecond)

	var nombre sql.NullString
	require.NoError(t, db.QueryRow(`select nombre from usuarios where id = 'p-1'`).Scan(&nombre))
	assert.False(t, nombre.Valid, "empty name is stored as NULL")

	updated, err := r.Update(ctx, &models.Profile{ID: "p-1", Email: "b@x.com", DisplayName: "B"})
	require.NoError(t, err)
	assert.Equal(t, "auth-1", updated.ExternalAuthID)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, "B", updated.DisplayName)

	_, err = r.Update(ctx, &models.Profile{ID: "nope", Email: "c@x.com"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_CreateConflict(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, &models.Profile{ID: "p-1", ExternalAuthID: "auth-1", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.Profile{ID: "p-2", ExternalAuthID: "auth-1", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrConflict)

	var n int
	require.NoError(t, db.QueryRow(`select count(*) from usuarios where user_id = 'auth-1'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLite_ClosedDB(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.FindByExternalAuthID(context.Background(), "auth-1")
	assert.ErrorIs(t, err, common.ErrTransport)
}
