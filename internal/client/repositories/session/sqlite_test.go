package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

	_, err = db.Exec(`
CREATE TABLE session (
  id       INTEGER PRIMARY KEY CHECK (id = 1),
  token    TEXT NOT NULL,
  username TEXT NOT NULL,
  name     TEXT NOT NULL,
  saved_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestLoad_Empty_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	s, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSaveAndLoad(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	in := &Session{Token: "t1", UserName: "demo", Name: "Demo User"}
	require.NoError(t, r.Save(ctx, in))
	assert.False(t, in.SavedAt.IsZero())

	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.Token)
	assert.Equal(t, "demo", got.UserName)
	assert.Equal(t, "Demo User", got.Name)
	assert.WithinDuration(t, in.SavedAt, got.SavedAt, time.Second)
}

func TestSave_ReplacesExisting(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &Session{Token: "old", UserName: "a", Name: "A"}))
	require.NoError(t, r.Save(ctx, &Session{Token: "new", UserName: "b", Name: "B"}))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Token)
	assert.Equal(t, "b", got.UserName)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &Session{Token: "t", UserName: "u", Name: "n"}))
	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Load(ctx)
	require.ErrorContains(t, err, "failed to load session")
	require.ErrorContains(t, r.Save(ctx, &Session{}), "failed to save session")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear session")
}
