package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupAccounts(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (username TEXT NOT NULL UNIQUE, display_name TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func seed(names ...string) func(ctx context.Context, tx DBTX) error {
	return func(ctx context.Context, tx DBTX) error {
		for _, n := range names {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (username, display_name) VALUES (?, ?) ON CONFLICT (username) DO NOTHING`, n, n); err != nil {
				return err
			}
		}
		return nil
	}
}

func usernames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT username FROM users ORDER BY username`)
	require.NoError(t, err)
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		out = append(out, n)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestWithTx_SeedCommitsAndRepeats(t *testing.T) {
	db := setupAccounts(t)
	ctx := context.Background()

	require.NoError(t, WithTx(ctx, db, nil, seed("demo", "admin")))
	require.NoError(t, WithTx(ctx, db, nil, seed("demo", "admin")), "second seed must not fail on existing users")

	assert.Equal(t, []string{"admin", "demo"}, usernames(t, db))
}

func TestWithTx_RollsBackPartialSeed(t *testing.T) {
	db := setupAccounts(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, seed("demo")(ctx, tx))
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Empty(t, usernames(t, db), "demo must not survive the rollback")
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupAccounts(t)

	defer func() {
		require.Equal(t, "kaput", recover())
		assert.Empty(t, usernames(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, seed("admin")(ctx, tx))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupAccounts(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

func TestWithTx_CommitAndRollbackErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))
	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
	require.ErrorContains(t, err, "commit tx: disk full")

	fnErr := errors.New("insert failed")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("conn lost"))
	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return fnErr })
	require.ErrorIs(t, err, fnErr)
	assert.ErrorContains(t, err, "rollback tx: conn lost")

	require.NoError(t, mock.ExpectationsWereMet())
}
