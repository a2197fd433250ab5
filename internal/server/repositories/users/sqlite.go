package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository on top of modernc.org/sqlite.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts the user with a freshly generated UUID.
func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, display_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, user.UserName, user.PasswordHash, user.DisplayName, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w: %w", common.ErrStoreUnavailable, err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return user, nil
}

// CreateIfAbsent inserts the user unless the username is taken.
func (r *SQLiteRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, display_name, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (username) DO NOTHING`,
		id, user.UserName, user.PasswordHash, user.DisplayName, createdAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w: %w", common.ErrStoreUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w: %w", common.ErrStoreUnavailable, err)
	}
	if n == 0 {
		return false, nil
	}

	user.ID = id
	user.CreatedAt = createdAt
	return true, nil
}

// GetUserByLogin looks a user up by exact username.
func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, display_name, created_at FROM users WHERE username = ?`, userName).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w: %w", common.ErrStoreUnavailable, err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
