// Package users provides the account store: a Repository contract and its
// PostgreSQL, SQLite and in-memory implementations.
//
// Every implementation enforces username uniqueness atomically (a unique
// index or a map insert under a lock), so concurrent Create calls for the
// same username yield exactly one success and common.ErrDuplicateUsername
// for the rest.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository stores account records.
//
// Create returns common.ErrDuplicateUsername when the username is taken.
// CreateIfAbsent inserts the user unless the username exists and reports
// whether a row was written; a taken username is not an error and leaves a
// surrounding transaction usable.
// GetUserByLogin returns common.ErrorNotFound on a miss. Any other failure
// wraps common.ErrStoreUnavailable.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
