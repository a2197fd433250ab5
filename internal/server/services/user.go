// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token resolution and the
// seeding of demo accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenService mints and resolves bearer tokens.
type TokenService interface {
	Issue(sub auth.Subject) (string, error)
	Verify(token string) (auth.Subject, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	Name  string
}

// SeedUser is an account created at startup if it does not exist yet.
type SeedUser struct {
	UserName    string
	Password    string
	DisplayName string
}

// DemoUsers are the accounts seeded when demo seeding is enabled.
var DemoUsers = []SeedUser{
	{UserName: "demo", Password: "password", DisplayName: "Demo User"},
	{UserName: "admin", Password: "password", DisplayName: "Admin User"},
}

// dummyPassword is hashed once and compared against for unknown users so a
// miss costs the same bcrypt work as a wrong password.
const dummyPassword = "gophauth-dummy-password"

// UserService provides authentication-related operations:
// - Register: create users and mint a token
// - Login: verify credentials and mint a token
// - WhoAmI: resolve a token back to the stored user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenService

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService. db may be nil for the in-memory
// repository manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenService) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Register creates an account and returns a token for it. An empty
// displayName falls back to the username.
func (s *UserService) Register(ctx context.Context, username, password, displayName string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrValidation
	}
	if displayName == "" {
		displayName = username
	}

	user, err := s.createUser(ctx, s.dbtx(), username, password, displayName)
	if err != nil {
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Name: user.DisplayName}, nil
}

// Login checks the credentials and returns a token. Empty fields, unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.repomanager.Users(s.dbtx()).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.getDummyHash())
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", common.ErrStoreUnavailable)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Name: user.DisplayName}, nil
}

// WhoAmI verifies token and returns the current record of its user.
// A user deleted after the token was issued is unauthorized.
func (s *UserService) WhoAmI(ctx context.Context, token string) (*models.User, error) {
	sub, err := s.tokens.Verify(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.dbtx()).GetUserByLogin(ctx, sub.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error fetching user: %w", common.ErrStoreUnavailable)
	}
	return user, nil
}

// SeedUsers creates the given accounts in one transaction, leaving those
// whose username already exists untouched. Running it again is a no-op.
func (s *UserService) SeedUsers(ctx context.Context, seeds []SeedUser) error {
	seed := func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		for _, u := range seeds {
			hash, err := s.hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("error seeding user %q: %w", u.UserName, err)
			}

			user := &models.User{UserName: u.UserName, PasswordHash: hash, DisplayName: u.DisplayName}
			if _, err := repo.CreateIfAbsent(ctx, user); err != nil {
				return fmt.Errorf("error seeding user %q: %w", u.UserName, common.ErrStoreUnavailable)
			}
		}
		return nil
	}

	if s.db == nil {
		return seed(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, seed)
}

// Ping reports whether the user store is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

// --- helpers below ---

// dbtx returns the handle for repositories; a nil *sql.DB must not be
// wrapped into a non-nil interface.
func (s *UserService) dbtx() dbx.DBTX {
	if s.db == nil {
		return nil
	}
	return s.db
}

func (s *UserService) createUser(ctx context.Context, db dbx.DBTX, username, password, displayName string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrEmptyPassword) || errors.Is(err, common.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", common.ErrValidation, err)
		}
		return nil, common.ErrorInternal
	}

	user := &models.User{UserName: username, PasswordHash: hash, DisplayName: displayName}
	u, err := s.repomanager.Users(db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", common.ErrStoreUnavailable)
	}
	return u, nil
}

func (s *UserService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Issue(auth.Subject{UserID: user.ID, UserName: user.UserName})
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyHash
}
