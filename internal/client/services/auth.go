// Package services contains application services for the gophauth client.
// This file defines the authentication service: register, login, whoami,
// logout, liveness probe, and the locally remembered session.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/session"
)

// ErrNotLoggedIn is returned by Me when no session is active.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the server, keep the token and
//     persist it; both return the display name to greet the user with.
//   - Me: resolve the current token on the server. A rejected token ends
//     the session.
//   - Restore: load a previously persisted session, if any.
//   - Logout: forget the session locally (tokens are not revocable).
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte, name string) (string, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
	Me(ctx context.Context) (*client.Profile, error)
	Restore(ctx context.Context) (*session.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	CurrentUser() string
}

// authService is the concrete AuthService backed by a remote Client and an
// optional local session store.
type authService struct {
	client   client.Client
	sessions session.Repository

	mu      sync.Mutex
	current *session.Session
}

// NewAuthService constructs an AuthService. sessions may be nil, in which
// case logins last for the process only.
func NewAuthService(c client.Client, sessions session.Repository) AuthService {
	return &authService{client: c, sessions: sessions}
}

func (a *authService) Register(ctx context.Context, username string, password []byte, name string) (string, error) {
	res, err := a.client.Register(ctx, username, password, name)
	if err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}
	return a.start(ctx, username, res)
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (string, error) {
	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	return a.start(ctx, username, res)
}

func (a *authService) Me(ctx context.Context) (*client.Profile, error) {
	a.mu.Lock()
	cur := a.current
	a.mu.Unlock()

	if cur == nil {
		return nil, ErrNotLoggedIn
	}

	p, err := a.client.Me(ctx, cur.Token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = a.Logout(ctx)
		}
		return nil, err
	}
	return p, nil
}

func (a *authService) Restore(ctx context.Context) (*session.Session, error) {
	if a.sessions == nil {
		return nil, nil
	}

	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()

	if a.sessions == nil {
		return nil
	}
	return a.sessions.Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}

// CurrentUser returns the username of the active session or "".
func (a *authService) CurrentUser() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return ""
	}
	return a.current.UserName
}

// start activates and persists a session from a successful auth response.
// A persistence failure keeps the in-memory session.
func (a *authService) start(ctx context.Context, username string, res *client.AuthResult) (string, error) {
	s := &session.Session{Token: res.Token, UserName: username, Name: res.Name}

	a.mu.Lock()
	a.current = s
	a.mu.Unlock()

	if a.sessions != nil {
		if err := a.sessions.Save(ctx, s); err != nil {
			return res.Name, fmt.Errorf("session saving error: %w", err)
		}
	}
	return res.Name, nil
}
