// Package session persists the CLI's current login so a restarted client
// stays signed in until logout or token expiry.
package session

import (
	"context"
	"time"
)

// Session is the locally remembered login. At most one exists.
type Session struct {
	Token    string
	UserName string
	Name     string
	SavedAt  time.Time
}

// Repository stores the single current session.
//
// Load returns (nil, nil) when nothing is stored.
type Repository interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
