package client

import (
	"context"
)

// Profile is the identity returned by the /api/me endpoint.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type Client interface {
	Register(ctx context.Context, username string, password []byte, name string) (*AuthResult, error)
	Login(ctx context.Context, username string, password []byte) (*AuthResult, error)
	Me(ctx context.Context, token string) (*Profile, error)
	Health(ctx context.Context) error
}
