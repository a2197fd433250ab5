// Package models holds the records persisted by the server.
package models

import "time"

// User is an account record. UserName is unique and case-sensitive;
// PasswordHash is the bcrypt hash, never the plaintext.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}
