// Package session issues and verifies admin session tokens. The core
// treats authentication as an opaque "is the caller an admin?" predicate;
// this package is the thin collaborator behind it.
package session

import (
	"context"
	"errors"
	"time"
)

const RoleAdmin = "admin"

// CookieName is the session token cookie set on login.
const CookieName = "session_token"

var ErrNotFound = errors.New("session not found")

type Session struct {
	Token     string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds active sessions keyed by token.
type Store interface {
	// Create issues a new token for role with the given TTL.
	Create(ctx context.Context, role string, ttl time.Duration) (*Session, error)
	// Get fails with ErrNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
