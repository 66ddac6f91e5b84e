// Package domain contains the core business entities and the storage ports
// implemented by the adapters.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUsernameTaken is returned by UserRepository.CreateUser when the username
// already exists.
var ErrUsernameTaken = errors.New("username already exists")

// Role is the authorization level of a user.
type Role string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to the back office.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account. PasswordHash is never serialised.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"fullName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NewUser builds a user ready for CreateUser. An empty role becomes RoleUser
// and an empty full name is stored as null.
func NewUser(username, passwordHash, fullName string, role Role) User {
	if role == "" {
		role = RoleUser
	}
	u := User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if fullName != "" {
		u.FullName = &fullName
	}
	return u
}

// UserPatch carries the mutable user fields. Username is immutable.
type UserPatch struct {
	PasswordHash *string
	FullName     *string
	Role         *Role
}

// Apply merges the non-nil fields of p into u.
func (p UserPatch) Apply(u *User) {
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.FullName != nil {
		if *p.FullName == "" {
			u.FullName = nil
		} else {
			name := *p.FullName
			u.FullName = &name
		}
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

// Session binds an opaque cookie token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u User) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// SessionRepository defines the port for session persistence operations.
// GetByToken returns nil for unknown and expired tokens.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
