package app

import (
	"errors"

	"github.com/farhancoder7071/journynow/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthorized indicates an authenticated caller without the required role.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound indicates that the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrInvalidInput wraps validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsernameTaken indicates a duplicate username.
	ErrUsernameTaken = domain.ErrUsernameTaken
)
