// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// Defaults used when AuthOptions leaves a field zero.
const (
	DefaultSessionTTL        = 24 * time.Hour
	DefaultPasswordMinLength = 6

	usernameMinLength = 3
	usernameMaxLength = 64
)

// AuthOptions tunes session lifetime and credential rules.
type AuthOptions struct {
	SessionTTL        time.Duration
	PasswordMinLength int
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// RegisterInput is a self-service signup or an admin-created account.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// AuthService handles authentication and session management.
type AuthService struct {
	users       domain.UserRepository
	sessions    domain.SessionRepository
	ttl         time.Duration
	minPassword int
	now         func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, opts AuthOptions) *AuthService {
	s := &AuthService{
		users:       users,
		sessions:    sessions,
		ttl:         opts.SessionTTL,
		minPassword: opts.PasswordMinLength,
		now:         opts.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.minPassword <= 0 {
		s.minPassword = DefaultPasswordMinLength
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SessionTTL is the lifetime of sessions created by this service.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// dummyDigest is verified against when the username is unknown so that a
// failed lookup costs the same as a wrong password.
var dummyDigest = sync.OnceValue(func() string {
	d, err := HashPassword("not-a-real-password")
	if err != nil {
		return ""
	}
	return d
})

// Login authenticates a user and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		_, _ = VerifyPassword(password, dummyDigest())
		return nil, "", ErrInvalidCredentials
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register creates a regular user and logs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	user, err := s.CreateAccount(ctx, in, domain.RoleUser)
	if err != nil {
		return nil, "", err
	}
	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateAccount validates credentials, hashes the password and stores a new
// user with the given role. It does not create a session.
func (s *AuthService) CreateAccount(ctx context.Context, in RegisterInput, role domain.Role) (*domain.User, error) {
	return s.createAccount(ctx, s.users, in, role)
}

// createAccount is CreateAccount writing to users, which may be bound to a
// transaction.
func (s *AuthService) createAccount(ctx context.Context, users domain.UserRepository, in RegisterInput, role domain.Role) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.validateCredentials(in.Username, in.Password); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	existing, err := users.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return users.CreateUser(ctx, domain.NewUser(in.Username, hash, in.FullName, role))
}

// ValidatePassword checks a new password against the configured minimum.
func (s *AuthService) ValidatePassword(password string) error {
	if len(password) < s.minPassword {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.minPassword)
	}
	return nil
}

func (s *AuthService) validateCredentials(username, password string) error {
	if n := len(username); n < usernameMinLength || n > usernameMaxLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, usernameMinLength, usernameMaxLength)
	}
	return s.ValidatePassword(password)
}

// Logout invalidates a session. An empty token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to its user. Expired sessions and
// sessions whose user no longer exists are deleted.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// SweepExpiredSessions removes every expired session and reports how many.
func (s *AuthService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) startSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, userID, token, s.now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
