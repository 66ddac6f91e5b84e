package app

import (
	"context"
	"fmt"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// CreateUserInput is an admin-created account.
type CreateUserInput struct {
	RegisterInput
	Role domain.Role `json:"role"`
}

// UpdateUserInput carries the fields an admin may change. Nil fields are kept.
type UpdateUserInput struct {
	Password *string      `json:"password"`
	FullName *string      `json:"fullName"`
	Role     *domain.Role `json:"role"`
}

// UserService manages accounts from the back office.
type UserService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	auth     *AuthService
	audit    *Auditor
}

// NewUserService creates a new user service.
func NewUserService(store domain.Storage, auth *AuthService, audit *Auditor) *UserService {
	return &UserService{
		users:    store,
		sessions: store.Sessions(),
		auth:     auth,
		audit:    audit,
	}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// Create adds a user with an explicit role. An empty role means user.
func (s *UserService) Create(ctx context.Context, actor *domain.User, in CreateUserInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	var u *domain.User
	err := s.audit.Do(ctx, actor, CategoryUsers, func(tx domain.Storage) (string, error) {
		var err error
		u, err = s.auth.createAccount(ctx, tx, in.RegisterInput, role)
		if err != nil {
			return "", err
		}
		return "Created user " + u.Username, nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update changes password, full name or role of a user.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, in UpdateUserInput) (*domain.User, error) {
	var patch domain.UserPatch
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *in.Role)
		}
		patch.Role = in.Role
	}
	if in.Password != nil {
		if err := s.auth.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	patch.FullName = in.FullName

	var u *domain.User
	err := s.audit.Do(ctx, actor, CategoryUsers, func(tx domain.Storage) (string, error) {
		var err error
		u, err = tx.UpdateUser(ctx, id, patch)
		if err != nil {
			return "", err
		}
		if u == nil {
			return "", ErrNotFound
		}
		return "Updated user " + u.Username, nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user and every session they hold. Admins cannot delete
// themselves.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor.ID == id {
		return ErrSelfDelete
	}
	err := s.audit.Do(ctx, actor, CategoryUsers, func(tx domain.Storage) (string, error) {
		ok, err := tx.DeleteUser(ctx, id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNotFound
		}
		return fmt.Sprintf("Deleted user #%d", id), nil
	})
	if err != nil {
		return err
	}
	if _, err := s.sessions.DeleteByUserID(ctx, id); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
