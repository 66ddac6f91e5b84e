package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/farhancoder7071/journynow/internal/domain"
)

const userColumns = "id, username, password_hash, full_name, role, created_at"

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var fullName sql.NullString
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &fullName, &role, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.FullName = stringPtr(fullName)
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (d *DB) getUser(ctx context.Context, q querier, query string, arg any) (*domain.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return d.getUser(ctx, d.conn, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// GetUserByUsername retrieves a user by username.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.getUser(ctx, d.conn, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

// CreateUser creates a new user. The unique index on username decides races.
func (d *DB) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	created, err := scanUser(d.conn.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, full_name, role, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING "+userColumns,
		u.Username, u.PasswordHash, nullString(u.FullName), string(u.Role), u.CreatedAt,
	))
	if isUniqueViolation(err) {
		return nil, domain.ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListUsers returns all users ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

// UpdateUser merges patch into the stored user under a row lock.
func (d *DB) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	var out *domain.User
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		u, err := d.getUser(ctx, tx, "SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id)
		if err != nil || u == nil {
			return err
		}
		patch.Apply(u)
		updated, err := scanUser(tx.QueryRowContext(ctx,
			"UPDATE users SET password_hash = $2, full_name = $3, role = $4 WHERE id = $1 RETURNING "+userColumns,
			id, u.PasswordHash, nullString(u.FullName), string(u.Role),
		))
		if err != nil {
			return err
		}
		out = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes a user. Sessions go with it through the foreign key.
func (d *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return d.deleteByID(ctx, "DELETE FROM users WHERE id = $1", id)
}

func (d *DB) deleteByID(ctx context.Context, query string, id int64) (bool, error) {
	res, err := d.conn.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.conn.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		userID, token, expiresAt.UTC(), now(),
	)
	return err
}

// GetByToken retrieves a live session by token. Expired rows read as absent.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.conn.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1 AND expires_at > $2",
		token, time.Now().UTC(),
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteByUserID deletes every session of a user.
func (r *SessionRepo) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
