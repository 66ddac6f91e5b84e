package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farhancoder7071/journynow/internal/domain"
)

const (
	adSettingColumns  = "id, ad_type, is_active, frequency, position, last_updated, updated_by"
	appSettingColumns = "id, category, key, value, updated_by, updated_at"
)

func scanAdSetting(row rowScanner) (domain.AdSetting, error) {
	var s domain.AdSetting
	err := row.Scan(&s.ID, &s.AdType, &s.IsActive, &s.Frequency, &s.Position, &s.LastUpdated, &s.UpdatedBy)
	s.LastUpdated = s.LastUpdated.UTC()
	return s, err
}

func scanAppSetting(row rowScanner) (domain.AppSetting, error) {
	var s domain.AppSetting
	var by sql.NullInt64
	err := row.Scan(&s.ID, &s.Category, &s.Key, &s.Value, &by, &s.UpdatedAt)
	s.UpdatedBy = int64Ptr(by)
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, err
}

// ListAdSettings returns all ad settings ordered by ID.
func (d *DB) ListAdSettings(ctx context.Context) ([]domain.AdSetting, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+adSettingColumns+" FROM ad_settings ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAdSetting)
}

func getAdSetting(ctx context.Context, q querier, query string, id int64) (*domain.AdSetting, error) {
	s, err := scanAdSetting(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetAdSetting retrieves an ad setting by ID.
func (d *DB) GetAdSetting(ctx context.Context, id int64) (*domain.AdSetting, error) {
	return getAdSetting(ctx, d.conn, "SELECT "+adSettingColumns+" FROM ad_settings WHERE id = $1", id)
}

// CreateAdSetting stores an ad setting.
func (d *DB) CreateAdSetting(ctx context.Context, s domain.AdSetting) (*domain.AdSetting, error) {
	created, err := scanAdSetting(d.conn.QueryRowContext(ctx,
		`INSERT INTO ad_settings (ad_type, is_active, frequency, position, last_updated, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+adSettingColumns,
		s.AdType, s.IsActive, s.Frequency, s.Position, now(), s.UpdatedBy,
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAdSetting merges patch under a row lock and refreshes last_updated.
func (d *DB) UpdateAdSetting(ctx context.Context, id int64, patch domain.AdSettingPatch) (*domain.AdSetting, error) {
	var out *domain.AdSetting
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		s, err := getAdSetting(ctx, tx, "SELECT "+adSettingColumns+" FROM ad_settings WHERE id = $1 FOR UPDATE", id)
		if err != nil || s == nil {
			return err
		}
		patch.Apply(s)
		updated, err := scanAdSetting(tx.QueryRowContext(ctx,
			`UPDATE ad_settings SET ad_type = $2, is_active = $3, frequency = $4, position = $5, last_updated = $6, updated_by = $7
			WHERE id = $1 RETURNING `+adSettingColumns,
			id, s.AdType, s.IsActive, s.Frequency, s.Position, now(), s.UpdatedBy,
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

// ListAppSettings returns all app settings ordered by ID.
func (d *DB) ListAppSettings(ctx context.Context) ([]domain.AppSetting, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+appSettingColumns+" FROM app_settings ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAppSetting)
}

// ListAppSettingsByCategory returns the settings of one category.
func (d *DB) ListAppSettingsByCategory(ctx context.Context, category string) ([]domain.AppSetting, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+appSettingColumns+" FROM app_settings WHERE category = $1 ORDER BY id", category)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAppSetting)
}

// GetAppSetting retrieves a setting by its natural key.
func (d *DB) GetAppSetting(ctx context.Context, category, key string) (*domain.AppSetting, error) {
	s, err := scanAppSetting(d.conn.QueryRowContext(ctx,
		"SELECT "+appSettingColumns+" FROM app_settings WHERE category = $1 AND key = $2", category, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertAppSetting updates the (category, key) row in place or inserts it.
func (d *DB) UpsertAppSetting(ctx context.Context, in domain.AppSettingInput) (*domain.AppSetting, error) {
	s, err := scanAppSetting(d.conn.QueryRowContext(ctx,
		`INSERT INTO app_settings (category, key, value, updated_by, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
		RETURNING `+appSettingColumns,
		in.Category, in.Key, in.Value, nullInt64(in.UpdatedBy), now(),
	))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteAppSetting removes a setting by ID.
func (d *DB) DeleteAppSetting(ctx context.Context, id int64) (bool, error) {
	return d.deleteByID(ctx, "DELETE FROM app_settings WHERE id = $1", id)
}
