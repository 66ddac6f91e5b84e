package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// SettingsService manages ad placements and key/value app settings.
type SettingsService struct {
	ads   domain.AdSettingRepository
	app   domain.AppSettingRepository
	audit *Auditor
}

// NewSettingsService creates a new settings service.
func NewSettingsService(ads domain.AdSettingRepository, app domain.AppSettingRepository, audit *Auditor) *SettingsService {
	return &SettingsService{ads: ads, app: app, audit: audit}
}

// ListAdSettings returns every ad setting.
func (s *SettingsService) ListAdSettings(ctx context.Context) ([]domain.AdSetting, error) {
	return s.ads.ListAdSettings(ctx)
}

// GetAdSetting returns one ad setting or ErrNotFound.
func (s *SettingsService) GetAdSetting(ctx context.Context, id int64) (*domain.AdSetting, error) {
	a, err := s.ads.GetAdSetting(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// CreateAdSetting stores an ad setting attributed to actor.
func (s *SettingsService) CreateAdSetting(ctx context.Context, actor *domain.User, in domain.AdSettingInput) (*domain.AdSetting, error) {
	if !domain.ValidAdType(in.AdType) {
		return nil, fmt.Errorf("%w: adType must be banner, interstitial or rewarded", ErrInvalidInput)
	}
	if in.Frequency != nil && *in.Frequency < 1 {
		return nil, fmt.Errorf("%w: frequency must be positive", ErrInvalidInput)
	}
	var a *domain.AdSetting
	err := s.audit.Do(ctx, actor, CategoryAdSettings, func(tx domain.Storage) (string, error) {
		var err error
		if a, err = tx.CreateAdSetting(ctx, domain.NewAdSetting(in, actor.ID)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created %s ad setting", a.AdType), nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAdSetting merges patch into an ad setting and re-attributes it.
func (s *SettingsService) UpdateAdSetting(ctx context.Context, actor *domain.User, id int64, patch domain.AdSettingPatch) (*domain.AdSetting, error) {
	if patch.AdType != nil && !domain.ValidAdType(*patch.AdType) {
		return nil, fmt.Errorf("%w: adType must be banner, interstitial or rewarded", ErrInvalidInput)
	}
	if patch.Frequency != nil && *patch.Frequency < 1 {
		return nil, fmt.Errorf("%w: frequency must be positive", ErrInvalidInput)
	}
	if err := rejectBlank(map[string]*string{"position": patch.Position}); err != nil {
		return nil, err
	}
	by := actor.ID
	patch.UpdatedBy = &by

	var a *domain.AdSetting
	err := s.audit.Do(ctx, actor, CategoryAdSettings, func(tx domain.Storage) (string, error) {
		var err error
		if a, err = tx.UpdateAdSetting(ctx, id, patch); err != nil {
			return "", err
		}
		if a == nil {
			return "", ErrNotFound
		}
		return fmt.Sprintf("Updated %s ad setting", a.AdType), nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAppSettings returns all settings, or one category when category is set.
func (s *SettingsService) ListAppSettings(ctx context.Context, category string) ([]domain.AppSetting, error) {
	if category == "" {
		return s.app.ListAppSettings(ctx)
	}
	return s.app.ListAppSettingsByCategory(ctx, category)
}

// UpsertAppSetting writes a setting by (category, key) attributed to actor.
func (s *SettingsService) UpsertAppSetting(ctx context.Context, actor *domain.User, in domain.AppSettingInput) (*domain.AppSetting, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.Key = strings.TrimSpace(in.Key)
	if in.Category == "" || in.Key == "" {
		return nil, fmt.Errorf("%w: category and key are required", ErrInvalidInput)
	}
	by := actor.ID
	in.UpdatedBy = &by

	var setting *domain.AppSetting
	err := s.audit.Do(ctx, actor, CategoryAppSettings, func(tx domain.Storage) (string, error) {
		var err error
		if setting, err = tx.UpsertAppSetting(ctx, in); err != nil {
			return "", err
		}
		return fmt.Sprintf("Set %s.%s", setting.Category, setting.Key), nil
	})
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// DeleteAppSetting removes a setting by id.
func (s *SettingsService) DeleteAppSetting(ctx context.Context, actor *domain.User, id int64) error {
	return s.audit.Do(ctx, actor, CategoryAppSettings, func(tx domain.Storage) (string, error) {
		ok, err := tx.DeleteAppSetting(ctx, id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNotFound
		}
		return fmt.Sprintf("Deleted app setting #%d", id), nil
	})
}
