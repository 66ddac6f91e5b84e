package domain

import (
	"context"
	"time"
)

// Ad types and defaults.
const (
	AdBanner       = "banner"
	AdInterstitial = "interstitial"
	AdRewarded     = "rewarded"

	DefaultAdFrequency = 5
	DefaultAdPosition  = "bottom"
)

// ValidAdType reports whether t is a known ad type.
func ValidAdType(t string) bool {
	switch t {
	case AdBanner, AdInterstitial, AdRewarded:
		return true
	}
	return false
}

// AdSetting configures one ad placement.
type AdSetting struct {
	ID          int64     `json:"id"`
	AdType      string    `json:"adType"`
	IsActive    bool      `json:"isActive"`
	Frequency   int       `json:"frequency"`
	Position    string    `json:"position"`
	LastUpdated time.Time `json:"lastUpdated"`
	UpdatedBy   int64     `json:"updatedBy"`
}

// AdSettingInput is the client-supplied part of a new ad setting.
type AdSettingInput struct {
	AdType    string `json:"adType"`
	IsActive  *bool  `json:"isActive"`
	Frequency *int   `json:"frequency"`
	Position  string `json:"position"`
}

// NewAdSetting fills defaults and attributes the setting to updatedBy.
func NewAdSetting(in AdSettingInput, updatedBy int64) AdSetting {
	s := AdSetting{
		AdType:    in.AdType,
		IsActive:  true,
		Frequency: DefaultAdFrequency,
		Position:  in.Position,
		UpdatedBy: updatedBy,
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if in.Frequency != nil {
		s.Frequency = *in.Frequency
	}
	if s.Position == "" {
		s.Position = DefaultAdPosition
	}
	return s
}

// AdSettingPatch is a partial update of an ad setting.
type AdSettingPatch struct {
	AdType    *string `json:"adType"`
	IsActive  *bool   `json:"isActive"`
	Frequency *int    `json:"frequency"`
	Position  *string `json:"position"`
	UpdatedBy *int64  `json:"-"`
}

// Apply merges p into s. LastUpdated is refreshed by the store.
func (p AdSettingPatch) Apply(s *AdSetting) {
	setString(&s.AdType, p.AdType)
	setString(&s.Position, p.Position)
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if p.Frequency != nil {
		s.Frequency = *p.Frequency
	}
	if p.UpdatedBy != nil {
		s.UpdatedBy = *p.UpdatedBy
	}
}

// AppSetting is a key/value row scoped by category. (Category, Key) is unique.
type AppSetting struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy *int64    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppSettingInput identifies a setting by its natural key.
type AppSettingInput struct {
	Category  string `json:"category"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedBy *int64 `json:"-"`
}

// AdSettingRepository is the port for ad setting persistence.
type AdSettingRepository interface {
	ListAdSettings(ctx context.Context) ([]AdSetting, error)
	GetAdSetting(ctx context.Context, id int64) (*AdSetting, error)
	CreateAdSetting(ctx context.Context, s AdSetting) (*AdSetting, error)
	UpdateAdSetting(ctx context.Context, id int64, patch AdSettingPatch) (*AdSetting, error)
}

// AppSettingRepository is the port for app setting persistence.
// UpsertAppSetting updates the row matching (Category, Key) in place or
// inserts a new one.
type AppSettingRepository interface {
	ListAppSettings(ctx context.Context) ([]AppSetting, error)
	ListAppSettingsByCategory(ctx context.Context, category string) ([]AppSetting, error)
	GetAppSetting(ctx context.Context, category, key string) (*AppSetting, error)
	UpsertAppSetting(ctx context.Context, in AppSettingInput) (*AppSetting, error)
	DeleteAppSetting(ctx context.Context, id int64) (bool, error)
}
