package app

import (
	"context"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// Analytics is the back-office summary.
type Analytics struct {
	Users               int            `json:"users"`
	Admins              int            `json:"admins"`
	TrainRoutes         int            `json:"trainRoutes"`
	ActiveTrainRoutes   int            `json:"activeTrainRoutes"`
	BusRoutes           int            `json:"busRoutes"`
	ActiveBusRoutes     int            `json:"activeBusRoutes"`
	CrowdReports        int            `json:"crowdReports"`
	PendingCrowdReports int            `json:"pendingCrowdReports"`
	CrowdLevels         map[string]int `json:"crowdLevels"`
	Contents            int            `json:"contents"`
}

// AnalyticsService computes Analytics from the store.
type AnalyticsService struct {
	store domain.Storage
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(store domain.Storage) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Summary counts users, routes, reports and contents.
func (s *AnalyticsService) Summary(ctx context.Context) (*Analytics, error) {
	a := &Analytics{CrowdLevels: map[string]int{
		domain.CrowdLow:    0,
		domain.CrowdMedium: 0,
		domain.CrowdHigh:   0,
	}}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	a.Users = len(users)
	for _, u := range users {
		if u.IsAdmin() {
			a.Admins++
		}
	}

	trains, err := s.store.ListTrainRoutes(ctx)
	if err != nil {
		return nil, err
	}
	a.TrainRoutes = len(trains)
	for _, r := range trains {
		if r.IsActive {
			a.ActiveTrainRoutes++
		}
	}

	buses, err := s.store.ListBusRoutes(ctx)
	if err != nil {
		return nil, err
	}
	a.BusRoutes = len(buses)
	for _, r := range buses {
		if r.IsActive {
			a.ActiveBusRoutes++
		}
	}

	reports, err := s.store.ListCrowdReports(ctx)
	if err != nil {
		return nil, err
	}
	a.CrowdReports = len(reports)
	for _, r := range reports {
		if !r.IsApproved {
			a.PendingCrowdReports++
		}
		a.CrowdLevels[r.CrowdLevel]++
	}

	contents, err := s.store.ListContents(ctx)
	if err != nil {
		return nil, err
	}
	a.Contents = len(contents)
	return a, nil
}
