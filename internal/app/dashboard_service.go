package app

import (
	"context"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// DashboardService serves the caller-scoped lists of the user dashboard.
type DashboardService struct {
	activities domain.ActivityRepository
	documents  domain.DocumentRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(activities domain.ActivityRepository, documents domain.DocumentRepository) *DashboardService {
	return &DashboardService{activities: activities, documents: documents}
}

// Activities returns the activities attributed to user.
func (s *DashboardService) Activities(ctx context.Context, user *domain.User) ([]domain.Activity, error) {
	return s.activities.ListActivitiesByUser(ctx, user.ID)
}

// Documents returns the documents owned by user.
func (s *DashboardService) Documents(ctx context.Context, user *domain.User) ([]domain.Document, error) {
	return s.documents.ListDocumentsByUser(ctx, user.ID)
}
