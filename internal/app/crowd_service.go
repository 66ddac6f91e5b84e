package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// CrowdReportInput is a user's crowd observation.
type CrowdReportInput struct {
	StationName   string `json:"stationName"`
	CrowdLevel    string `json:"crowdLevel"`
	TransportType string `json:"transportType"`
	RouteID       *int64 `json:"routeId"`
}

// CrowdService handles crowd report submission and moderation.
type CrowdService struct {
	reports domain.CrowdReportRepository
	audit   *Auditor
}

// NewCrowdService creates a new crowd report service.
func NewCrowdService(reports domain.CrowdReportRepository, audit *Auditor) *CrowdService {
	return &CrowdService{reports: reports, audit: audit}
}

// Submit stores a new, unapproved report attributed to user.
func (s *CrowdService) Submit(ctx context.Context, user *domain.User, in CrowdReportInput) (*domain.CrowdReport, error) {
	station := strings.TrimSpace(in.StationName)
	if station == "" {
		return nil, fmt.Errorf("%w: stationName is required", ErrInvalidInput)
	}
	if !domain.ValidCrowdLevel(in.CrowdLevel) {
		return nil, fmt.Errorf("%w: crowdLevel must be low, medium or high", ErrInvalidInput)
	}
	if !domain.ValidTransportType(in.TransportType) {
		return nil, fmt.Errorf("%w: transportType must be train, bus or metro", ErrInvalidInput)
	}
	return s.reports.CreateCrowdReport(ctx, domain.NewCrowdReport(user.ID, station, in.CrowdLevel, in.TransportType, in.RouteID))
}

// Mine returns the reports submitted by user.
func (s *CrowdService) Mine(ctx context.Context, user *domain.User) ([]domain.CrowdReport, error) {
	return s.reports.ListCrowdReportsByUser(ctx, user.ID)
}

// All returns every report for moderation.
func (s *CrowdService) All(ctx context.Context) ([]domain.CrowdReport, error) {
	return s.reports.ListCrowdReports(ctx)
}

// ByStation returns the reports for a station as seen by viewer. Only admins
// see unapproved reports.
func (s *CrowdService) ByStation(ctx context.Context, viewer *domain.User, station string) ([]domain.CrowdReport, error) {
	reports, err := s.reports.ListCrowdReportsByStation(ctx, station)
	if err != nil {
		return nil, err
	}
	if viewer.IsAdmin() {
		return reports, nil
	}
	visible := make([]domain.CrowdReport, 0, len(reports))
	for _, r := range reports {
		if r.IsApproved {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// Approve marks a report approved.
func (s *CrowdService) Approve(ctx context.Context, actor *domain.User, id int64) (*domain.CrowdReport, error) {
	var r *domain.CrowdReport
	err := s.audit.Do(ctx, actor, CategoryCrowdReports, func(tx domain.Storage) (string, error) {
		var err error
		if r, err = tx.ApproveCrowdReport(ctx, id); err != nil {
			return "", err
		}
		if r == nil {
			return "", ErrNotFound
		}
		return "Approved crowd report for " + r.StationName, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
