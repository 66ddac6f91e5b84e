package domain

import (
	"context"
	"time"
)

// Crowd levels.
const (
	CrowdLow    = "low"
	CrowdMedium = "medium"
	CrowdHigh   = "high"
)

// Transport types a crowd report can refer to.
const (
	TransportTrain = "train"
	TransportBus   = "bus"
	TransportMetro = "metro"
)

// ValidCrowdLevel reports whether level is low, medium or high.
func ValidCrowdLevel(level string) bool {
	switch level {
	case CrowdLow, CrowdMedium, CrowdHigh:
		return true
	}
	return false
}

// ValidTransportType reports whether t is train, bus or metro.
func ValidTransportType(t string) bool {
	switch t {
	case TransportTrain, TransportBus, TransportMetro:
		return true
	}
	return false
}

// CrowdReport is a user observation of how busy a station is. IsApproved
// starts false and is flipped once by an admin.
type CrowdReport struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	StationName   string    `json:"stationName"`
	CrowdLevel    string    `json:"crowdLevel"`
	Timestamp     time.Time `json:"timestamp"`
	IsApproved    bool      `json:"isApproved"`
	TransportType string    `json:"transportType"`
	RouteID       *int64    `json:"routeId"`
}

// NewCrowdReport builds an unapproved report.
func NewCrowdReport(userID int64, station, level, transport string, routeID *int64) CrowdReport {
	return CrowdReport{
		UserID:        userID,
		StationName:   station,
		CrowdLevel:    level,
		TransportType: transport,
		RouteID:       routeID,
	}
}

// CrowdReportRepository is the port for crowd report persistence.
type CrowdReportRepository interface {
	ListCrowdReports(ctx context.Context) ([]CrowdReport, error)
	ListCrowdReportsByUser(ctx context.Context, userID int64) ([]CrowdReport, error)
	ListCrowdReportsByStation(ctx context.Context, stationName string) ([]CrowdReport, error)
	CreateCrowdReport(ctx context.Context, r CrowdReport) (*CrowdReport, error)
	ApproveCrowdReport(ctx context.Context, id int64) (*CrowdReport, error)
}
