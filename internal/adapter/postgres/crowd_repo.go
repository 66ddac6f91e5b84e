package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farhancoder7071/journynow/internal/domain"
)

const crowdReportColumns = "id, user_id, station_name, crowd_level, timestamp, is_approved, transport_type, route_id"

func scanCrowdReport(row rowScanner) (domain.CrowdReport, error) {
	var r domain.CrowdReport
	var routeID sql.NullInt64
	err := row.Scan(&r.ID, &r.UserID, &r.StationName, &r.CrowdLevel, &r.Timestamp, &r.IsApproved, &r.TransportType, &routeID)
	r.Timestamp = r.Timestamp.UTC()
	r.RouteID = int64Ptr(routeID)
	return r, err
}

func (d *DB) listCrowdReports(ctx context.Context, where string, args ...any) ([]domain.CrowdReport, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+crowdReportColumns+" FROM crowd_reports "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCrowdReport)
}

// ListCrowdReports returns all crowd reports ordered by ID.
func (d *DB) ListCrowdReports(ctx context.Context) ([]domain.CrowdReport, error) {
	return d.listCrowdReports(ctx, "")
}

// ListCrowdReportsByUser returns the reports submitted by a user.
func (d *DB) ListCrowdReportsByUser(ctx context.Context, userID int64) ([]domain.CrowdReport, error) {
	return d.listCrowdReports(ctx, "WHERE user_id = $1", userID)
}

// ListCrowdReportsByStation returns every report for a station, approved or
// not.
func (d *DB) ListCrowdReportsByStation(ctx context.Context, stationName string) ([]domain.CrowdReport, error) {
	return d.listCrowdReports(ctx, "WHERE station_name = $1", stationName)
}

// CreateCrowdReport stores a report. Reports always start unapproved.
func (d *DB) CreateCrowdReport(ctx context.Context, r domain.CrowdReport) (*domain.CrowdReport, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = now()
	}
	created, err := scanCrowdReport(d.conn.QueryRowContext(ctx,
		`INSERT INTO crowd_reports (user_id, station_name, crowd_level, timestamp, is_approved, transport_type, route_id)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6) RETURNING `+crowdReportColumns,
		r.UserID, r.StationName, r.CrowdLevel, r.Timestamp.UTC(), r.TransportType, nullInt64(r.RouteID),
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ApproveCrowdReport marks a report approved. Approving twice is a no-op.
func (d *DB) ApproveCrowdReport(ctx context.Context, id int64) (*domain.CrowdReport, error) {
	r, err := scanCrowdReport(d.conn.QueryRowContext(ctx,
		"UPDATE crowd_reports SET is_approved = TRUE WHERE id = $1 RETURNING "+crowdReportColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
