package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farhancoder7071/journynow/internal/domain"
)

const (
	trainRouteColumns = "id, route_name, source_station, destination_station, departure_time, arrival_time, status, train_number, train_type, is_active, created_at, updated_at"
	busRouteColumns   = "id, route_name, route_number, source_stop, destination_stop, departure_time, arrival_time, frequency, bus_type, fare, is_active, created_at, updated_at"
)

func scanTrainRoute(row rowScanner) (domain.TrainRoute, error) {
	var r domain.TrainRoute
	err := row.Scan(&r.ID, &r.RouteName, &r.SourceStation, &r.DestinationStation, &r.DepartureTime, &r.ArrivalTime,
		&r.Status, &r.TrainNumber, &r.TrainType, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()
	return r, err
}

func scanBusRoute(row rowScanner) (domain.BusRoute, error) {
	var r domain.BusRoute
	err := row.Scan(&r.ID, &r.RouteName, &r.RouteNumber, &r.SourceStop, &r.DestinationStop, &r.DepartureTime, &r.ArrivalTime,
		&r.Frequency, &r.BusType, &r.Fare, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()
	return r, err
}

// ListTrainRoutes returns all train routes ordered by ID.
func (d *DB) ListTrainRoutes(ctx context.Context) ([]domain.TrainRoute, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+trainRouteColumns+" FROM train_routes ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTrainRoute)
}

func getTrainRoute(ctx context.Context, q querier, query string, id int64) (*domain.TrainRoute, error) {
	r, err := scanTrainRoute(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetTrainRoute retrieves a train route by ID.
func (d *DB) GetTrainRoute(ctx context.Context, id int64) (*domain.TrainRoute, error) {
	return getTrainRoute(ctx, d.conn, "SELECT "+trainRouteColumns+" FROM train_routes WHERE id = $1", id)
}

// CreateTrainRoute stores a train route and stamps both timestamps.
func (d *DB) CreateTrainRoute(ctx context.Context, r domain.TrainRoute) (*domain.TrainRoute, error) {
	ts := now()
	created, err := scanTrainRoute(d.conn.QueryRowContext(ctx,
		`INSERT INTO train_routes (route_name, source_station, destination_station, departure_time, arrival_time,
			status, train_number, train_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING `+trainRouteColumns,
		r.RouteName, r.SourceStation, r.DestinationStation, r.DepartureTime, r.ArrivalTime,
		r.Status, r.TrainNumber, r.TrainType, r.IsActive, ts,
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTrainRoute merges patch under a row lock and refreshes updated_at.
func (d *DB) UpdateTrainRoute(ctx context.Context, id int64, patch domain.TrainRoutePatch) (*domain.TrainRoute, error) {
	var out *domain.TrainRoute
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		r, err := getTrainRoute(ctx, tx, "SELECT "+trainRouteColumns+" FROM train_routes WHERE id = $1 FOR UPDATE", id)
		if err != nil || r == nil {
			return err
		}
		patch.Apply(r)
		updated, err := scanTrainRoute(tx.QueryRowContext(ctx,
			`UPDATE train_routes SET route_name = $2, source_station = $3, destination_station = $4, departure_time = $5,
				arrival_time = $6, status = $7, train_number = $8, train_type = $9, is_active = $10, updated_at = $11
			WHERE id = $1 RETURNING `+trainRouteColumns,
			id, r.RouteName, r.SourceStation, r.DestinationStation, r.DepartureTime,
			r.ArrivalTime, r.Status, r.TrainNumber, r.TrainType, r.IsActive, now(),
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

// DeleteTrainRoute removes a train route.
func (d *DB) DeleteTrainRoute(ctx context.Context, id int64) (bool, error) {
	return d.deleteByID(ctx, "DELETE FROM train_routes WHERE id = $1", id)
}

// ListBusRoutes returns all bus routes ordered by ID.
func (d *DB) ListBusRoutes(ctx context.Context) ([]domain.BusRoute, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT "+busRouteColumns+" FROM bus_routes ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBusRoute)
}

func getBusRoute(ctx context.Context, q querier, query string, id int64) (*domain.BusRoute, error) {
	r, err := scanBusRoute(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetBusRoute retrieves a bus route by ID.
func (d *DB) GetBusRoute(ctx context.Context, id int64) (*domain.BusRoute, error) {
	return getBusRoute(ctx, d.conn, "SELECT "+busRouteColumns+" FROM bus_routes WHERE id = $1", id)
}

// CreateBusRoute stores a bus route and stamps both timestamps.
func (d *DB) CreateBusRoute(ctx context.Context, r domain.BusRoute) (*domain.BusRoute, error) {
	ts := now()
	created, err := scanBusRoute(d.conn.QueryRowContext(ctx,
		`INSERT INTO bus_routes (route_name, route_number, source_stop, destination_stop, departure_time, arrival_time,
			frequency, bus_type, fare, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING `+busRouteColumns,
		r.RouteName, r.RouteNumber, r.SourceStop, r.DestinationStop, r.DepartureTime, r.ArrivalTime,
		r.Frequency, r.BusType, r.Fare, r.IsActive, ts,
	))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBusRoute merges patch under a row lock and refreshes updated_at.
func (d *DB) UpdateBusRoute(ctx context.Context, id int64, patch domain.BusRoutePatch) (*domain.BusRoute, error) {
	var out *domain.BusRoute
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		r, err := getBusRoute(ctx, tx, "SELECT "+busRouteColumns+" FROM bus_routes WHERE id = $1 FOR UPDATE", id)
		if err != nil || r == nil {
			return err
		}
		patch.Apply(r)
		updated, err := scanBusRoute(tx.QueryRowContext(ctx,
			`UPDATE bus_routes SET route_name = $2, route_number = $3, source_stop = $4, destination_stop = $5,
				departure_time = $6, arrival_time = $7, frequency = $8, bus_type = $9, fare = $10, is_active = $11,
				updated_at = $12
			WHERE id = $1 RETURNING `+busRouteColumns,
			id, r.RouteName, r.RouteNumber, r.SourceStop, r.DestinationStop,
			r.DepartureTime, r.ArrivalTime, r.Frequency, r.BusType, r.Fare, r.IsActive, now(),
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

// DeleteBusRoute removes a bus route.
func (d *DB) DeleteBusRoute(ctx context.Context, id int64) (bool, error) {
	return d.deleteByID(ctx, "DELETE FROM bus_routes WHERE id = $1", id)
}
