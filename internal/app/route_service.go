package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// RouteService manages train and bus routes.
type RouteService struct {
	trains domain.TrainRouteRepository
	buses  domain.BusRouteRepository
	audit  *Auditor
}

// NewRouteService creates a new route service.
func NewRouteService(trains domain.TrainRouteRepository, buses domain.BusRouteRepository, audit *Auditor) *RouteService {
	return &RouteService{trains: trains, buses: buses, audit: audit}
}

// ListTrainRoutes returns every train route.
func (s *RouteService) ListTrainRoutes(ctx context.Context) ([]domain.TrainRoute, error) {
	return s.trains.ListTrainRoutes(ctx)
}

// ActiveTrainRoutes returns the train routes shown on the user dashboard.
func (s *RouteService) ActiveTrainRoutes(ctx context.Context) ([]domain.TrainRoute, error) {
	all, err := s.trains.ListTrainRoutes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TrainRoute, 0, len(all))
	for _, r := range all {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetTrainRoute returns one train route or ErrNotFound.
func (s *RouteService) GetTrainRoute(ctx context.Context, id int64) (*domain.TrainRoute, error) {
	r, err := s.trains.GetTrainRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// CreateTrainRoute validates and stores a train route.
func (s *RouteService) CreateTrainRoute(ctx context.Context, actor *domain.User, in domain.TrainRouteInput) (*domain.TrainRoute, error) {
	if err := requireFields(map[string]string{
		"routeName":          in.RouteName,
		"sourceStation":      in.SourceStation,
		"destinationStation": in.DestinationStation,
		"departureTime":      in.DepartureTime,
		"arrivalTime":        in.ArrivalTime,
		"trainNumber":        in.TrainNumber,
	}); err != nil {
		return nil, err
	}
	var r *domain.TrainRoute
	err := s.audit.Do(ctx, actor, CategoryTrainRoutes, func(tx domain.Storage) (string, error) {
		var err error
		if r, err = tx.CreateTrainRoute(ctx, domain.NewTrainRoute(in)); err != nil {
			return "", err
		}
		return "Created train route " + r.TrainNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateTrainRoute merges patch into an existing train route. Fields that a
// route must carry cannot be blanked.
func (s *RouteService) UpdateTrainRoute(ctx context.Context, actor *domain.User, id int64, patch domain.TrainRoutePatch) (*domain.TrainRoute, error) {
	if err := rejectBlank(map[string]*string{
		"routeName":          patch.RouteName,
		"sourceStation":      patch.SourceStation,
		"destinationStation": patch.DestinationStation,
		"departureTime":      patch.DepartureTime,
		"arrivalTime":        patch.ArrivalTime,
		"trainNumber":        patch.TrainNumber,
		"status":             patch.Status,
		"trainType":          patch.TrainType,
	}); err != nil {
		return nil, err
	}
	var r *domain.TrainRoute
	err := s.audit.Do(ctx, actor, CategoryTrainRoutes, func(tx domain.Storage) (string, error) {
		var err error
		if r, err = tx.UpdateTrainRoute(ctx, id, patch); err != nil {
			return "", err
		}
		if r == nil {
			return "", ErrNotFound
		}
		return "Updated train route " + r.TrainNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteTrainRoute removes a train route.
func (s *RouteService) DeleteTrainRoute(ctx context.Context, actor *domain.User, id int64) error {
	return s.audit.Do(ctx, actor, CategoryTrainRoutes, func(tx domain.Storage) (string, error) {
		ok, err := tx.DeleteTrainRoute(ctx, id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNotFound
		}
		return fmt.Sprintf("Deleted train route #%d", id), nil
	})
}

// ListBusRoutes returns every bus route.
func (s *RouteService) ListBusRoutes(ctx context.Context) ([]domain.BusRoute, error) {
	return s.buses.ListBusRoutes(ctx)
}

// ActiveBusRoutes returns the bus routes shown on the user dashboard.
func (s *RouteService) ActiveBusRoutes(ctx context.Context) ([]domain.BusRoute, error) {
	all, err := s.buses.ListBusRoutes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BusRoute, 0, len(all))
	for _, r := range all {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetBusRoute returns one bus route or ErrNotFound.
func (s *RouteService) GetBusRoute(ctx context.Context, id int64) (*domain.BusRoute, error) {
	r, err := s.buses.GetBusRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// CreateBusRoute validates and stores a bus route.
func (s *RouteService) CreateBusRoute(ctx context.Context, actor *domain.User, in domain.BusRouteInput) (*domain.BusRoute, error) {
	if err := requireFields(map[string]string{
		"routeName":       in.RouteName,
		"routeNumber":     in.RouteNumber,
		"sourceStop":      in.SourceStop,
		"destinationStop": in.DestinationStop,
		"departureTime":   in.DepartureTime,
		"arrivalTime":     in.ArrivalTime,
		"frequency":       in.Frequency,
		"fare":            in.Fare,
	}); err != nil {
		return nil, err
	}
	var r *domain.BusRoute
	err := s.audit.Do(ctx, actor, CategoryBusRoutes, func(tx domain.Storage) (string, error) {
		var err error
		if r, err = tx.CreateBusRoute(ctx, domain.NewBusRoute(in)); err != nil {
			return "", err
		}
		return "Created bus route " + r.RouteNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateBusRoute merges patch into an existing bus route. Fields that a
// route must carry cannot be blanked.
func (s *RouteService) UpdateBusRoute(ctx context.Context, actor *domain.User, id int64, patch domain.BusRoutePatch) (*domain.BusRoute, error) {
	if err := rejectBlank(map[string]*string{
		"routeName":       patch.RouteName,
		"routeNumber":     patch.RouteNumber,
		"sourceStop":      patch.SourceStop,
		"destinationStop": patch.DestinationStop,
		"departureTime":   patch.DepartureTime,
		"arrivalTime":     patch.ArrivalTime,
		"frequency":       patch.Frequency,
		"fare":            patch.Fare,
		"busType":         patch.BusType,
	}); err != nil {
		return nil, err
	}
	var r *domain.BusRoute
	err := s.audit.Do(ctx, actor, CategoryBusRoutes, func(tx domain.Storage) (string, error) {
		var err error
		if r, err = tx.UpdateBusRoute(ctx, id, patch); err != nil {
			return "", err
		}
		if r == nil {
			return "", ErrNotFound
		}
		return "Updated bus route " + r.RouteNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteBusRoute removes a bus route.
func (s *RouteService) DeleteBusRoute(ctx context.Context, actor *domain.User, id int64) error {
	return s.audit.Do(ctx, actor, CategoryBusRoutes, func(tx domain.Storage) (string, error) {
		ok, err := tx.DeleteBusRoute(ctx, id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNotFound
		}
		return fmt.Sprintf("Deleted bus route #%d", id), nil
	})
}

// requireFields returns ErrInvalidInput listing every blank field.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: %s is required", ErrInvalidInput, strings.Join(missing, ", "))
}

// rejectBlank returns ErrInvalidInput listing every present field that is
// blank. Nil fields are left alone.
func rejectBlank(fields map[string]*string) error {
	present := make(map[string]string, len(fields))
	for name, v := range fields {
		if v != nil {
			present[name] = *v
		}
	}
	return requireFields(present)
}
