package domain

import (
	"context"
	"time"
)

// Defaults applied by NewTrainRoute and NewBusRoute.
const (
	DefaultTrainStatus = "on-time"
	DefaultTrainType   = "local"
	DefaultBusType     = "regular"
)

// TrainRoute is a scheduled train service.
type TrainRoute struct {
	ID                 int64     `json:"id"`
	RouteName          string    `json:"routeName"`
	SourceStation      string    `json:"sourceStation"`
	DestinationStation string    `json:"destinationStation"`
	DepartureTime      string    `json:"departureTime"`
	ArrivalTime        string    `json:"arrivalTime"`
	Status             string    `json:"status"`
	TrainNumber        string    `json:"trainNumber"`
	TrainType          string    `json:"trainType"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TrainRouteInput is the client-supplied part of a new train route.
type TrainRouteInput struct {
	RouteName          string `json:"routeName"`
	SourceStation      string `json:"sourceStation"`
	DestinationStation string `json:"destinationStation"`
	DepartureTime      string `json:"departureTime"`
	ArrivalTime        string `json:"arrivalTime"`
	Status             string `json:"status"`
	TrainNumber        string `json:"trainNumber"`
	TrainType          string `json:"trainType"`
	IsActive           *bool  `json:"isActive"`
}

// NewTrainRoute fills defaults for status, type and the active flag.
// Timestamps are assigned by the store.
func NewTrainRoute(in TrainRouteInput) TrainRoute {
	r := TrainRoute{
		RouteName:          in.RouteName,
		SourceStation:      in.SourceStation,
		DestinationStation: in.DestinationStation,
		DepartureTime:      in.DepartureTime,
		ArrivalTime:        in.ArrivalTime,
		Status:             in.Status,
		TrainNumber:        in.TrainNumber,
		TrainType:          in.TrainType,
		IsActive:           true,
	}
	if r.Status == "" {
		r.Status = DefaultTrainStatus
	}
	if r.TrainType == "" {
		r.TrainType = DefaultTrainType
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	return r
}

// TrainRoutePatch is a partial update; nil fields are left unchanged.
type TrainRoutePatch struct {
	RouteName          *string `json:"routeName"`
	SourceStation      *string `json:"sourceStation"`
	DestinationStation *string `json:"destinationStation"`
	DepartureTime      *string `json:"departureTime"`
	ArrivalTime        *string `json:"arrivalTime"`
	Status             *string `json:"status"`
	TrainNumber        *string `json:"trainNumber"`
	TrainType          *string `json:"trainType"`
	IsActive           *bool   `json:"isActive"`
}

// Apply merges p into r. UpdatedAt is refreshed by the store.
func (p TrainRoutePatch) Apply(r *TrainRoute) {
	setString(&r.RouteName, p.RouteName)
	setString(&r.SourceStation, p.SourceStation)
	setString(&r.DestinationStation, p.DestinationStation)
	setString(&r.DepartureTime, p.DepartureTime)
	setString(&r.ArrivalTime, p.ArrivalTime)
	setString(&r.Status, p.Status)
	setString(&r.TrainNumber, p.TrainNumber)
	setString(&r.TrainType, p.TrainType)
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}

// BusRoute is a scheduled bus service.
type BusRoute struct {
	ID              int64     `json:"id"`
	RouteName       string    `json:"routeName"`
	RouteNumber     string    `json:"routeNumber"`
	SourceStop      string    `json:"sourceStop"`
	DestinationStop string    `json:"destinationStop"`
	DepartureTime   string    `json:"departureTime"`
	ArrivalTime     string    `json:"arrivalTime"`
	Frequency       string    `json:"frequency"`
	BusType         string    `json:"busType"`
	Fare            string    `json:"fare"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BusRouteInput is the client-supplied part of a new bus route.
type BusRouteInput struct {
	RouteName       string `json:"routeName"`
	RouteNumber     string `json:"routeNumber"`
	SourceStop      string `json:"sourceStop"`
	DestinationStop string `json:"destinationStop"`
	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	Frequency       string `json:"frequency"`
	BusType         string `json:"busType"`
	Fare            string `json:"fare"`
	IsActive        *bool  `json:"isActive"`
}

// NewBusRoute fills defaults for bus type and the active flag.
func NewBusRoute(in BusRouteInput) BusRoute {
	r := BusRoute{
		RouteName:       in.RouteName,
		RouteNumber:     in.RouteNumber,
		SourceStop:      in.SourceStop,
		DestinationStop: in.DestinationStop,
		DepartureTime:   in.DepartureTime,
		ArrivalTime:     in.ArrivalTime,
		Frequency:       in.Frequency,
		BusType:         in.BusType,
		Fare:            in.Fare,
		IsActive:        true,
	}
	if r.BusType == "" {
		r.BusType = DefaultBusType
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	return r
}

// BusRoutePatch is a partial update; nil fields are left unchanged.
type BusRoutePatch struct {
	RouteName       *string `json:"routeName"`
	RouteNumber     *string `json:"routeNumber"`
	SourceStop      *string `json:"sourceStop"`
	DestinationStop *string `json:"destinationStop"`
	DepartureTime   *string `json:"departureTime"`
	ArrivalTime     *string `json:"arrivalTime"`
	Frequency       *string `json:"frequency"`
	BusType         *string `json:"busType"`
	Fare            *string `json:"fare"`
	IsActive        *bool   `json:"isActive"`
}

// Apply merges p into r.
func (p BusRoutePatch) Apply(r *BusRoute) {
	setString(&r.RouteName, p.RouteName)
	setString(&r.RouteNumber, p.RouteNumber)
	setString(&r.SourceStop, p.SourceStop)
	setString(&r.DestinationStop, p.DestinationStop)
	setString(&r.DepartureTime, p.DepartureTime)
	setString(&r.ArrivalTime, p.ArrivalTime)
	setString(&r.Frequency, p.Frequency)
	setString(&r.BusType, p.BusType)
	setString(&r.Fare, p.Fare)
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// TrainRouteRepository is the port for train route persistence.
type TrainRouteRepository interface {
	ListTrainRoutes(ctx context.Context) ([]TrainRoute, error)
	GetTrainRoute(ctx context.Context, id int64) (*TrainRoute, error)
	CreateTrainRoute(ctx context.Context, r TrainRoute) (*TrainRoute, error)
	UpdateTrainRoute(ctx context.Context, id int64, patch TrainRoutePatch) (*TrainRoute, error)
	DeleteTrainRoute(ctx context.Context, id int64) (bool, error)
}

// BusRouteRepository is the port for bus route persistence.
type BusRouteRepository interface {
	ListBusRoutes(ctx context.Context) ([]BusRoute, error)
	GetBusRoute(ctx context.Context, id int64) (*BusRoute, error)
	CreateBusRoute(ctx context.Context, r BusRoute) (*BusRoute, error)
	UpdateBusRoute(ctx context.Context, id int64, patch BusRoutePatch) (*BusRoute, error)
	DeleteBusRoute(ctx context.Context, id int64) (bool, error)
}
