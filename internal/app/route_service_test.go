package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/farhancoder7071/journynow/internal/adapter/memory"
	"github.com/farhancoder7071/journynow/internal/domain"
)

func TestRouteService_TrainLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	svc := NewRouteService(store, store, NewAuditor(store))

	inactive := false
	if _, err := svc.CreateTrainRoute(ctx, admin, domain.TrainRouteInput{
		RouteName: "Harbour", SourceStation: "CSMT", DestinationStation: "Panvel",
		DepartureTime: "06:00", ArrivalTime: "07:20", TrainNumber: "H-1", IsActive: &inactive,
	}); err != nil {
		t.Fatalf("CreateTrainRoute: %v", err)
	}
	r, err := svc.CreateTrainRoute(ctx, admin, domain.TrainRouteInput{
		RouteName: "Central", SourceStation: "CSMT", DestinationStation: "Thane",
		DepartureTime: "08:00", ArrivalTime: "08:50", TrainNumber: "C-1",
	})
	if err != nil {
		t.Fatalf("CreateTrainRoute: %v", err)
	}

	active, _ := svc.ActiveTrainRoutes(ctx)
	if len(active) != 1 || active[0].ID != r.ID {
		t.Fatalf("expected only the active route, got %+v", active)
	}

	status := "delayed"
	updated, err := svc.UpdateTrainRoute(ctx, admin, r.ID, domain.TrainRoutePatch{Status: &status})
	if err != nil || updated.Status != "delayed" {
		t.Fatalf("UpdateTrainRoute = %+v, %v", updated, err)
	}
	if err := svc.DeleteTrainRoute(ctx, admin, r.ID); err != nil {
		t.Fatalf("DeleteTrainRoute: %v", err)
	}
	if _, err := svc.GetTrainRoute(ctx, r.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteTrainRoute(ctx, admin, r.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	acts, _ := store.ListActivitiesByUser(ctx, admin.ID)
	if len(acts) != 4 {
		t.Errorf("expected 4 activities, got %d", len(acts))
	}
}

func TestRouteService_CreateBusRouteRequiresFields(t *testing.T) {
	store := memory.New()
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	svc := NewRouteService(store, store, NewAuditor(store))

	_, err := svc.CreateBusRoute(context.Background(), admin, domain.BusRouteInput{RouteName: "Only name"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "arrivalTime, departureTime") {
		t.Errorf("expected sorted field list, got %q", err)
	}
	if list, _ := svc.ListBusRoutes(context.Background()); len(list) != 0 {
		t.Errorf("nothing should be stored, got %d", len(list))
	}
}

func TestRouteService_UpdateRejectsBlankRequiredFields(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	svc := NewRouteService(store, store, NewAuditor(store))

	train, err := svc.CreateTrainRoute(ctx, admin, domain.TrainRouteInput{
		RouteName: "Central", SourceStation: "CSMT", DestinationStation: "Thane",
		DepartureTime: "08:00", ArrivalTime: "08:50", TrainNumber: "C-1",
	})
	if err != nil {
		t.Fatalf("CreateTrainRoute: %v", err)
	}
	blank, empty := "  ", ""
	_, err = svc.UpdateTrainRoute(ctx, admin, train.ID, domain.TrainRoutePatch{RouteName: &blank, TrainNumber: &empty})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "routeName, trainNumber") {
		t.Errorf("expected both fields named, got %q", err)
	}
	stored, _ := svc.GetTrainRoute(ctx, train.ID)
	if stored.RouteName != "Central" || stored.TrainNumber != "C-1" {
		t.Errorf("route should be unchanged, got %+v", stored)
	}

	bus, err := svc.CreateBusRoute(ctx, admin, domain.BusRouteInput{
		RouteName: "Airport", RouteNumber: "A1", SourceStop: "Depot", DestinationStop: "T2",
		DepartureTime: "05:00", ArrivalTime: "05:45", Frequency: "15 min", Fare: "₹50",
	})
	if err != nil {
		t.Fatalf("CreateBusRoute: %v", err)
	}
	if _, err := svc.UpdateBusRoute(ctx, admin, bus.ID, domain.BusRoutePatch{Fare: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Untouched fields stay optional in a patch.
	fare := "₹60"
	if updated, err := svc.UpdateBusRoute(ctx, admin, bus.ID, domain.BusRoutePatch{Fare: &fare}); err != nil || updated.Fare != fare {
		t.Fatalf("UpdateBusRoute = %+v, %v", updated, err)
	}
}

func TestRouteService_AuditFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	svc := NewRouteService(store, store, NewAuditor(failingActivities{store}))

	_, err := svc.CreateTrainRoute(ctx, admin, domain.TrainRouteInput{
		RouteName: "Central", SourceStation: "CSMT", DestinationStation: "Thane",
		DepartureTime: "08:00", ArrivalTime: "08:50", TrainNumber: "C-1",
	})
	if err == nil {
		t.Fatal("expected audit failure to surface")
	}
	if list, _ := svc.ListTrainRoutes(ctx); len(list) != 0 {
		t.Errorf("route should not be kept, got %+v", list)
	}
}
