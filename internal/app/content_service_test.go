package app

import (
	"context"
	"testing"
	"time"

	"github.com/farhancoder7071/journynow/internal/adapter/memory"
	"github.com/farhancoder7071/journynow/internal/domain"
)

func TestContentService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin, err := store.CreateUser(ctx, domain.NewUser("admin", "digest", "Admin User", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	svc := NewContentService(store, NewAuditor(store))

	c, err := svc.Create(ctx, admin, ContentInput{Title: "Service notice", Summary: "Weekend block"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Author != "Admin User" {
		t.Errorf("expected author from full name, got %q", c.Author)
	}
	if c.Status != domain.StatusPublic || c.Views != 0 || c.PublishedDate.IsZero() {
		t.Errorf("defaults not applied: %+v", c)
	}

	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c, err = svc.Create(ctx, admin, ContentInput{Title: "Handbook", Status: "internal", Author: "HR", PublishedDate: when, Views: 76})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Author != "HR" || c.Status != "internal" || !c.PublishedDate.Equal(when) || c.Views != 76 {
		t.Errorf("explicit values not kept: %+v", c)
	}

	if _, err := svc.Create(ctx, admin, ContentInput{}); err == nil {
		t.Error("expected error for missing title")
	}
	list, _ := svc.List(ctx)
	if len(list) != 2 {
		t.Errorf("expected 2 contents, got %d", len(list))
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	alice := seedUser(t, store, "alice", domain.RoleUser)

	off := false
	_, _ = store.CreateTrainRoute(ctx, domain.NewTrainRoute(domain.TrainRouteInput{RouteName: "A"}))
	_, _ = store.CreateTrainRoute(ctx, domain.NewTrainRoute(domain.TrainRouteInput{RouteName: "B", IsActive: &off}))
	_, _ = store.CreateBusRoute(ctx, domain.NewBusRoute(domain.BusRouteInput{RouteName: "C"}))

	crowd := NewCrowdService(store, NewAuditor(store))
	r, _ := crowd.Submit(ctx, alice, CrowdReportInput{StationName: "Dadar", CrowdLevel: "high", TransportType: "train"})
	_, _ = crowd.Submit(ctx, alice, CrowdReportInput{StationName: "Sion", CrowdLevel: "low", TransportType: "bus"})
	_, _ = crowd.Approve(ctx, admin, r.ID)

	a, err := NewAnalyticsService(store).Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if a.Users != 2 || a.Admins != 1 {
		t.Errorf("users = %d admins = %d", a.Users, a.Admins)
	}
	if a.TrainRoutes != 2 || a.ActiveTrainRoutes != 1 || a.BusRoutes != 1 || a.ActiveBusRoutes != 1 {
		t.Errorf("unexpected route counts %+v", a)
	}
	if a.CrowdReports != 2 || a.PendingCrowdReports != 1 {
		t.Errorf("unexpected report counts %+v", a)
	}
	if a.CrowdLevels["high"] != 1 || a.CrowdLevels["low"] != 1 || a.CrowdLevels["medium"] != 0 {
		t.Errorf("unexpected crowd levels %v", a.CrowdLevels)
	}
}

func TestDashboardService_ScopedToCaller(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	alice := seedUser(t, store, "alice", domain.RoleUser)
	bob := seedUser(t, store, "bob", domain.RoleUser)

	_, _ = store.CreateActivity(ctx, domain.NewActivity(alice.ID, "Viewed", "Routes"))
	_, _ = store.CreateDocument(ctx, domain.NewDocument(bob.ID, "Pass", "Tickets", "PDF"))

	svc := NewDashboardService(store, store)
	if acts, _ := svc.Activities(ctx, alice); len(acts) != 1 {
		t.Errorf("expected 1 activity for alice, got %d", len(acts))
	}
	if acts, _ := svc.Activities(ctx, bob); len(acts) != 0 {
		t.Errorf("expected no activities for bob, got %d", len(acts))
	}
	if docs, _ := svc.Documents(ctx, alice); len(docs) != 0 {
		t.Errorf("expected no documents for alice, got %d", len(docs))
	}
}
