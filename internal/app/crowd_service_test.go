package app

import (
	"context"
	"errors"
	"testing"

	"github.com/farhancoder7071/journynow/internal/adapter/memory"
	"github.com/farhancoder7071/journynow/internal/domain"
)

func TestCrowdService_SubmitValidation(t *testing.T) {
	store := memory.New()
	user := seedUser(t, store, "alice", domain.RoleUser)
	svc := NewCrowdService(store, NewAuditor(store))

	tests := []struct {
		name    string
		in      CrowdReportInput
		wantErr bool
	}{
		{"valid", CrowdReportInput{StationName: "Dadar", CrowdLevel: "high", TransportType: "train"}, false},
		{"blank station", CrowdReportInput{StationName: " ", CrowdLevel: "high", TransportType: "train"}, true},
		{"bad level", CrowdReportInput{StationName: "Dadar", CrowdLevel: "packed", TransportType: "train"}, true},
		{"bad transport", CrowdReportInput{StationName: "Dadar", CrowdLevel: "low", TransportType: "ferry"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := svc.Submit(context.Background(), user, tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if r.IsApproved || r.UserID != user.ID {
				t.Errorf("unexpected report %+v", r)
			}
		})
	}
}

func TestCrowdService_StationVisibility(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	alice := seedUser(t, store, "alice", domain.RoleUser)
	svc := NewCrowdService(store, NewAuditor(store))

	pending, err := svc.Submit(ctx, alice, CrowdReportInput{StationName: "Dadar", CrowdLevel: "high", TransportType: "train"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	seen, _ := svc.ByStation(ctx, alice, "Dadar")
	if len(seen) != 0 {
		t.Fatalf("non-admin should not see unapproved reports, got %d", len(seen))
	}
	seen, _ = svc.ByStation(ctx, admin, "Dadar")
	if len(seen) != 1 {
		t.Fatalf("admin should see unapproved reports, got %d", len(seen))
	}

	if _, err := svc.Approve(ctx, admin, pending.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	seen, _ = svc.ByStation(ctx, alice, "Dadar")
	if len(seen) != 1 || !seen[0].IsApproved {
		t.Fatalf("approved report should be visible, got %+v", seen)
	}

	mine, _ := svc.Mine(ctx, alice)
	if len(mine) != 1 {
		t.Errorf("expected 1 own report, got %d", len(mine))
	}
	acts, _ := store.ListActivitiesByUser(ctx, admin.ID)
	if len(acts) != 1 || acts[0].Category != CategoryCrowdReports {
		t.Errorf("expected approval activity, got %+v", acts)
	}

	if _, err := svc.Approve(ctx, admin, 999); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
