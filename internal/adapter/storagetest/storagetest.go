// Package storagetest holds the behavioural contract every domain.Storage
// implementation must satisfy. Adapters call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/farhancoder7071/journynow/internal/domain"
)

// Opener returns an empty storage for one subtest.
type Opener func(t *testing.T) domain.Storage

// Run executes the full contract against the storage returned by open.
func Run(t *testing.T, open Opener) {
	t.Helper()
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("UserUpdateMissing", func(t *testing.T) { testUserUpdateMissing(t, open(t)) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, open(t)) })
	t.Run("ActivitiesDocumentsContents", func(t *testing.T) { testAppendOnly(t, open(t)) })
	t.Run("TrainRoutes", func(t *testing.T) { testTrainRoutes(t, open(t)) })
	t.Run("BusRoutes", func(t *testing.T) { testBusRoutes(t, open(t)) })
	t.Run("CrowdReports", func(t *testing.T) { testCrowdReports(t, open(t)) })
	t.Run("AdSettings", func(t *testing.T) { testAdSettings(t, open(t)) })
	t.Run("AppSettings", func(t *testing.T) { testAppSettings(t, open(t)) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, open(t)) })
	t.Run("Atomically", func(t *testing.T) { testAtomically(t, open(t)) })
}

func ptr[T any](v T) *T { return &v }

func testUsers(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	u, err := s.CreateUser(ctx, domain.NewUser("bob", "digest", "Bob B", ""))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if u.Role != domain.RoleUser {
		t.Errorf("expected default role user, got %q", u.Role)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be assigned")
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if !reflect.DeepEqual(got, u) {
		t.Errorf("GetUser = %+v, want %+v", got, u)
	}

	byName, err := s.GetUserByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName == nil || byName.ID != u.ID {
		t.Fatalf("GetUserByUsername returned %+v", byName)
	}

	missing, err := s.GetUserByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown username; got %+v, %v", missing, err)
	}

	if _, err := s.CreateUser(ctx, domain.NewUser("bob", "other", "", "")); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	role := domain.RoleAdmin
	updated, err := s.UpdateUser(ctx, u.ID, domain.UserPatch{Role: &role, FullName: ptr("")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated == nil || updated.Role != domain.RoleAdmin || updated.FullName != nil {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Username != "bob" || updated.PasswordHash != "digest" {
		t.Errorf("update touched immutable fields: %+v", updated)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}

	ok, err := s.DeleteUser(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("first DeleteUser = %v, %v; want true", ok, err)
	}
	ok, err = s.DeleteUser(ctx, u.ID)
	if err != nil || ok {
		t.Fatalf("second DeleteUser = %v, %v; want false", ok, err)
	}

	again, err := s.CreateUser(ctx, domain.NewUser("carol", "digest", "", ""))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if again.ID <= u.ID {
		t.Errorf("id %d reused or went backwards (previous %d)", again.ID, u.ID)
	}
}

func testUserUpdateMissing(t *testing.T, s domain.Storage) {
	ctx := context.Background()
	if _, err := s.CreateUser(ctx, domain.NewUser("dave", "digest", "", "")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	role := domain.RoleAdmin
	got, err := s.UpdateUser(ctx, 9999, domain.UserPatch{Role: &role})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
	users, _ := s.ListUsers(ctx)
	if len(users) != 1 {
		t.Fatalf("update of missing id changed user count to %d", len(users))
	}
}

func testConcurrentCreates(t *testing.T, s domain.Storage) {
	ctx := context.Background()
	const n = 32

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.CreateActivity(ctx, domain.NewActivity(1, "concurrent", "Test"))
			if err != nil {
				t.Errorf("CreateActivity: %v", err)
				return
			}
			ids <- a.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
}

func testAppendOnly(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	a, err := s.CreateActivity(ctx, domain.NewActivity(7, "Created route", "Train routes"))
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	if a.Timestamp.IsZero() || a.Status != domain.ActivityStatusCompleted {
		t.Errorf("activity defaults not applied: %+v", a)
	}
	_, _ = s.CreateActivity(ctx, domain.NewActivity(8, "Other user", "Users"))

	acts, err := s.ListActivitiesByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListActivitiesByUser: %v", err)
	}
	if len(acts) != 1 || !reflect.DeepEqual(acts[0], *a) {
		t.Fatalf("ListActivitiesByUser = %+v, want [%+v]", acts, *a)
	}

	d, err := s.CreateDocument(ctx, domain.NewDocument(7, "Guide", "Guides", "PDF"))
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	docs, err := s.ListDocumentsByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListDocumentsByUser: %v", err)
	}
	if len(docs) != 1 || !reflect.DeepEqual(docs[0], *d) {
		t.Fatalf("ListDocumentsByUser = %+v, want [%+v]", docs, *d)
	}
	if others, _ := s.ListDocumentsByUser(ctx, 8); len(others) != 0 {
		t.Errorf("expected no documents for other user, got %d", len(others))
	}

	c, err := s.CreateContent(ctx, domain.NewContent("Notice", "Service change", "Admin"))
	if err != nil {
		t.Fatalf("CreateContent: %v", err)
	}
	if c.Status != domain.StatusPublic || c.PublishedDate.IsZero() {
		t.Errorf("content defaults not applied: %+v", c)
	}
	contents, err := s.ListContents(ctx)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(contents) != 1 || !reflect.DeepEqual(contents[0], *c) {
		t.Fatalf("ListContents = %+v, want [%+v]", contents, *c)
	}
}

func testTrainRoutes(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	created, err := s.CreateTrainRoute(ctx, domain.NewTrainRoute(domain.TrainRouteInput{
		RouteName:          "Western Line",
		SourceStation:      "Churchgate",
		DestinationStation: "Borivali",
		DepartureTime:      "07:30",
		ArrivalTime:        "08:45",
		TrainNumber:        "MUM-002",
	}))
	if err != nil {
		t.Fatalf("CreateTrainRoute: %v", err)
	}
	if created.Status != domain.DefaultTrainStatus || created.TrainType != domain.DefaultTrainType || !created.IsActive {
		t.Errorf("defaults not applied: %+v", created)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps not stamped: %+v", created)
	}

	got, err := s.GetTrainRoute(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTrainRoute: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Fatalf("GetTrainRoute = %+v, want %+v", got, created)
	}

	time.Sleep(2 * time.Millisecond)
	updated, err := s.UpdateTrainRoute(ctx, created.ID, domain.TrainRoutePatch{Status: ptr("delayed"), IsActive: ptr(false)})
	if err != nil {
		t.Fatalf("UpdateTrainRoute: %v", err)
	}
	if updated.Status != "delayed" || updated.IsActive || updated.RouteName != "Western Line" {
		t.Errorf("unexpected merge: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update")
	}

	missing, err := s.UpdateTrainRoute(ctx, 9999, domain.TrainRoutePatch{Status: ptr("x")})
	if err != nil || missing != nil {
		t.Fatalf("update of missing id = %+v, %v", missing, err)
	}
	if list, _ := s.ListTrainRoutes(ctx); len(list) != 1 {
		t.Fatalf("expected 1 route, got %d", len(list))
	}

	if ok, _ := s.DeleteTrainRoute(ctx, created.ID); !ok {
		t.Fatal("expected first delete to succeed")
	}
	if ok, _ := s.DeleteTrainRoute(ctx, created.ID); ok {
		t.Fatal("expected second delete to report false")
	}
	if got, _ := s.GetTrainRoute(ctx, created.ID); got != nil {
		t.Fatal("expected deleted route to be gone")
	}
}

func testBusRoutes(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	created, err := s.CreateBusRoute(ctx, domain.NewBusRoute(domain.BusRouteInput{
		RouteName:       "Bandra Local",
		RouteNumber:     "BUS-211",
		SourceStop:      "Bandra",
		DestinationStop: "Kurla",
		DepartureTime:   "08:00",
		ArrivalTime:     "09:15",
		Frequency:       "every 10 min",
		Fare:            "25",
	}))
	if err != nil {
		t.Fatalf("CreateBusRoute: %v", err)
	}
	if created.BusType != domain.DefaultBusType || !created.IsActive {
		t.Errorf("defaults not applied: %+v", created)
	}
	got, _ := s.GetBusRoute(ctx, created.ID)
	if !reflect.DeepEqual(got, created) {
		t.Fatalf("GetBusRoute = %+v, want %+v", got, created)
	}

	updated, err := s.UpdateBusRoute(ctx, created.ID, domain.BusRoutePatch{Fare: ptr("30")})
	if err != nil || updated == nil || updated.Fare != "30" || updated.RouteNumber != "BUS-211" {
		t.Fatalf("UpdateBusRoute = %+v, %v", updated, err)
	}
	if missing, _ := s.UpdateBusRoute(ctx, 9999, domain.BusRoutePatch{}); missing != nil {
		t.Fatal("expected nil for missing id")
	}
	if ok, _ := s.DeleteBusRoute(ctx, created.ID); !ok {
		t.Fatal("expected delete to succeed")
	}
	if ok, _ := s.DeleteBusRoute(ctx, created.ID); ok {
		t.Fatal("expected second delete to report false")
	}
}

func testCrowdReports(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	routeID := int64(3)
	r := domain.NewCrowdReport(5, "Dadar", domain.CrowdHigh, domain.TransportTrain, &routeID)
	r.IsApproved = true
	created, err := s.CreateCrowdReport(ctx, r)
	if err != nil {
		t.Fatalf("CreateCrowdReport: %v", err)
	}
	if created.IsApproved {
		t.Fatal("new reports must start unapproved")
	}
	if created.RouteID == nil || *created.RouteID != 3 {
		t.Errorf("route id lost: %+v", created.RouteID)
	}
	_, _ = s.CreateCrowdReport(ctx, domain.NewCrowdReport(6, "Sion", domain.CrowdLow, domain.TransportBus, nil))

	byStation, _ := s.ListCrowdReportsByStation(ctx, "Dadar")
	if len(byStation) != 1 || !reflect.DeepEqual(byStation[0], *created) {
		t.Fatalf("ListCrowdReportsByStation = %+v", byStation)
	}
	byUser, _ := s.ListCrowdReportsByUser(ctx, 6)
	if len(byUser) != 1 || byUser[0].StationName != "Sion" {
		t.Fatalf("ListCrowdReportsByUser = %+v", byUser)
	}
	all, _ := s.ListCrowdReports(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(all))
	}

	approved, err := s.ApproveCrowdReport(ctx, created.ID)
	if err != nil || approved == nil || !approved.IsApproved {
		t.Fatalf("ApproveCrowdReport = %+v, %v", approved, err)
	}
	again, _ := s.ApproveCrowdReport(ctx, created.ID)
	if again == nil || !again.IsApproved {
		t.Fatal("second approval should be a no-op returning the report")
	}
	if missing, _ := s.ApproveCrowdReport(ctx, 9999); missing != nil {
		t.Fatal("expected nil approving a missing report")
	}
}

func testAdSettings(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	created, err := s.CreateAdSetting(ctx, domain.NewAdSetting(domain.AdSettingInput{AdType: domain.AdBanner}, 1))
	if err != nil {
		t.Fatalf("CreateAdSetting: %v", err)
	}
	if created.Frequency != domain.DefaultAdFrequency || created.Position != domain.DefaultAdPosition || !created.IsActive {
		t.Errorf("defaults not applied: %+v", created)
	}
	got, _ := s.GetAdSetting(ctx, created.ID)
	if !reflect.DeepEqual(got, created) {
		t.Fatalf("GetAdSetting = %+v, want %+v", got, created)
	}

	by := int64(2)
	updated, err := s.UpdateAdSetting(ctx, created.ID, domain.AdSettingPatch{IsActive: ptr(false), UpdatedBy: &by})
	if err != nil || updated == nil || updated.IsActive || updated.UpdatedBy != 2 {
		t.Fatalf("UpdateAdSetting = %+v, %v", updated, err)
	}
	if missing, _ := s.UpdateAdSetting(ctx, 9999, domain.AdSettingPatch{}); missing != nil {
		t.Fatal("expected nil for missing id")
	}
	if list, _ := s.ListAdSettings(ctx); len(list) != 1 {
		t.Fatalf("expected 1 ad setting, got %d", len(list))
	}
}

func testAppSettings(t *testing.T, s domain.Storage) {
	ctx := context.Background()
	by := int64(1)

	first, err := s.UpsertAppSetting(ctx, domain.AppSettingInput{Category: "general", Key: "siteName", Value: "Transit App", UpdatedBy: &by})
	if err != nil {
		t.Fatalf("UpsertAppSetting: %v", err)
	}
	second, err := s.UpsertAppSetting(ctx, domain.AppSettingInput{Category: "general", Key: "siteName", Value: "JourneyNow"})
	if err != nil {
		t.Fatalf("UpsertAppSetting: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %d vs %d", second.ID, first.ID)
	}
	if second.Value != "JourneyNow" || second.UpdatedBy != nil {
		t.Errorf("upsert did not replace value/updatedBy: %+v", second)
	}

	_, _ = s.UpsertAppSetting(ctx, domain.AppSettingInput{Category: "email", Key: "smtpPort", Value: "587"})

	general, _ := s.ListAppSettingsByCategory(ctx, "general")
	if len(general) != 1 || general[0].Value != "JourneyNow" {
		t.Fatalf("ListAppSettingsByCategory = %+v", general)
	}
	all, _ := s.ListAppSettings(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(all))
	}
	got, _ := s.GetAppSetting(ctx, "general", "siteName")
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("GetAppSetting = %+v, want %+v", got, second)
	}
	if missing, _ := s.GetAppSetting(ctx, "general", "nope"); missing != nil {
		t.Fatal("expected nil for unknown key")
	}

	if ok, _ := s.DeleteAppSetting(ctx, first.ID); !ok {
		t.Fatal("expected delete to succeed")
	}
	if ok, _ := s.DeleteAppSetting(ctx, first.ID); ok {
		t.Fatal("expected second delete to report false")
	}
}

func testSessions(t *testing.T, s domain.Storage) {
	ctx := context.Background()
	repo := s.Sessions()

	u, err := s.CreateUser(ctx, domain.NewUser("erin", "digest", "", ""))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := repo.Create(ctx, u.ID, "live", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, u.ID, "stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	sess, err := repo.GetByToken(ctx, "live")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserID != u.ID {
		t.Fatalf("expected live session for user %d, got %+v", u.ID, sess)
	}

	if stale, _ := repo.GetByToken(ctx, "stale"); stale != nil {
		t.Fatal("expired session must be treated as absent")
	}
	if _, err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	if err := repo.Delete(ctx, "live"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "live"); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}
	if sess, _ := repo.GetByToken(ctx, "live"); sess != nil {
		t.Fatal("expected nil after delete")
	}

	_ = repo.Create(ctx, u.ID, "a", time.Now().Add(time.Hour))
	_ = repo.Create(ctx, u.ID, "b", time.Now().Add(time.Hour))
	n, err := repo.DeleteByUserID(ctx, u.ID)
	if err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 sessions removed, got %d", n)
	}
}

func testAtomically(t *testing.T, s domain.Storage) {
	ctx := context.Background()
	errAbort := errors.New("abort")

	kept, err := s.CreateUser(ctx, domain.NewUser("kept", "digest", "Kept", ""))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	route, err := s.CreateTrainRoute(ctx, domain.NewTrainRoute(domain.TrainRouteInput{RouteName: "Central", TrainNumber: "C-1"}))
	if err != nil {
		t.Fatalf("CreateTrainRoute: %v", err)
	}
	if _, err := s.UpsertAppSetting(ctx, domain.AppSettingInput{Category: "general", Key: "appName", Value: "before"}); err != nil {
		t.Fatalf("UpsertAppSetting: %v", err)
	}

	err = s.Atomically(ctx, func(tx domain.Storage) error {
		if _, err := tx.CreateUser(ctx, domain.NewUser("ghost", "digest", "", "")); err != nil {
			return err
		}
		if _, err := tx.UpdateUser(ctx, kept.ID, domain.UserPatch{FullName: ptr("Changed")}); err != nil {
			return err
		}
		if _, err := tx.DeleteTrainRoute(ctx, route.ID); err != nil {
			return err
		}
		if _, err := tx.UpsertAppSetting(ctx, domain.AppSettingInput{Category: "general", Key: "appName", Value: "after"}); err != nil {
			return err
		}
		if _, err := tx.CreateActivity(ctx, domain.NewActivity(kept.ID, "Changed things", "Users")); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("Atomically = %v, want the callback error", err)
	}

	if u, _ := s.GetUserByUsername(ctx, "ghost"); u != nil {
		t.Error("insert inside a failed unit of work should be undone")
	}
	if u, _ := s.GetUser(ctx, kept.ID); u == nil || u.FullName == nil || *u.FullName != "Kept" {
		t.Errorf("update inside a failed unit of work should be undone, got %+v", u)
	}
	if r, _ := s.GetTrainRoute(ctx, route.ID); r == nil {
		t.Error("delete inside a failed unit of work should be undone")
	}
	if set, _ := s.GetAppSetting(ctx, "general", "appName"); set == nil || set.Value != "before" {
		t.Errorf("upsert inside a failed unit of work should be undone, got %+v", set)
	}
	if acts, _ := s.ListActivitiesByUser(ctx, kept.ID); len(acts) != 0 {
		t.Errorf("activity inside a failed unit of work should be undone, got %d", len(acts))
	}

	// A failing outer call undoes what a nested call wrote.
	err = s.Atomically(ctx, func(tx domain.Storage) error {
		if err := tx.Atomically(ctx, func(inner domain.Storage) error {
			_, err := inner.CreateUser(ctx, domain.NewUser("nested", "digest", "", ""))
			return err
		}); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("nested Atomically = %v, want the callback error", err)
	}
	if u, _ := s.GetUserByUsername(ctx, "nested"); u != nil {
		t.Error("nested write should be undone with its outer unit of work")
	}

	if err := s.Atomically(ctx, func(tx domain.Storage) error {
		_, err := tx.CreateUser(ctx, domain.NewUser("ghost", "digest", "", ""))
		return err
	}); err != nil {
		t.Fatalf("Atomically: %v", err)
	}
	if u, _ := s.GetUserByUsername(ctx, "ghost"); u == nil {
		t.Error("successful unit of work should be kept")
	}
}
