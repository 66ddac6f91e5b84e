package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	adapthttp "github.com/farhancoder7071/journynow/internal/adapter/http"
	"github.com/farhancoder7071/journynow/internal/adapter/memory"
	"github.com/farhancoder7071/journynow/internal/app"
	"github.com/farhancoder7071/journynow/internal/domain"
	"github.com/farhancoder7071/journynow/internal/metrics"
	"github.com/farhancoder7071/journynow/internal/seed"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

type testEnv struct {
	url     string
	store   *memory.DB
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, opts adapthttp.Options) *testEnv {
	t.Helper()
	store := memory.New()
	if _, err := seed.Defaults(context.Background(), store, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	audit := app.NewAuditor(store)
	auth := app.NewAuthService(store, store.Sessions(), app.AuthOptions{})
	m := metrics.New()
	srv := adapthttp.New(adapthttp.Services{
		Auth:      auth,
		Users:     app.NewUserService(store, auth, audit),
		Routes:    app.NewRouteService(store, store, audit),
		Crowd:     app.NewCrowdService(store, audit),
		Settings:  app.NewSettingsService(store, store, audit),
		Dashboard: app.NewDashboardService(store, store),
		Content:   app.NewContentService(store, audit),
		Analytics: app.NewAnalyticsService(store),
		Store:     store,
	}, zap.NewNop(), m, opts)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{url: ts.URL, store: store, metrics: m}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func (e *testEnv) do(t *testing.T, c *http.Client, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.url+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func (e *testEnv) login(t *testing.T, username, password string) *http.Client {
	t.Helper()
	c := newClient(t)
	status, raw := e.do(t, c, http.MethodPost, "/api/login", map[string]string{"username": username, "password": password})
	if status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d; body: %s", username, status, raw)
	}
	return c
}

func (e *testEnv) register(t *testing.T, username string) *http.Client {
	t.Helper()
	c := newClient(t)
	status, raw := e.do(t, c, http.MethodPost, "/api/register", map[string]string{"username": username, "password": "secret1"})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d; body: %s", username, status, raw)
	}
	return c
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})

	status, raw := env.do(t, http.DefaultClient, http.MethodGet, "/api/health", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body := decode[map[string]any](t, raw); body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	c := newClient(t)

	status, raw := env.do(t, c, http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "password": "wonderland", "fullName": "Alice Liddell",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d; body: %s", status, raw)
	}
	registered := decode[map[string]any](t, raw)
	if registered["role"] != "user" || registered["fullName"] != "Alice Liddell" {
		t.Errorf("unexpected user %v", registered)
	}
	if _, leaked := registered["password"]; leaked {
		t.Error("password leaked in response")
	}

	status, raw = env.do(t, c, http.MethodGet, "/api/user", nil)
	if status != http.StatusOK {
		t.Fatalf("current user: expected 200, got %d", status)
	}
	if u := decode[domain.User](t, raw); u.Username != "alice" {
		t.Errorf("expected alice, got %q", u.Username)
	}

	status, _ = env.do(t, newClient(t), http.MethodPost, "/api/register", map[string]string{"username": "alice", "password": "another1"})
	if status != http.StatusBadRequest {
		t.Errorf("duplicate register: expected 400, got %d", status)
	}

	status, _ = env.do(t, c, http.MethodPost, "/api/logout", nil)
	if status != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", status)
	}
	status, raw = env.do(t, c, http.MethodGet, "/api/user", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %d", status)
	}
	if body := decode[map[string]string](t, raw); body["message"] != "Not authenticated" {
		t.Errorf("unexpected message %q", body["message"])
	}

	status, _ = env.do(t, c, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong-password"})
	if status != http.StatusUnauthorized {
		t.Errorf("bad password: expected 401, got %d", status)
	}
	env.login(t, "alice", "wonderland")

	if got := testutil.ToFloat64(env.metrics.AuthEventsTotal.WithLabelValues("login", "failure")); got != 1 {
		t.Errorf("expected 1 failed login, got %v", got)
	}
	if got := testutil.ToFloat64(env.metrics.AuthEventsTotal.WithLabelValues("register", "success")); got != 1 {
		t.Errorf("expected 1 registration, got %v", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})

	tests := []struct {
		name string
		body any
	}{
		{name: "short password", body: map[string]string{"username": "bob", "password": "123"}},
		{name: "short username", body: map[string]string{"username": "bo", "password": "secret1"}},
		{name: "malformed json", body: "{not json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := env.do(t, newClient(t), http.MethodPost, "/api/register", tc.body)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d; body: %s", status, raw)
			}
		})
	}
}

func TestAdminGuardOrdering(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	alice := env.register(t, "alice")
	admin := env.login(t, "admin", "admin123")

	tests := []struct {
		name       string
		client     *http.Client
		wantStatus int
	}{
		{name: "anonymous", client: newClient(t), wantStatus: http.StatusUnauthorized},
		{name: "regular user", client: alice, wantStatus: http.StatusForbidden},
		{name: "admin", client: admin, wantStatus: http.StatusOK},
	}

	for _, path := range []string{"/api/admin/users", "/api/admin/analytics", "/api/admin/app-settings"} {
		for _, tc := range tests {
			t.Run(tc.name+" "+path, func(t *testing.T) {
				status, raw := env.do(t, tc.client, http.MethodGet, path, nil)
				if status != tc.wantStatus {
					t.Fatalf("expected %d, got %d; body: %s", tc.wantStatus, status, raw)
				}
			})
		}
	}
}

func TestPromotedUserGainsAdminAccess(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})

	c := newClient(t)
	status, raw := env.do(t, c, http.MethodPost, "/api/register", map[string]string{"username": "alice", "password": "pw123456"})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d; body: %s", status, raw)
	}
	alice := decode[domain.User](t, raw)
	c = env.login(t, "alice", "pw123456")

	status, _ = env.do(t, c, http.MethodGet, "/api/admin/users", nil)
	if status != http.StatusForbidden {
		t.Fatalf("before promotion: expected 403, got %d", status)
	}

	admin := env.login(t, "admin", "admin123")
	status, raw = env.do(t, admin, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d", alice.ID), map[string]string{"role": "admin"})
	if status != http.StatusOK {
		t.Fatalf("promote: expected 200, got %d; body: %s", status, raw)
	}

	status, raw = env.do(t, c, http.MethodGet, "/api/admin/users", nil)
	if status != http.StatusOK {
		t.Fatalf("after promotion: expected 200, got %d; body: %s", status, raw)
	}
	users := decode[[]map[string]any](t, raw)
	found := false
	for _, u := range users {
		if _, leaked := u["password"]; leaked {
			t.Errorf("password leaked for %v", u["username"])
		}
		if _, leaked := u["passwordHash"]; leaked {
			t.Errorf("password hash leaked for %v", u["username"])
		}
		if u["username"] == "alice" {
			found = true
			if u["role"] != "admin" {
				t.Errorf("expected alice to be admin, got %v", u["role"])
			}
		}
	}
	if !found {
		t.Errorf("alice missing from %v", users)
	}
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	admin := env.login(t, "admin", "admin123")

	_, raw := env.do(t, admin, http.MethodGet, "/api/user", nil)
	me := decode[domain.User](t, raw)

	status, raw := env.do(t, admin, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", me.ID), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body: %s", status, raw)
	}
	if u, _ := env.store.GetUser(context.Background(), me.ID); u == nil {
		t.Fatal("admin account was deleted")
	}

	status, _ = env.do(t, admin, http.MethodDelete, "/api/admin/users/999", nil)
	if status != http.StatusNotFound {
		t.Errorf("missing user: expected 404, got %d", status)
	}
}

func TestAdminUserManagement(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	admin := env.login(t, "admin", "admin123")

	status, raw := env.do(t, admin, http.MethodPost, "/api/admin/users", map[string]string{
		"username": "carol", "password": "secret1", "role": "admin",
	})
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d; body: %s", status, raw)
	}
	carol := decode[domain.User](t, raw)
	if carol.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %q", carol.Role)
	}

	status, raw = env.do(t, admin, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d", carol.ID), map[string]string{
		"password": "changed1", "fullName": "Carol C",
	})
	if status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d; body: %s", status, raw)
	}
	carolClient := env.login(t, "carol", "changed1")
	status, _ = env.do(t, admin, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", carol.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	status, _ = env.do(t, carolClient, http.MethodGet, "/api/user", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("deleted user's session: expected 401, got %d", status)
	}

	_, raw = env.do(t, admin, http.MethodGet, "/api/activities", nil)
	if acts := decode[[]domain.Activity](t, raw); len(acts) != 3 {
		t.Errorf("expected 3 audit activities, got %d", len(acts))
	}
}

func TestCrowdReportVisibility(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	alice := env.register(t, "alice")
	admin := env.login(t, "admin", "admin123")

	var ids []int64
	for _, level := range []string{"low", "high"} {
		status, raw := env.do(t, alice, http.MethodPost, "/api/crowd-reports", map[string]string{
			"stationName": "Central Station", "crowdLevel": level, "transportType": "train",
		})
		if status != http.StatusCreated {
			t.Fatalf("submit: expected 201, got %d; body: %s", status, raw)
		}
		r := decode[domain.CrowdReport](t, raw)
		if r.IsApproved {
			t.Fatal("new report must start unapproved")
		}
		ids = append(ids, r.ID)
	}

	status, _ := env.do(t, alice, http.MethodPut, fmt.Sprintf("/api/admin/crowd-reports/%d/approve", ids[0]), nil)
	if status != http.StatusForbidden {
		t.Errorf("user approve: expected 403, got %d", status)
	}
	for range 2 {
		status, raw := env.do(t, admin, http.MethodPut, fmt.Sprintf("/api/admin/crowd-reports/%d/approve", ids[0]), nil)
		if status != http.StatusOK {
			t.Fatalf("approve: expected 200, got %d; body: %s", status, raw)
		}
	}

	_, raw := env.do(t, alice, http.MethodGet, "/api/crowd-reports/station/Central%20Station", nil)
	if got := decode[[]domain.CrowdReport](t, raw); len(got) != 1 || got[0].ID != ids[0] {
		t.Errorf("user view: expected only the approved report, got %+v", got)
	}
	_, raw = env.do(t, admin, http.MethodGet, "/api/crowd-reports/station/Central%20Station", nil)
	if got := decode[[]domain.CrowdReport](t, raw); len(got) != 2 {
		t.Errorf("admin view: expected 2 reports, got %d", len(got))
	}
	_, raw = env.do(t, alice, http.MethodGet, "/api/crowd-reports", nil)
	if got := decode[[]domain.CrowdReport](t, raw); len(got) != 2 {
		t.Errorf("own reports: expected 2, got %d", len(got))
	}

	status, _ = env.do(t, alice, http.MethodPost, "/api/crowd-reports", map[string]string{
		"stationName": "Central Station", "crowdLevel": "packed", "transportType": "train",
	})
	if status != http.StatusBadRequest {
		t.Errorf("invalid level: expected 400, got %d", status)
	}
}

func TestTrainRouteLifecycle(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	admin := env.login(t, "admin", "admin123")

	status, raw := env.do(t, admin, http.MethodPost, "/api/admin/train-routes", map[string]any{
		"routeName": "Night Owl", "sourceStation": "A", "destinationStation": "B",
		"departureTime": "23:00", "arrivalTime": "05:00", "trainNumber": "99999", "isActive": false,
	})
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d; body: %s", status, raw)
	}
	route := decode[domain.TrainRoute](t, raw)
	if route.Status != domain.DefaultTrainStatus || route.IsActive {
		t.Errorf("unexpected route %+v", route)
	}

	_, raw = env.do(t, admin, http.MethodGet, "/api/transit/train-routes", nil)
	if active := decode[[]domain.TrainRoute](t, raw); len(active) != 5 {
		t.Errorf("expected 5 active routes, got %d", len(active))
	}

	path := fmt.Sprintf("/api/admin/train-routes/%d", route.ID)
	status, raw = env.do(t, admin, http.MethodPut, path, map[string]any{"status": "delayed", "isActive": true})
	if status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d; body: %s", status, raw)
	}
	if updated := decode[domain.TrainRoute](t, raw); updated.Status != "delayed" || !updated.IsActive || updated.RouteName != "Night Owl" {
		t.Errorf("unexpected update %+v", updated)
	}

	status, raw = env.do(t, admin, http.MethodPut, path, map[string]any{"routeName": "  ", "trainNumber": ""})
	if status != http.StatusBadRequest {
		t.Fatalf("blank update: expected 400, got %d; body: %s", status, raw)
	}
	_, raw = env.do(t, admin, http.MethodGet, path, nil)
	if kept := decode[domain.TrainRoute](t, raw); kept.RouteName != "Night Owl" || kept.TrainNumber != "99999" {
		t.Errorf("blank update should not reach storage, got %+v", kept)
	}

	status, _ = env.do(t, admin, http.MethodDelete, path, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		status, _ = env.do(t, admin, method, path, map[string]any{})
		if status != http.StatusNotFound {
			t.Errorf("%s after delete: expected 404, got %d", method, status)
		}
	}

	status, _ = env.do(t, admin, http.MethodGet, "/api/admin/train-routes/abc", nil)
	if status != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", status)
	}
}

func TestAppSettingUpsert(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	admin := env.login(t, "admin", "admin123")

	_, raw := env.do(t, admin, http.MethodGet, "/api/admin/app-settings?category=general", nil)
	before := decode[[]domain.AppSetting](t, raw)

	status, raw := env.do(t, admin, http.MethodPost, "/api/admin/app-settings", map[string]string{
		"category": "general", "key": "primaryColor", "value": "#000000",
	})
	if status != http.StatusOK {
		t.Fatalf("upsert: expected 200, got %d; body: %s", status, raw)
	}
	updated := decode[domain.AppSetting](t, raw)

	_, raw = env.do(t, admin, http.MethodGet, "/api/admin/app-settings?category=general", nil)
	after := decode[[]domain.AppSetting](t, raw)
	if len(after) != len(before) {
		t.Fatalf("upsert of existing key changed the row count: %d -> %d", len(before), len(after))
	}
	for _, s := range before {
		if s.Key == "primaryColor" && s.ID != updated.ID {
			t.Errorf("upsert changed id %d -> %d", s.ID, updated.ID)
		}
	}
	if updated.Value != "#000000" {
		t.Errorf("expected new value, got %q", updated.Value)
	}

	status, _ = env.do(t, admin, http.MethodDelete, fmt.Sprintf("/api/admin/app-settings/%d", updated.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	status, _ = env.do(t, admin, http.MethodDelete, fmt.Sprintf("/api/admin/app-settings/%d", updated.ID), nil)
	if status != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", status)
	}
}

func TestAdSettings(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	admin := env.login(t, "admin", "admin123")

	status, raw := env.do(t, admin, http.MethodPost, "/api/admin/ad-settings", map[string]any{"adType": "banner"})
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d; body: %s", status, raw)
	}
	ad := decode[domain.AdSetting](t, raw)
	if ad.Frequency != domain.DefaultAdFrequency || ad.Position != domain.DefaultAdPosition || !ad.IsActive {
		t.Errorf("unexpected defaults %+v", ad)
	}

	status, raw = env.do(t, admin, http.MethodPut, fmt.Sprintf("/api/admin/ad-settings/%d", ad.ID), map[string]any{"isActive": false})
	if status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d; body: %s", status, raw)
	}
	if got := decode[domain.AdSetting](t, raw); got.IsActive {
		t.Error("expected ad to be deactivated")
	}

	status, _ = env.do(t, admin, http.MethodPost, "/api/admin/ad-settings", map[string]any{"adType": "popup"})
	if status != http.StatusBadRequest {
		t.Errorf("unknown ad type: expected 400, got %d", status)
	}
}

func TestContentsAndAnalytics(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	admin := env.login(t, "admin", "admin123")

	status, raw := env.do(t, admin, http.MethodPost, "/api/admin/contents", map[string]any{
		"title": "Monsoon timetable", "summary": "Changes for the rainy season",
	})
	if status != http.StatusCreated {
		t.Fatalf("create content: expected 201, got %d; body: %s", status, raw)
	}
	if c := decode[domain.Content](t, raw); c.Author != "Admin User" || c.PublishedDate.IsZero() {
		t.Errorf("unexpected content defaults %+v", c)
	}

	status, raw = env.do(t, admin, http.MethodGet, "/api/admin/analytics", nil)
	if status != http.StatusOK {
		t.Fatalf("analytics: expected 200, got %d", status)
	}
	summary := decode[app.Analytics](t, raw)
	if summary.Users != 1 || summary.Admins != 1 || summary.TrainRoutes != 5 || summary.BusRoutes != 5 || summary.Contents != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestSeedDemoData(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		env := newTestServer(t, adapthttp.Options{})
		status, raw := env.do(t, http.DefaultClient, http.MethodGet, "/api/seed-demo-data", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d; body: %s", status, raw)
		}

		admin := env.login(t, "admin", "admin123")
		_, raw = env.do(t, admin, http.MethodGet, "/api/documents", nil)
		if docs := decode[[]domain.Document](t, raw); len(docs) != 2 {
			t.Errorf("expected 2 demo documents, got %d", len(docs))
		}
	})

	t.Run("production", func(t *testing.T) {
		env := newTestServer(t, adapthttp.Options{Production: true})
		status, _ := env.do(t, http.DefaultClient, http.MethodGet, "/api/seed-demo-data", nil)
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestServer(t, adapthttp.Options{})
	env.do(t, http.DefaultClient, http.MethodGet, "/api/health", nil)

	status, raw := env.do(t, http.DefaultClient, http.MethodGet, "/metrics", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(raw), `journynow_http_requests_total{method="GET",route="/api/health",status="200"} 1`) {
		t.Errorf("request counter missing from exposition:\n%s", raw)
	}
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>index</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	env := newTestServer(t, adapthttp.Options{WebDir: dir})

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "index"},
		{path: "/app.js", want: "console.log"},
		{path: "/admin/routes", want: "index"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			status, raw := env.do(t, http.DefaultClient, http.MethodGet, tc.path, nil)
			if status != http.StatusOK || !strings.Contains(string(raw), tc.want) {
				t.Fatalf("expected 200 containing %q, got %d: %s", tc.want, status, raw)
			}
		})
	}

	status, _ := env.do(t, http.DefaultClient, http.MethodGet, "/api/nope", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown api path: expected 404, got %d", status)
	}
}
