package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/user", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/user", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/user", 401, time.Millisecond)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/user", "200")); got != 2 {
		t.Errorf("RequestsTotal{200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/user", "401")); got != 1 {
		t.Errorf("RequestsTotal{401} = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.RequestDurationSeconds); n != 1 {
		t.Errorf("expected one histogram series, got %d", n)
	}
}

func TestAuthEventAndSweep(t *testing.T) {
	m := New()
	m.AuthEvent("login", true)
	m.AuthEvent("login", false)
	m.AuthEvent("login", false)
	m.SessionsSwept(4)
	m.SessionsSwept(0)

	if got := testutil.ToFloat64(m.AuthEventsTotal.WithLabelValues("login", "failure")); got != 2 {
		t.Errorf("login failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AuthEventsTotal.WithLabelValues("login", "success")); got != 1 {
		t.Errorf("login successes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SessionsSweptTotal); got != 4 {
		t.Errorf("SessionsSweptTotal = %v, want 4", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.AuthEvent("register", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"journynow_auth_events_total", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected %s in output", want)
		}
	}
}

func TestNewIsIsolated(t *testing.T) {
	a, b := New(), New()
	a.SessionsSwept(1)
	if got := testutil.ToFloat64(b.SessionsSweptTotal); got != 0 {
		t.Errorf("registries leak between instances: %v", got)
	}
}
