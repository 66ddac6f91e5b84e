package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/farhancoder7071/journynow/internal/app"
	"github.com/farhancoder7071/journynow/internal/domain"
	"github.com/farhancoder7071/journynow/internal/metrics"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Auth      *app.AuthService
	Users     *app.UserService
	Routes    *app.RouteService
	Crowd     *app.CrowdService
	Settings  *app.SettingsService
	Dashboard *app.DashboardService
	Content   *app.ContentService
	Analytics *app.AnalyticsService
	// Store backs the demo data endpoint.
	Store domain.Storage
}

// Options controls cookies and the optional outer surfaces.
type Options struct {
	CookieName   string
	CookieSecure bool
	// WebDir serves the single page client when set.
	WebDir string
	// MetricsPath mounts the Prometheus handler when Metrics is non-nil.
	MetricsPath string
	// Production disables the demo data endpoint.
	Production bool
	Now        func() time.Time
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc     Services
	logger  *zap.Logger
	metrics *metrics.Metrics
	opts    Options
}

// New creates a Server wired to the given application services. m may be nil.
func New(svc Services, logger *zap.Logger, m *metrics.Metrics, opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{svc: svc, logger: logger, metrics: m, opts: opts}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID, s.requestLogger, s.recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Use(withNoCache)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		api.Post("/login", s.handleLogin)
		api.Post("/register", s.handleRegister)
		api.Post("/logout", s.handleLogout)
		if !s.opts.Production {
			api.Get("/seed-demo-data", s.handleSeedDemoData)
		}

		api.Group(func(authed chi.Router) {
			authed.Use(s.requireAuth)

			authed.Get("/user", s.handleCurrentUser)
			authed.Get("/activities", s.handleActivities)
			authed.Get("/documents", s.handleDocuments)
			authed.Get("/transit/train-routes", s.handleActiveTrainRoutes)
			authed.Get("/transit/bus-routes", s.handleActiveBusRoutes)
			authed.Get("/crowd-reports", s.handleMyCrowdReports)
			authed.Post("/crowd-reports", s.handleSubmitCrowdReport)
			authed.Get("/crowd-reports/station/{name}", s.handleStationCrowdReports)

			authed.Route("/admin", func(admin chi.Router) {
				admin.Use(s.requireAdmin)

				admin.Get("/users", s.handleListUsers)
				admin.Post("/users", s.handleCreateUser)
				admin.Patch("/users/{id}", s.handleUpdateUser)
				admin.Delete("/users/{id}", s.handleDeleteUser)

				admin.Get("/contents", s.handleListContents)
				admin.Post("/contents", s.handleCreateContent)

				admin.Get("/train-routes", s.handleListTrainRoutes)
				admin.Post("/train-routes", s.handleCreateTrainRoute)
				admin.Get("/train-routes/{id}", s.handleGetTrainRoute)
				admin.Put("/train-routes/{id}", s.handleUpdateTrainRoute)
				admin.Delete("/train-routes/{id}", s.handleDeleteTrainRoute)

				admin.Get("/bus-routes", s.handleListBusRoutes)
				admin.Post("/bus-routes", s.handleCreateBusRoute)
				admin.Get("/bus-routes/{id}", s.handleGetBusRoute)
				admin.Put("/bus-routes/{id}", s.handleUpdateBusRoute)
				admin.Delete("/bus-routes/{id}", s.handleDeleteBusRoute)

				admin.Get("/crowd-reports", s.handleListCrowdReports)
				admin.Put("/crowd-reports/{id}/approve", s.handleApproveCrowdReport)

				admin.Get("/ad-settings", s.handleListAdSettings)
				admin.Post("/ad-settings", s.handleCreateAdSetting)
				admin.Get("/ad-settings/{id}", s.handleGetAdSetting)
				admin.Put("/ad-settings/{id}", s.handleUpdateAdSetting)

				admin.Get("/app-settings", s.handleListAppSettings)
				admin.Post("/app-settings", s.handleUpsertAppSetting)
				admin.Delete("/app-settings/{id}", s.handleDeleteAppSetting)

				admin.Get("/analytics", s.handleAnalytics)
			})
		})

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusNotFound, "Not found")
		})
	})

	if s.metrics != nil {
		r.Handle(s.opts.MetricsPath, s.metrics.Handler())
	}
	if s.opts.WebDir != "" {
		r.Handle("/*", spaFromDisk(s.opts.WebDir))
	}
	return r
}
