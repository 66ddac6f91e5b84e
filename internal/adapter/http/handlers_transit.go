package adapthttp

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/farhancoder7071/journynow/internal/app"
)

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Dashboard.Activities(r.Context(), currentUser(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Dashboard.Documents(r.Context(), currentUser(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleActiveTrainRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.svc.Routes.ActiveTrainRoutes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (s *Server) handleActiveBusRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.svc.Routes.ActiveBusRoutes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (s *Server) handleMyCrowdReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.Crowd.Mine(r.Context(), currentUser(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleSubmitCrowdReport(w http.ResponseWriter, r *http.Request) {
	var in app.CrowdReportInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.svc.Crowd.Submit(r.Context(), currentUser(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleStationCrowdReports(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "name")
	// chi matches on the raw path when it carries escapes such as %2F.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(station); err == nil {
			station = unescaped
		}
	}
	reports, err := s.svc.Crowd.ByStation(r.Context(), currentUser(r.Context()), station)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
