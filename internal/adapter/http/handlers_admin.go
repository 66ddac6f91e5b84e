package adapthttp

import (
	"net/http"

	"github.com/farhancoder7071/journynow/internal/app"
	"github.com/farhancoder7071/journynow/internal/domain"
	"github.com/farhancoder7071/journynow/internal/seed"
)

// respond writes v with status, or the mapped error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

func (s *Server) deleted(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	s.respond(w, r, http.StatusOK, users, err)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in app.CreateUserInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	user, err := s.svc.Users.Create(r.Context(), currentUser(r.Context()), in)
	s.respond(w, r, http.StatusCreated, user, err)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in app.UpdateUserInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	user, err := s.svc.Users.Update(r.Context(), currentUser(r.Context()), id, in)
	s.respond(w, r, http.StatusOK, user, err)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deleted(w, r, s.svc.Users.Delete(r.Context(), currentUser(r.Context()), id))
}

func (s *Server) handleListContents(w http.ResponseWriter, r *http.Request) {
	contents, err := s.svc.Content.List(r.Context())
	s.respond(w, r, http.StatusOK, contents, err)
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	var in app.ContentInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	content, err := s.svc.Content.Create(r.Context(), currentUser(r.Context()), in)
	s.respond(w, r, http.StatusCreated, content, err)
}

func (s *Server) handleListTrainRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.svc.Routes.ListTrainRoutes(r.Context())
	s.respond(w, r, http.StatusOK, routes, err)
}

func (s *Server) handleGetTrainRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	route, err := s.svc.Routes.GetTrainRoute(r.Context(), id)
	s.respond(w, r, http.StatusOK, route, err)
}

func (s *Server) handleCreateTrainRoute(w http.ResponseWriter, r *http.Request) {
	var in domain.TrainRouteInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	route, err := s.svc.Routes.CreateTrainRoute(r.Context(), currentUser(r.Context()), in)
	s.respond(w, r, http.StatusCreated, route, err)
}

func (s *Server) handleUpdateTrainRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch domain.TrainRoutePatch
	if err := parseJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	route, err := s.svc.Routes.UpdateTrainRoute(r.Context(), currentUser(r.Context()), id, patch)
	s.respond(w, r, http.StatusOK, route, err)
}

func (s *Server) handleDeleteTrainRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deleted(w, r, s.svc.Routes.DeleteTrainRoute(r.Context(), currentUser(r.Context()), id))
}

func (s *Server) handleListBusRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.svc.Routes.ListBusRoutes(r.Context())
	s.respond(w, r, http.StatusOK, routes, err)
}

func (s *Server) handleGetBusRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	route, err := s.svc.Routes.GetBusRoute(r.Context(), id)
	s.respond(w, r, http.StatusOK, route, err)
}

func (s *Server) handleCreateBusRoute(w http.ResponseWriter, r *http.Request) {
	var in domain.BusRouteInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	route, err := s.svc.Routes.CreateBusRoute(r.Context(), currentUser(r.Context()), in)
	s.respond(w, r, http.StatusCreated, route, err)
}

func (s *Server) handleUpdateBusRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch domain.BusRoutePatch
	if err := parseJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	route, err := s.svc.Routes.UpdateBusRoute(r.Context(), currentUser(r.Context()), id, patch)
	s.respond(w, r, http.StatusOK, route, err)
}

func (s *Server) handleDeleteBusRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deleted(w, r, s.svc.Routes.DeleteBusRoute(r.Context(), currentUser(r.Context()), id))
}

func (s *Server) handleListCrowdReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.Crowd.All(r.Context())
	s.respond(w, r, http.StatusOK, reports, err)
}

func (s *Server) handleApproveCrowdReport(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.svc.Crowd.Approve(r.Context(), currentUser(r.Context()), id)
	s.respond(w, r, http.StatusOK, report, err)
}

func (s *Server) handleListAdSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings.ListAdSettings(r.Context())
	s.respond(w, r, http.StatusOK, settings, err)
}

func (s *Server) handleGetAdSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setting, err := s.svc.Settings.GetAdSetting(r.Context(), id)
	s.respond(w, r, http.StatusOK, setting, err)
}

func (s *Server) handleCreateAdSetting(w http.ResponseWriter, r *http.Request) {
	var in domain.AdSettingInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	setting, err := s.svc.Settings.CreateAdSetting(r.Context(), currentUser(r.Context()), in)
	s.respond(w, r, http.StatusCreated, setting, err)
}

func (s *Server) handleUpdateAdSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch domain.AdSettingPatch
	if err := parseJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	setting, err := s.svc.Settings.UpdateAdSetting(r.Context(), currentUser(r.Context()), id, patch)
	s.respond(w, r, http.StatusOK, setting, err)
}

func (s *Server) handleListAppSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings.ListAppSettings(r.Context(), r.URL.Query().Get("category"))
	s.respond(w, r, http.StatusOK, settings, err)
}

func (s *Server) handleUpsertAppSetting(w http.ResponseWriter, r *http.Request) {
	var in domain.AppSettingInput
	if err := parseJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	setting, err := s.svc.Settings.UpsertAppSetting(r.Context(), currentUser(r.Context()), in)
	s.respond(w, r, http.StatusOK, setting, err)
}

func (s *Server) handleDeleteAppSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deleted(w, r, s.svc.Settings.DeleteAppSetting(r.Context(), currentUser(r.Context()), id))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Analytics.Summary(r.Context())
	s.respond(w, r, http.StatusOK, summary, err)
}

func (s *Server) handleSeedDemoData(w http.ResponseWriter, r *http.Request) {
	if err := seed.Demo(r.Context(), s.svc.Store, s.opts.Now()); err != nil {
		if err == seed.ErrNoAdmin {
			writeMessage(w, http.StatusNotFound, "Admin user not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Demo data created successfully")
}
