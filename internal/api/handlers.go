package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/pkg/core/assignment"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/services"
	"github.com/communitykitchen/eventdesk/pkg/core/status"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP statuses. Version conflicts get
// 409 so the frontend can re-fetch and retry.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, db.ErrVersionConflict):
		versionConflictsTotal.Inc()
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, assignment.ErrInvalidRole),
		errors.Is(err, status.ErrInvalidTransition),
		errors.Is(err, status.ErrMissingScheduledDate):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("Request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func requestID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	var statuses []model.Status
	for _, raw := range r.URL.Query()["status"] {
		st := model.Status(raw)
		if !st.IsValid() {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown status " + raw})
			return
		}
		statuses = append(statuses, st)
	}

	events, err := s.store.ListEventRequests(r.Context(), statuses...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if events == nil {
		events = []model.EventRequest{}
	}
	s.writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	event, err := s.store.GetEventRequest(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

type assignRequest struct {
	Role           string   `json:"role"`
	ParticipantIDs []string `json:"participantIds"`
	Actor          string   `json:"actor"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := services.AssignParticipants(r.Context(), s.store, s.logger, id,
		model.Role(req.Role), req.ParticipantIDs, req.Actor, s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRemoveAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	vars := mux.Vars(r)

	result, err := services.RemoveAssignment(r.Context(), s.store, s.logger, id,
		model.Role(vars["role"]), vars["participantId"], r.URL.Query().Get("actor"), s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type vanDriverRequest struct {
	DriverID string `json:"driverId"`
}

func (s *Server) handleSetVanDriver(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req vanDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := services.SetVanDriver(r.Context(), s.store, s.logger, id, req.DriverID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"vanDriverId": req.DriverID})
}

type statusRequest struct {
	Action             string `json:"action"`
	ScheduledEventDate string `json:"scheduledEventDate,omitempty"`
	Reason             string `json:"reason,omitempty"`
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	event, err := services.ChangeStatus(r.Context(), s.store, s.logger, id, services.ChangeStatusParams{
		Action:             services.StatusAction(req.Action),
		ScheduledEventDate: req.ScheduledEventDate,
		Reason:             req.Reason,
		Now:                s.now(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleToggleConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	confirmed, err := services.ToggleConfirmation(r.Context(), s.store, s.logger, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"isConfirmed": confirmed})
}

func (s *Server) handleMissingInfo(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	report, err := services.ReportIntake(r.Context(), s.store, s.cfg, s.logger, id, s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRecipients(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	resolved, err := services.ResolveRecipients(r.Context(), s.store, s.logger, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resolved)
}

func (s *Server) handleFollowUps(w http.ResponseWriter, r *http.Request) {
	reports, err := services.ReportOpenIntake(r.Context(), s.store, s.cfg, s.logger, s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Only the requests that actually need a follow-up
	due := make([]services.IntakeReport, 0)
	for _, report := range reports {
		if report.FollowUp.Needed {
			due = append(due, report)
		}
	}
	s.writeJSON(w, http.StatusOK, due)
}
