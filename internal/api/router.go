// Package api exposes the event request lifecycle over HTTP for the
// coordination frontend. It is a thin layer over the service functions;
// all domain rules live in pkg/core.
package api

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

// Store is the persistence surface the API needs
type Store interface {
	db.EventRequestStore
	db.ReferenceStore
}

// Server holds the dependencies shared by every handler
type Server struct {
	store  Store
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewServer creates an API server over the given store
func NewServer(store Store, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Router builds the full route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	requests := r.PathPrefix("/api/event-requests").Subrouter()
	requests.HandleFunc("", s.handleListRequests).Methods("GET")
	requests.HandleFunc("/{id:[0-9]+}", s.handleGetRequest).Methods("GET")
	requests.HandleFunc("/{id:[0-9]+}/assignments", s.handleAssign).Methods("POST")
	requests.HandleFunc("/{id:[0-9]+}/assignments/{role}/{participantId}", s.handleRemoveAssignment).Methods("DELETE")
	requests.HandleFunc("/{id:[0-9]+}/van-driver", s.handleSetVanDriver).Methods("PUT")
	requests.HandleFunc("/{id:[0-9]+}/status", s.handleChangeStatus).Methods("POST")
	requests.HandleFunc("/{id:[0-9]+}/confirmation", s.handleToggleConfirmation).Methods("POST")
	requests.HandleFunc("/{id:[0-9]+}/missing-info", s.handleMissingInfo).Methods("GET")
	requests.HandleFunc("/{id:[0-9]+}/recipients", s.handleRecipients).Methods("GET")

	r.HandleFunc("/api/follow-ups", s.handleFollowUps).Methods("GET")

	return r
}
