package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/pkg/token"
	"safetrack/service"
)

type Server struct {
	svc    service.IServiceManager
	tokens *token.Manager
	hub    *Hub
	log    logger.ILogger
	http   *http.Server
}

func NewServer(port int, svc service.IServiceManager, tokens *token.Manager, log logger.ILogger) *Server {
	s := &Server{
		svc:    svc,
		tokens: tokens,
		hub:    NewHub(log),
		log:    log,
	}

	handler := cors.AllowAll().Handler(s.router())
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Role shorthands for the route table below.
var (
	anyRole     = []models.Role{models.RoleAdmin, models.RoleManager, models.RoleAuditor}
	supervisors = []models.Role{models.RoleAdmin, models.RoleManager}
	adminOnly   = []models.Role{models.RoleAdmin}
)

// router declares every route together with the set of roles allowed to
// call it. Authorization lives here, in one table, instead of inside the
// handlers.
func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", s.handleResetPassword).Methods(http.MethodPost)

	// authenticated
	s.route(api, http.MethodGet, "/auth/me", s.handleMe, anyRole)
	s.route(api, http.MethodPost, "/auth/change-password", s.handleChangePassword, anyRole)

	s.route(api, http.MethodPost, "/auth/register", s.handleRegister, adminOnly)

	s.route(api, http.MethodGet, "/drivers", s.handleListDrivers, anyRole)
	s.route(api, http.MethodGet, "/drivers/{id}", s.handleGetDriver, anyRole)
	s.route(api, http.MethodPost, "/drivers", s.handleCreateDriver, supervisors)
	s.route(api, http.MethodPut, "/drivers/{id}", s.handleUpdateDriver, supervisors)
	s.route(api, http.MethodPatch, "/drivers/{id}/active", s.handleSetDriverActive, supervisors)
	s.route(api, http.MethodDelete, "/drivers/{id}", s.handleDeleteDriver, adminOnly)

	s.route(api, http.MethodGet, "/vehicles", s.handleListVehicles, anyRole)
	s.route(api, http.MethodGet, "/vehicles/{id}", s.handleGetVehicle, anyRole)
	s.route(api, http.MethodPost, "/vehicles", s.handleCreateVehicle, supervisors)
	s.route(api, http.MethodPut, "/vehicles/{id}", s.handleUpdateVehicle, supervisors)
	s.route(api, http.MethodPost, "/vehicles/{id}/assign/{driverId}", s.handleAssignDriver, supervisors)
	s.route(api, http.MethodPost, "/vehicles/{id}/unassign", s.handleUnassignDriver, supervisors)
	s.route(api, http.MethodDelete, "/vehicles/{id}", s.handleDeleteVehicle, adminOnly)

	s.route(api, http.MethodGet, "/events", s.handleListEvents, anyRole)
	s.route(api, http.MethodGet, "/events/{id}", s.handleGetEvent, anyRole)
	s.route(api, http.MethodPost, "/events", s.handleIngestEvent, supervisors)

	s.route(api, http.MethodGet, "/rules", s.handleListRules, anyRole)
	s.route(api, http.MethodGet, "/rules/{name}", s.handleGetRule, anyRole)
	s.route(api, http.MethodPost, "/rules", s.handleCreateRule, adminOnly)
	s.route(api, http.MethodPut, "/rules/{name}", s.handleUpdateRule, supervisors)
	s.route(api, http.MethodDelete, "/rules/{name}", s.handleDeleteRule, adminOnly)

	s.route(api, http.MethodGet, "/users", s.handleListUsers, adminOnly)
	s.route(api, http.MethodGet, "/users/{id}", s.handleGetUser, adminOnly)
	s.route(api, http.MethodPut, "/users/{id}", s.handleUpdateUser, adminOnly)
	s.route(api, http.MethodPatch, "/users/{id}/active", s.handleSetUserActive, adminOnly)
	s.route(api, http.MethodDelete, "/users/{id}", s.handleDeleteUser, adminOnly)

	s.route(api, http.MethodGet, "/notifications", s.handleListNotifications, anyRole)
	s.route(api, http.MethodGet, "/notifications/unread-count", s.handleUnreadCount, anyRole)
	s.route(api, http.MethodPost, "/notifications/{id}/read", s.handleMarkRead, anyRole)
	s.route(api, http.MethodPost, "/notifications/read-all", s.handleMarkAllRead, anyRole)

	s.route(api, http.MethodGet, "/analytics/distribution", s.handleDistribution, anyRole)
	s.route(api, http.MethodGet, "/analytics/top-drivers", s.handleTopDrivers, anyRole)
	s.route(api, http.MethodGet, "/analytics/critical-timeline", s.handleCriticalTimeline, anyRole)

	// realtime channel; the edge detector connects here unauthenticated
	r.HandleFunc("/ws", s.handleWebSocket)

	return r
}

func (s *Server) route(r *mux.Router, method, path string, h http.HandlerFunc, roles []models.Role) {
	r.Handle(path, s.authenticate(s.requireRoles(roles, h))).Methods(method)
}

func (s *Server) Run() error {
	s.log.Info("HTTP server listening", logger.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
