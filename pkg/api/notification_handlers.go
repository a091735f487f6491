package api

import (
	"net/http"

	"safetrack/pkg/apperrors"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(w, apperrors.Authentication("not authenticated"))
		return
	}

	page, err := s.svc.Notification().List(r.Context(), p.User.ID, queryPage(r.URL.Query()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(w, apperrors.Authentication("not authenticated"))
		return
	}

	count, err := s.svc.Notification().UnreadCount(r.Context(), p.User.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(w, apperrors.Authentication("not authenticated"))
		return
	}

	id, err := pathInt64(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.Notification().MarkRead(r.Context(), id, p.User.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(w, apperrors.Authentication("not authenticated"))
		return
	}

	if err := s.svc.Notification().MarkAllRead(r.Context(), p.User.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
