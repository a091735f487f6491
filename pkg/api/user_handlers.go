package api

import (
	"net/http"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	active, err := queryBool(q, "active")
	if err != nil {
		s.writeError(w, err)
		return
	}

	filter := models.UserFilter{
		Name:   q.Get("name"),
		Email:  q.Get("email"),
		Active: active,
	}
	if raw := q.Get("role"); raw != "" {
		role := models.Role(raw)
		if !role.Valid() {
			s.writeError(w, apperrors.Validation("unknown role %q", raw))
			return
		}
		filter.Role = &role
	}

	page, err := s.svc.User().List(r.Context(), filter, queryPage(q))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.svc.User().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		s.writeError(w, err)
		return
	}
	user.ID = id

	updated, err := s.svc.User().Update(r.Context(), &user)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSetUserActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	updated, err := s.svc.User().SetActive(r.Context(), id, req.Active)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.User().Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
