package api

import (
	"net/http"

	"safetrack/pkg/models"
)

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	active, err := queryBool(q, "active")
	if err != nil {
		s.writeError(w, err)
		return
	}
	assigned, err := queryBool(q, "assigned")
	if err != nil {
		s.writeError(w, err)
		return
	}

	filter := models.DriverFilter{
		Name:     q.Get("name"),
		License:  q.Get("license"),
		Active:   active,
		Assigned: assigned,
	}

	page, err := s.svc.Driver().List(r.Context(), filter, queryPage(q))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	driver, err := s.svc.Driver().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := decodeJSON(r, &driver); err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.svc.Driver().Create(r.Context(), &driver)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var driver models.Driver
	if err := decodeJSON(r, &driver); err != nil {
		s.writeError(w, err)
		return
	}
	driver.ID = id

	updated, err := s.svc.Driver().Update(r.Context(), &driver)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSetDriverActive(w http.ResponseWriter, r *http.Request) {
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

	updated, err := s.svc.Driver().SetActive(r.Context(), id, req.Active)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.Driver().Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
