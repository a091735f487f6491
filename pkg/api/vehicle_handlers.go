package api

import (
	"net/http"

	"safetrack/pkg/models"
)

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, err := queryInt(q, "year")
	if err != nil {
		s.writeError(w, err)
		return
	}
	driverID, err := queryUUID(q, "driverId")
	if err != nil {
		s.writeError(w, err)
		return
	}
	assigned, err := queryBool(q, "assigned")
	if err != nil {
		s.writeError(w, err)
		return
	}
	active, err := queryBool(q, "active")
	if err != nil {
		s.writeError(w, err)
		return
	}

	filter := models.VehicleFilter{
		Plate:    q.Get("plate"),
		Make:     q.Get("make"),
		Model:    q.Get("model"),
		Year:     year,
		DriverID: driverID,
		Assigned: assigned,
		Active:   active,
	}

	page, err := s.svc.Vehicle().List(r.Context(), filter, queryPage(q))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	vehicle, err := s.svc.Vehicle().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.svc.Vehicle().Create(r.Context(), &vehicle)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		s.writeError(w, err)
		return
	}
	vehicle.ID = id

	updated, err := s.svc.Vehicle().Update(r.Context(), &vehicle)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	driverID, err := pathUUID(r, "driverId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	vehicle, err := s.svc.Vehicle().AssignDriver(r.Context(), vehicleID, driverID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleUnassignDriver(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	vehicle, err := s.svc.Vehicle().UnassignDriver(r.Context(), vehicleID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.Vehicle().Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
