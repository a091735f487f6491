package api

import (
	"net/http"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/models"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := queryDate(q, "startDate")
	if err != nil {
		s.writeError(w, err)
		return
	}
	end, err := queryDate(q, "endDate")
	if err != nil {
		s.writeError(w, err)
		return
	}

	filter := models.EventFilter{
		StartDate:    start,
		EndDate:      end,
		DriverID:     q.Get("driverId"),
		VehicleID:    q.Get("vehicleId"),
		DriverName:   q.Get("driverName"),
		VehiclePlate: q.Get("vehiclePlate"),
	}
	if raw := q.Get("fatigueLevel"); raw != "" {
		level := models.FatigueLevel(raw)
		if !level.Valid() {
			s.writeError(w, apperrors.Validation("unknown fatigue level %q", raw))
			return
		}
		filter.FatigueLevel = &level
	}
	if raw := q.Get("fatigueType"); raw != "" {
		ft := models.FatigueType(raw)
		if !ft.Valid() {
			s.writeError(w, apperrors.Validation("unknown fatigue type %q", raw))
			return
		}
		filter.FatigueType = &ft
	}

	page, err := s.svc.Event().List(r.Context(), filter, queryPage(q))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	event, err := s.svc.Event().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// handleIngestEvent is the REST fallback for the websocket channel. The
// ingested event is broadcast to connected clients either way.
func (s *Server) handleIngestEvent(w http.ResponseWriter, r *http.Request) {
	var event models.VehicleEvent
	if err := decodeJSON(r, &event); err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.svc.Event().Ingest(r.Context(), &event)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.hub.Broadcast(resp)
	writeJSON(w, http.StatusCreated, resp)
}
