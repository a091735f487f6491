package api

import (
	"net/http"

	"github.com/spf13/cast"
)

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
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

	dist, err := s.svc.Analytics().DistributionByType(r.Context(), start, end)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

func (s *Server) handleTopDrivers(w http.ResponseWriter, r *http.Request) {
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

	top, err := s.svc.Analytics().TopDrivers(r.Context(), start, end, cast.ToInt(q.Get("limit")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleCriticalTimeline(w http.ResponseWriter, r *http.Request) {
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

	timeline, err := s.svc.Analytics().CriticalTimeline(r.Context(), start, end)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}
