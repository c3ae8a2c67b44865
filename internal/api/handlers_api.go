package api

import (
	"encoding/json"
	"net/http"

	"github.com/lox/bcwildfires/internal/layout"
	"github.com/lox/bcwildfires/internal/models"
)

// RenderResponse is one full rebuild for the page script.
type RenderResponse struct {
	Map      string        `json:"map"`
	Temporal string        `json:"temporal"`
	Layout   layout.Layout `json:"layout"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	out, ok := s.rebuildFromQuery(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RenderResponse{
		Map:      out.Map.String(),
		Temporal: out.Temporal.String(),
		Layout:   out.Layout,
	})
}

type SeriesResponse struct {
	Counts []models.SeriesPoint `json:"counts"`
	Sizes  []models.SeriesPoint `json:"sizes"`
}

func (s *Server) handleAPISeries(w http.ResponseWriter, r *http.Request) {
	sc := s.controller.Scene()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SeriesResponse{
		Counts: sc.Counts(),
		Sizes:  sc.Sizes(),
	})
}

type HealthStatus struct {
	Status    string `json:"status"`
	Fires     int    `json:"fires"`
	Provinces int    `json:"provinces"`
	Years     []int  `json:"years"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sc := s.controller.Scene()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthStatus{
		Status:    "ok",
		Fires:     len(sc.Fires),
		Provinces: len(sc.Provinces),
		Years:     sc.Years(),
	})
}
