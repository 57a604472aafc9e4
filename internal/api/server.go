// Package api exposes the selection engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/export"
	"github.com/abhisek/papergen/internal/marks"
	"github.com/abhisek/papergen/internal/selection"
)

// Server handles the JSON API over one selection engine.
type Server struct {
	engine *selection.Engine
	layout export.Layout
}

// NewServer creates a Server over engine. The layout shapes paper
// responses.
func NewServer(engine *selection.Engine, layout export.Layout) *Server {
	return &Server{engine: engine, layout: layout}
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/api", func(ar chi.Router) {
		ar.Get("/units", s.handleUnits)
		ar.Get("/stats", s.handleStats)
		ar.Post("/select", s.handleSelect)
		ar.Post("/paper", s.handlePaper)
	})
	return r
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	units := s.engine.AvailableUnits()
	if units == nil {
		units = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"units": units})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Statistics())
}

// handleSelect runs a criteria selection. The body is the raw criteria
// map, same keys as the CLI flags.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.engine.Select(raw)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, selectResponse(res))
}

// paperRequest asks for a marks-based paper over units.
type paperRequest struct {
	Units        []string    `json:"units"`
	TotalMarks   int         `json:"total_marks"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

func (s *Server) handlePaper(w http.ResponseWriter, r *http.Request) {
	var req paperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.TotalMarks <= 0 {
		writeError(w, http.StatusBadRequest, "total_marks must be positive")
		return
	}

	var dist marks.Distribution
	if len(req.Distribution) > 0 {
		dist = marks.Distribution(req.Distribution)
	}
	res, err := s.engine.SelectByUnitsAndMarks(req.Units, req.TotalMarks, dist)
	if err != nil {
		var noCandidates *marks.NoCandidatesError
		if errors.As(err, &noCandidates) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := selectResponse(res)
	resp["paper"] = export.BuildPaper(res, s.layout)
	writeJSON(w, http.StatusOK, resp)
}

// selectResponse shapes a Result for the wire: warnings and questions
// are always arrays, never null.
func selectResponse(res selection.Result) map[string]any {
	questions := res.Questions
	if questions == nil {
		questions = []bank.Question{}
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	out := map[string]any{
		"questions": questions,
		"count":     len(questions),
		"warnings":  warnings,
	}
	if res.TargetMarks > 0 {
		out["target_marks"] = res.TargetMarks
		out["achieved_marks"] = res.AchievedMarks
		out["drawn"] = res.Drawn
		out["choice_options"] = res.ChoiceOptions
		out["units_covered"] = res.UnitsCovered
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
