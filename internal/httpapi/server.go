// Package httpapi serves the mirrored snapshot to presentation as
// JSON: the decorated standings, the runtime config for the countdown,
// readiness, and Prometheus metrics.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"codename_board/internal/board"
	"codename_board/internal/metrics"
	"codename_board/internal/settings"
)

// StandingsProvider is the repository's read surface.
type StandingsProvider interface {
	Current() []board.Contestant
	Loaded() bool
}

// ConfigProvider is the config store's read surface.
type ConfigProvider interface {
	Current() settings.RuntimeConfig
}

// Entry is one standings row decorated for rendering.
type Entry struct {
	board.Contestant
	Movement board.Movement `json:"movement"`
}

// Server wires the read-only HTTP routes.
type Server struct {
	standings StandingsProvider
	config    ConfigProvider
	maxLimit  int
	ready     atomic.Bool
}

// NewServer creates a server over the given read models. maxLimit caps
// the standings limit parameter.
func NewServer(standings StandingsProvider, config ConfigProvider, maxLimit int) *Server {
	return &Server{
		standings: standings,
		config:    config,
		maxLimit:  maxLimit,
	}
}

// MarkReady flips the health endpoint to ready once the initial loads
// have completed.
func (s *Server) MarkReady() {
	s.ready.Store(true)
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/standings", instrumented(s.handleStandings, "standings"))
	mux.HandleFunc("/config", instrumented(s.handleConfig, "config"))
	mux.HandleFunc("/healthz", instrumented(s.handleHealth, "healthz"))
	mux.Handle("/metrics", metrics.Handler())
}

// handleStandings serves GET /standings?limit=N. Without a limit the
// full board is returned; an explicit limit must be a positive integer
// no larger than the configured cap.
func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	contestants := s.standings.Current()

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		if limit > s.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", "limit exceeds the maximum")
			return
		}
		if limit < len(contestants) {
			contestants = contestants[:limit]
		}
	}

	entries := make([]Entry, 0, len(contestants))
	for _, contestant := range contestants {
		entries = append(entries, Entry{
			Contestant: contestant,
			Movement:   board.ComputeMovement(contestant.CurrentRank, contestant.PreviousRank),
		})
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.config.Current())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "loading"})
		return
	}
	// loaded distinguishes "serving an empty board" from "initial
	// fetch failed and we are still on the zero snapshot".
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": s.standings.Loaded(),
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// statusRecorder captures the written status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrumented wraps a handler with request metrics.
func instrumented(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(recorder, r)
		metrics.ObserveHTTPRequest(endpoint, recorder.status, time.Since(start))
	}
}
