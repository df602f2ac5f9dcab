// internal/server/server.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/valpere/SellerScrapexter/internal/runner"
	"github.com/valpere/SellerScrapexter/internal/scraper"
	"github.com/valpere/SellerScrapexter/internal/utils"
)

const serviceName = "seller-scrapexter"

// RunController is the orchestrator surface the handlers map onto.
type RunController interface {
	Start(input runner.Input) (time.Time, error)
	Current() (runner.Snapshot, bool)
}

// Server maps HTTP requests onto the run orchestrator. Handlers contain no
// business logic: they decode, delegate, encode.
type Server struct {
	ctl       RunController
	logger    utils.Logger
	metrics   http.Handler
	startTime time.Time
}

// New creates the control server. metricsHandler may be nil, in which case
// the metrics route is omitted.
func New(ctl RunController, logger utils.Logger, metricsHandler http.Handler) *Server {
	return &Server{
		ctl:       ctl,
		logger:    logger,
		metrics:   metricsHandler,
		startTime: time.Now(),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/run", s.handleRun).Methods("POST")
	r.HandleFunc("/status", s.handleStatus).Methods("GET")
	r.HandleFunc("/results", s.handleResults).Methods("GET")
	r.HandleFunc("/logs", s.handleLogs).Methods("GET")
	r.HandleFunc("/", s.handleHealth).Methods("GET")
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods("GET")
	}

	return r
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var input runner.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "invalid JSON body: " + err.Error(),
		})
		return
	}

	startedAt, err := s.ctl.Start(input)
	switch {
	case errors.Is(err, runner.ErrNoIdentifiers):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, runner.ErrRunInProgress):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":     err.Error(),
			"startedAt": startedAt.Format(time.RFC3339),
		})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
	default:
		s.logger.Infof("run accepted: %d identifier(s)", len(input.Identifiers))
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"status":    "started",
			"startedAt": startedAt.Format(time.RFC3339),
		})
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.ctl.Current()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": string(runner.StatusIdle),
		})
		return
	}

	// completedAt and error are always present, null while empty, so the
	// payload schema is stable across the run lifecycle.
	resp := map[string]interface{}{
		"status":      string(snap.Status),
		"startedAt":   snap.StartedAt.Format(time.RFC3339),
		"completedAt": nil,
		"error":       nil,
		"rowCount":    len(snap.Rows),
		"logCount":    len(snap.Logs),
	}
	if !snap.CompletedAt.IsZero() {
		resp["completedAt"] = snap.CompletedAt.Format(time.RFC3339)
	}
	if snap.Error != "" {
		resp["error"] = snap.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	status, rows, _ := s.snapshotParts()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": string(status),
		"rows":   rows,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	status, _, logs := s.snapshotParts()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": string(status),
		"logs":   logs,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := runner.StatusIdle
	if snap, ok := s.ctl.Current(); ok {
		status = snap.Status
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": serviceName,
		"status":  string(status),
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
	})
}

// snapshotParts flattens the current run into the pieces the read-only
// endpoints serve, with non-nil slices so clients always see arrays.
func (s *Server) snapshotParts() (runner.Status, []scraper.Row, []string) {
	snap, ok := s.ctl.Current()
	if !ok {
		return runner.StatusIdle, []scraper.Row{}, []string{}
	}
	rows := snap.Rows
	if rows == nil {
		rows = []scraper.Row{}
	}
	logs := snap.Logs
	if logs == nil {
		logs = []string{}
	}
	return snap.Status, rows, logs
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
