package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/secstmt/pkg/config"
	"github.com/yurifrl/secstmt/pkg/csv"
	"github.com/yurifrl/secstmt/pkg/messages"
	"github.com/yurifrl/secstmt/pkg/render"
	"github.com/yurifrl/secstmt/pkg/service"
)

const maxUpload = 32 << 20

// Server parses uploaded statements over HTTP.
type Server struct {
	config    *config.Config
	logger    *log.Logger
	mux       *http.ServeMux
	processor *service.Processor
	movements sync.Map
}

// New creates a new HTTP server
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	processor, err := service.NewProcessor(cfg, logger)
	if err != nil {
		return nil, err
	}
	s := &Server{
		config:    cfg,
		logger:    logger,
		mux:       http.NewServeMux(),
		processor: processor,
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the routes without listening.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/parse", s.withLogging(s.handleParse))
	s.mux.HandleFunc("/api/files/", s.withLogging(s.handleFiles))
}

// Entry is a reconciliation line of the parse response.
type Entry struct {
	Reference string `json:"reference"`
	Subject   string `json:"subject"`
	Kind      string `json:"kind"`
	Opening   string `json:"opening"`
	Movement  string `json:"movement"`
	Closing   string `json:"closing"`
	Count     int    `json:"transactions"`
	Status    string `json:"status"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid form", err)
		return
	}
	file, header, err := r.FormFile("statement")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	lang := s.config.Language
	if v := r.FormValue("lang"); v != "" {
		lang, err = messages.ParseLanguage(v)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid language", err)
			return
		}
	}

	res := s.processor.ProcessBytes(data, header.Filename, lang)
	if !res.OK() {
		body := map[string]any{
			"status": "error",
			"run_id": res.RunID,
			"error":  res.Message,
			"line":   0,
			"kind":   string(messages.KindInternal),
		}
		if e, ok := structured(res.Err); ok {
			body["line"] = e.Line()
			body["kind"] = string(e.Kind())
		}
		if err := s.writeJSON(w, http.StatusUnprocessableEntity, body); err != nil {
			s.logger.Warn("failed to write json response", "err", err)
		}
		return
	}

	filename := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)) + "-secstmt.csv"
	s.movements.Store(filename, csv.Movements(res.Envelopes))

	entries := make([]Entry, len(res.Report.Items))
	for i, e := range res.Report.Items {
		entries[i] = Entry{
			Reference: e.Reference,
			Subject:   e.Subject,
			Kind:      string(e.Kind),
			Opening:   e.Opening.String(),
			Movement:  e.Movement.String(),
			Closing:   e.Closing.String(),
			Count:     e.Count,
			Status:    e.Status.String(),
		}
	}

	s.logger.Info("parse complete", "file", header.Filename, "run", res.RunID, "messages", len(res.Envelopes))
	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"run_id":   res.RunID,
		"file":     filename,
		"messages": render.View(res.Envelopes),
		"report":   entries,
		"balanced": res.Report.BalancedCount(),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleFiles serves the movements CSV of a previously parsed statement.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	filename := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if filename == "" {
		s.respondError(w, r, http.StatusBadRequest, "filename required", nil)
		return
	}

	value, ok := s.movements.Load(filename)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "file not found", nil)
		return
	}
	movements, ok := value.([]csv.Movement)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "internal type assertion error", nil)
		return
	}
	out, err := csv.Create(csv.MovementHeader, movements, nil)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(out); err != nil {
		s.logger.Warn("failed to write csv response", "err", err)
	}
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
