package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/library"
	"github.com/SmitUplenchwar2687/macrokey/internal/session"
)

// Server exposes a session's commands and notifications over HTTP and
// WebSocket.
type Server struct {
	httpServer *http.Server
	session    *session.Session
	clock      clock.Clock
	mux        *http.ServeMux
	hub        *Hub
	library    library.Store
	logger     *zap.Logger
}

// Options configures optional server features.
type Options struct {
	Hub     *Hub          // If set, enables /ws and /dashboard/
	Library library.Store // If set, enables /api/library
	Logger  *zap.Logger
}

// New creates a new server for sess.
func New(addr string, sess *session.Session, clk clock.Clock, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		session: sess,
		clock:   clk,
		mux:     http.NewServeMux(),
		hub:     opts.Hub,
		library: opts.Library,
		logger:  logger.With(zap.String("component", "server")),
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           LoggingMiddleware(s.mux, s.logger, clk),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
	s.mux.HandleFunc("POST /api/record/toggle", s.handleRecordToggle)
	s.mux.HandleFunc("POST /api/play/toggle", s.handlePlayToggle)
	s.mux.HandleFunc("POST /api/save", s.handleSave)
	s.mux.HandleFunc("POST /api/load", s.handleLoad)
	s.mux.HandleFunc("POST /api/menu/save", s.handleMenuSave)
	s.mux.HandleFunc("POST /api/menu/load", s.handleMenuLoad)

	if s.library != nil {
		s.mux.HandleFunc("GET /api/library", s.handleLibraryList)
		s.mux.HandleFunc("PUT /api/library/{name}", s.handleLibraryPut)
		s.mux.HandleFunc("POST /api/library/{name}/load", s.handleLibraryLoad)
		s.mux.HandleFunc("DELETE /api/library/{name}", s.handleLibraryDelete)
	}

	if s.hub != nil {
		s.mux.HandleFunc("GET /ws", s.hub.HandleWebSocket)
		s.mux.HandleFunc("GET /dashboard/", s.handleDashboard)
	}
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

type pathRequest struct {
	Path string `json:"path"`
}

type statusResponse struct {
	Mode      string `json:"mode"`
	Events    int    `json:"events"`
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) status() statusResponse {
	return statusResponse{
		Mode:      s.session.Mode().String(),
		Events:    len(s.session.Events()),
		SessionID: s.session.SessionID(),
	}
}

// handleRoot serves a service summary.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	st := s.status()
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "macrokey",
		"status":  "running",
		"mode":    st.Mode,
		"events":  st.Events,
		"time":    s.clock.Now().Format(time.RFC3339),
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":   s.session.Mode().String(),
		"events": s.session.Events(),
	})
}

func (s *Server) handleRecordToggle(w http.ResponseWriter, r *http.Request) {
	s.session.ToggleRecording()
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handlePlayToggle(w http.ResponseWriter, r *http.Request) {
	s.session.TogglePlay()
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePath(w, r)
	if !ok {
		return
	}
	if err := s.session.Save(req.Path); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePath(w, r)
	if !ok {
		return
	}
	report, err := s.session.Load(req.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loadResponse(report))
}

func (s *Server) handleMenuSave(w http.ResponseWriter, r *http.Request) {
	s.session.RequestSave()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleMenuLoad(w http.ResponseWriter, r *http.Request) {
	s.session.RequestLoad()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleLibraryList(w http.ResponseWriter, r *http.Request) {
	names, err := s.library.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"macros": names})
}

func (s *Server) handleLibraryPut(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := library.ValidateName(name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.session.SaveTo(r.Context(), s.library, name); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"stored": name})
}

func (s *Server) handleLibraryLoad(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	report, err := s.session.LoadFrom(r.Context(), s.library, name)
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loadResponse(report))
}

func (s *Server) handleLibraryDelete(w http.ResponseWriter, r *http.Request) {
	err := s.library.Delete(r.Context(), r.PathValue("name"))
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(DashboardHTML))
}

func loadResponse(report session.LoadReport) map[string]any {
	return map[string]any{
		"applied": report.Applied,
		"loaded":  report.Loaded,
		"skipped": len(report.Skipped),
	}
}

func decodePath(w http.ResponseWriter, r *http.Request) (pathRequest, bool) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.StartOnListener(ln)
}

// StartOnListener begins serving on the provided listener.
// Useful for tests that need to pick an ephemeral port.
func (s *Server) StartOnListener(ln net.Listener) error {
	s.logger.Info("macrokey server listening", zap.String("addr", ln.Addr().String()))
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
