package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"todod/pkg/todo"
)

// Server is the HTTP API server.
type Server struct {
	todos todo.Store
	mux   *http.ServeMux
}

// New creates a new Server.
func New(todos todo.Store) *Server {
	s := &Server{
		todos: todos,
		mux:   http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-Id", reqID)
	lw := &loggingWriter{ResponseWriter: w, status: 200}

	start := time.Now()
	s.mux.ServeHTTP(lw, r)
	log.Printf("api: %s %s %d %s %s", r.Method, r.URL.Path, lw.status, time.Since(start), reqID)
}

func (s *Server) routes() {
	// Todos
	s.mux.HandleFunc("GET /api/todos", s.handleTodoList)
	s.mux.HandleFunc("POST /api/todos", s.handleTodoCreate)
	s.mux.HandleFunc("GET /api/todos/{id}", s.handleTodoGet)
	s.mux.HandleFunc("PUT /api/todos/{id}", s.handleTodoUpdate)
	s.mux.HandleFunc("PATCH /api/todos/{id}/toggle", s.handleTodoToggle)
	s.mux.HandleFunc("DELETE /api/todos/{id}", s.handleTodoDelete)
	s.mux.HandleFunc("OPTIONS /api/", s.handlePreflight)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	total, completed, err := s.todos.Count(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, map[string]int{
		"todos":     total,
		"completed": completed,
		"pending":   total - completed,
	})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// loggingWriter records the status code for the access log line.
type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
