// Package server assembles the HTTP surface.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/chartmaker/internal/handler"
	"github.com/dukerupert/chartmaker/internal/middleware"
	"github.com/dukerupert/chartmaker/internal/service"
	ws "github.com/dukerupert/chartmaker/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	chartH      *handler.ChartHandler
	progressH   *handler.ProgressHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires handlers around svc. illustrationLimit caps illustration
// requests per client IP per minute.
func New(db *sql.DB, svc *service.ChartService, hub *ws.Hub, now func() time.Time, illustrationLimit int, logger *slog.Logger) *Server {
	return &Server{
		db:          db,
		hub:         hub,
		chartH:      handler.NewChartHandler(svc, logger.With("component", "chart")),
		progressH:   handler.NewProgressHandler(svc, now, logger.With("component", "progress")),
		rateLimiter: middleware.NewRateLimiter(illustrationLimit, time.Minute),
		logger:      logger,
	}
}

func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	mux.HandleFunc("GET /api/charts", s.chartH.List)
	mux.HandleFunc("GET /api/charts/{child}", s.chartH.Get)
	mux.HandleFunc("PUT /api/charts/{child}/name", s.chartH.UpdateChild)
	mux.HandleFunc("DELETE /api/charts/{child}", s.chartH.Delete)

	mux.HandleFunc("POST /api/charts/{child}/tasks", s.chartH.CreateTask)
	mux.HandleFunc("PUT /api/charts/{child}/tasks/{id}", s.chartH.RenameTask)
	mux.HandleFunc("DELETE /api/charts/{child}/tasks/{id}", s.chartH.DeleteTask)
	mux.HandleFunc("POST /api/charts/{child}/tasks/{id}/move", s.chartH.MoveTask)
	mux.HandleFunc("POST /api/charts/{child}/tasks/{id}/illustration", s.rateLimited(s.chartH.TaskIllustration))

	mux.HandleFunc("POST /api/charts/{child}/chores", s.chartH.CreateChore)
	mux.HandleFunc("PUT /api/charts/{child}/chores/{id}", s.chartH.UpdateChore)
	mux.HandleFunc("DELETE /api/charts/{child}/chores/{id}", s.chartH.DeleteChore)
	mux.HandleFunc("POST /api/charts/{child}/chores/{id}/move", s.chartH.MoveChore)
	mux.HandleFunc("POST /api/charts/{child}/chores/{id}/illustration", s.rateLimited(s.chartH.ChoreIllustration))

	mux.HandleFunc("PUT /api/charts/{child}/reward", s.chartH.UpdateReward)

	mux.HandleFunc("GET /api/charts/{child}/progress", s.progressH.Get)
	mux.HandleFunc("POST /api/charts/{child}/progress/tasks/{id}/{day}", s.progressH.ToggleTask)
	mux.HandleFunc("POST /api/charts/{child}/progress/chores/{id}/{day}", s.progressH.ToggleChore)
	mux.HandleFunc("POST /api/charts/{child}/progress/reset", s.progressH.Reset)
	mux.HandleFunc("GET /api/charts/{child}/pages", s.progressH.Pages)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RateLimit(s.rateLimiter, middleware.RealIP)(h).ServeHTTP
}
