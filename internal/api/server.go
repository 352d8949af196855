// Package api exposes analysis runs and the community catalog over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/analysis"
	"github.com/community-analyzer/internal/community"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/runner"
)

// Runner executes one analysis run
type Runner interface {
	Run(ctx context.Context, req models.RunRequest) (*models.Report, error)
}

// Server is the HTTP surface of the analyzer
type Server struct {
	router   *chi.Mux
	port     int
	runner   Runner
	catalog  *community.Catalog
	timezone *time.Location
	logger   zerolog.Logger
}

// NewServer creates the router and registers every route
func NewServer(port int, r Runner, catalog *community.Catalog, timezone *time.Location, logger zerolog.Logger) *Server {
	if timezone == nil {
		timezone = time.UTC
	}

	s := &Server{
		router:   chi.NewRouter(),
		port:     port,
		runner:   r,
		catalog:  catalog,
		timezone: timezone,
		logger:   logger.With().Str("component", "api").Logger(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(s.recoverMiddleware)
	s.router.Use(s.logMiddleware)

	s.router.Get("/health", s.health)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/servers", s.listServers)
		r.Post("/runs", s.createRun)
	})

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("API server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	s.logger.Info().Msg("API server stopped")
	return ctx.Err()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ServerInfo is a known server in the catalog
type ServerInfo struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Channels []ChannelInfo `json:"channels"`
}

// ChannelInfo is a known channel of a server
type ChannelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listServers handles GET /api/v1/servers
func (s *Server) listServers(w http.ResponseWriter, r *http.Request) {
	servers := make([]ServerInfo, 0, len(s.catalog.Servers))
	for _, srv := range s.catalog.Servers {
		info := ServerInfo{ID: srv.ID, Name: srv.Name, Channels: make([]ChannelInfo, 0, len(srv.Channels))}
		for id, name := range srv.Channels {
			info.Channels = append(info.Channels, ChannelInfo{ID: id, Name: name})
		}
		sort.Slice(info.Channels, func(i, j int) bool { return info.Channels[i].ID < info.Channels[j].ID })
		servers = append(servers, info)
	}
	writeJSON(w, http.StatusOK, servers)
}

// RunRequest is the payload of POST /api/v1/runs; dates are YYYY-MM-DD or RFC 3339
type RunRequest struct {
	Variant     string   `json:"variant"`
	Server      string   `json:"server"`
	Channels    []string `json:"channels"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	FailureMode string   `json:"failure_mode,omitempty"`
}

func (s *Server) runRequest(body RunRequest) (models.RunRequest, error) {
	variant, err := models.ParseVariant(body.Variant)
	if err != nil {
		return models.RunRequest{}, fmt.Errorf("%w: %v", runner.ErrInvalidRequest, err)
	}
	start, err := runner.ParseDate(body.Start, false, s.timezone)
	if err != nil {
		return models.RunRequest{}, err
	}
	end, err := runner.ParseDate(body.End, true, s.timezone)
	if err != nil {
		return models.RunRequest{}, err
	}

	return models.RunRequest{
		Variant:     variant,
		Server:      body.Server,
		Channels:    body.Channels,
		Start:       start,
		End:         end,
		FailureMode: models.FailureMode(body.FailureMode),
	}, nil
}

// createRun handles POST /api/v1/runs; the run executes within the request
func (s *Server) createRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	req, err := s.runRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.runner.Run(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error().
				Err(err).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("Analysis run failed")
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, runner.ErrInvalidRequest), errors.Is(err, community.ErrUnknownServer):
		return http.StatusBadRequest
	case errors.Is(err, runner.ErrNoMessages):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrStrictFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
