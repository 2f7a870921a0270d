package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spektr-org/batstats/command"
	"github.com/spektr-org/batstats/config"
	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/render"
	"github.com/spektr-org/batstats/schema"
)

// ============================================================================
// SERVER — Command surface over HTTP
// ============================================================================
//   GET       /health
//   GET       /api/v1/commands
//   GET       /api/v1/schema               columns, display names and units
//   GET|POST  /api/v1/commands/{name}   args from query string or JSON body
//
// Results are JSON by default; ?format=csv returns the table as CSV and
// ?format=png returns a graph command's chart.
// ============================================================================

const maxBodyBytes = 1 << 16

// Server serves one season's commands.
type Server struct {
	dispatcher *command.Dispatcher
	cfg        config.ServerConfig
}

// New creates a Server for d.
func New(d *command.Dispatcher, cfg config.ServerConfig) *Server {
	return &Server{dispatcher: d, cfg: cfg}
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// CommandInfo describes one command for listing.
type CommandInfo struct {
	Name   string          `json:"name"`
	Graph  bool            `json:"graph"`
	Inputs []command.Input `json:"inputs"`
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/commands", s.listCommands)
		r.Get("/schema", s.getSchema)
		r.Get("/commands/{name}", s.runCommand)
		r.Post("/commands/{name}", s.runCommand)
	})

	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("🌐 batstats: serving %d players on %s", s.dispatcher.Players(), s.cfg.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		log.Printf("⚠️  batstats: shutting down")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "batstats",
		"players":   s.dispatcher.Players(),
	})
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	all := command.All()
	out := make([]CommandInfo, len(all))
	for i, c := range all {
		inputs := c.Inputs()
		if inputs == nil {
			inputs = []command.Input{}
		}
		out[i] = CommandInfo{Name: c.String(), Graph: c.IsGraph(), Inputs: inputs}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, schema.Batting())
}

func (s *Server) runCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := command.Parse(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, http.StatusNotFound, command.Message(cmd, err), err)
		return
	}

	args, err := readArgs(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "png" && !cmd.IsGraph() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("%s has no chart", cmd), nil)
		return
	}

	res, err := s.dispatcher.Execute(cmd, args)
	if err != nil {
		respondError(w, statusFor(err), command.Message(cmd, err), err)
		return
	}

	switch format {
	case "", render.FormatJSON:
		respondJSON(w, http.StatusOK, res)
	case "png":
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, res.ChartConfig, render.DefaultWidth, render.DefaultHeight); err != nil {
			respondError(w, http.StatusInternalServerError, "chart rendering failed", err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	case render.FormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := render.WriteCSV(w, res); err != nil {
			log.Printf("⚠️  batstats: write csv: %v", err)
		}
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format), nil)
	}
}

// readArgs collects command arguments from the query string, then from a
// JSON object body on POST. Body values win.
func readArgs(r *http.Request) (command.Args, error) {
	args := command.Args{}
	for key, vals := range r.URL.Query() {
		if key == "format" || len(vals) == 0 {
			continue
		}
		args[key] = vals[0]
	}

	if r.Method != http.MethodPost || r.Body == nil {
		return args, nil
	}

	var body map[string]string
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return args, nil
		}
		return nil, err
	}
	for k, v := range body {
		args[k] = v
	}
	return args, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, command.ErrUnknownCommand), errors.Is(err, league.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, league.ErrInvalidStat),
		errors.Is(err, league.ErrInvalidQuantile),
		errors.Is(err, league.ErrInvalidTeamName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("⚠️  batstats: encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		log.Printf("⚠️  batstats: %s - %v", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		log.Printf("⚠️  batstats: encoding error response: %v", err)
	}
}
