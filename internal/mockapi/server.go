package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// Server serves a fixed catalog over HTTP.
type Server struct {
	seed   Seed
	logger *slog.Logger
	server *http.Server
	addr   string
}

// New builds a server for seed. A nil logger discards output.
func New(seed Seed, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{seed: seed, logger: logger.With("component", "mockapi")}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(s.withLogging)
	r.Use(s.withRecovery)

	r.Get("/healthz", s.handleHealth)
	r.Get("/categories", s.handleCategories)
	r.Route("/peripherals", func(r chi.Router) {
		r.Get("/", s.handleListPeripherals)
		r.Get("/{id}", s.handleGetPeripheral)
	})
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)
	return r
}

// Start listens on addr ("host:port", port 0 picks a free one) and serves in
// the background until ctx is done or Close is called.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.addr = ln.Addr().String()
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock api stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	s.logger.Info("mock api listening", "addr", s.addr, "peripherals", len(s.seed.Peripherals))
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	return s.addr
}

// URL returns the base URL clients should use.
func (s *Server) URL() string {
	return "http://" + s.addr
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown mock api: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"peripherals": len(s.seed.Peripherals),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.seed.Categories
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleListPeripherals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, filterPeripherals(s.seed.Peripherals, r.URL.Query()))
}

func (s *Server) handleGetPeripheral(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range s.seed.Peripherals {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	handleNotFound(w, r)
}

// Unknown routes and ids answer 404 with an empty object.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
