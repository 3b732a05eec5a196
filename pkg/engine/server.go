// Package engine provides the core mock serving engine: endpoint matching,
// request validation, and response template rendering.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/claudiu-carv/ats-mock-simulator/internal/storage"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/admin"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/config"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/logging"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/requestlog"
)

// Server runs the mock listener and, when configured, the admin API.
type Server struct {
	cfg        *config.Config
	store      storage.Store
	dispatcher *Dispatcher
	history    requestlog.Store
	adminAPI   *admin.API
	httpServer *http.Server
	log        *slog.Logger
	mu         sync.Mutex
	running    bool
	startTime  time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore sets the backing store. Defaults to an in-memory store.
func WithStore(store storage.Store) ServerOption {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// NewServer creates a Server with the given configuration.
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = storage.NewMemoryStore()
	}

	s.history = requestlog.NewInMemoryStore(cfg.MaxLogEntries)
	s.dispatcher = NewDispatcherWithLogger(s.store, s.log)
	s.dispatcher.SetHistory(s.history)
	if cfg.AdminPort > 0 {
		s.adminAPI = admin.New(cfg.AdminPort, s.store,
			admin.WithLogger(s.log), admin.WithHistory(s.history))
	}
	return s
}

// History returns the server's request history store.
func (s *Server) History() requestlog.Store { return s.history }

// Store returns the server's backing store.
func (s *Server) Store() storage.Store { return s.store }

// Handler returns the mock traffic handler. Useful for tests.
func (s *Server) Handler() http.Handler { return s.dispatcher }

// LoadEndpoints expands the configured endpoint entries, resolving file
// references and globs relative to baseDir, and seeds them into the store.
func (s *Server) LoadEndpoints(baseDir string) error {
	entries, err := config.LoadAllEndpoints(s.cfg.Endpoints, baseDir)
	if err != nil {
		return fmt.Errorf("loading endpoints: %w", err)
	}

	imported := make([]api.ImportedEndpoint, 0, len(entries))
	for i := range entries {
		ep, err := entries[i].ToImported()
		if err != nil {
			return fmt.Errorf("loading endpoints: %w", err)
		}
		imported = append(imported, *ep)
	}
	if err := s.Seed(imported); err != nil {
		return err
	}
	if len(imported) > 0 {
		s.log.Info("endpoints loaded from config", "count", len(imported))
	}
	return nil
}

// Seed stores a batch of endpoint definitions with their schemas and
// templates, as produced by the config loader or the OpenAPI importer.
func (s *Server) Seed(endpoints []api.ImportedEndpoint) error {
	for _, imported := range endpoints {
		rec, err := s.store.CreateEndpoint(imported.Endpoint)
		if err != nil {
			return fmt.Errorf("seeding endpoint %s %s: %w", imported.Endpoint.Method, imported.Endpoint.Path, err)
		}
		if imported.Schema != nil {
			if _, err := s.store.CreateSchema(rec.ID, *imported.Schema); err != nil {
				return fmt.Errorf("seeding schema for %s: %w", rec.Path, err)
			}
		}
		for _, tmpl := range imported.Templates {
			if _, err := s.store.CreateTemplate(rec.ID, tmpl); err != nil {
				return fmt.Errorf("seeding template %s for %s: %w", tmpl.Name, rec.Path, err)
			}
		}
	}
	return nil
}

// Start starts the mock listener and the admin API.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.MockPort),
		Handler:      s.dispatcher,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	s.log.Info("starting mock server", "port", s.cfg.MockPort)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("mock server error", "error", err)
		}
	}()

	if s.adminAPI != nil {
		if err := s.adminAPI.Start(); err != nil {
			s.log.Error("admin API start error", "error", err)
		}
	}

	s.running = true
	s.startTime = time.Now()
	s.log.Info("simulator started", "mock_port", s.cfg.MockPort, "admin_port", s.cfg.AdminPort)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if s.adminAPI != nil {
		if err := s.adminAPI.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin API shutdown: %w", err))
		}
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mock server shutdown: %w", err))
		}
	}

	s.running = false
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
