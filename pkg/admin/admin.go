// Package admin provides a REST API for managing mock endpoints, request
// schemas, and response templates.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/claudiu-carv/ats-mock-simulator/internal/storage"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/importer"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/logging"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/requestlog"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/template"
)

// API exposes the admin REST surface over a storage.Store.
type API struct {
	store      storage.Store
	importer   *importer.Importer
	renderer   *template.Engine
	history    requestlog.Store
	httpServer *http.Server
	port       int
	startTime  time.Time
	log        *slog.Logger
}

// Option is a functional option for configuring an API.
type Option func(*API)

// WithLogger sets the operational logger for the API.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithHistory exposes a request history store through the /requests
// routes.
func WithHistory(history requestlog.Store) Option {
	return func(a *API) {
		a.history = history
	}
}

// New creates an admin API bound to the given store.
func New(port int, store storage.Store, opts ...Option) *API {
	a := &API{
		store: store,
		port:  port,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.importer = importer.NewWithLogger(a.log)
	a.renderer = template.NewWithLogger(a.log)
	return a
}

// Handler returns the routed admin handler. Useful for tests and for
// mounting the API under an existing server.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.handleHealth)

	mux.HandleFunc("GET /endpoints", a.handleListEndpoints)
	mux.HandleFunc("POST /endpoints", a.handleCreateEndpoint)
	mux.HandleFunc("GET /endpoints/{id}", a.handleGetEndpoint)
	mux.HandleFunc("PUT /endpoints/{id}", a.handleUpdateEndpoint)
	mux.HandleFunc("DELETE /endpoints/{id}", a.handleDeleteEndpoint)

	mux.HandleFunc("GET /endpoints/{id}/schemas", a.handleListSchemas)
	mux.HandleFunc("POST /endpoints/{id}/schemas", a.handleCreateSchema)
	mux.HandleFunc("DELETE /schemas/{id}", a.handleDeleteSchema)

	mux.HandleFunc("GET /endpoints/{id}/templates", a.handleListTemplates)
	mux.HandleFunc("POST /endpoints/{id}/templates", a.handleCreateTemplate)
	mux.HandleFunc("DELETE /templates/{id}", a.handleDeleteTemplate)

	mux.HandleFunc("POST /templates/validate", a.handleValidateTemplate)
	mux.HandleFunc("POST /import/openapi", a.handleImportOpenAPI)

	mux.HandleFunc("GET /requests", a.handleListRequests)
	mux.HandleFunc("GET /requests/{id}", a.handleGetRequest)
	mux.HandleFunc("DELETE /requests", a.handleClearRequests)

	return mux
}

// Start begins serving the admin API in a background goroutine.
func (a *API) Start() error {
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.startTime = time.Now()

	a.log.Info("starting admin API", "port", a.port)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("admin API server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the admin API.
func (a *API) Stop(ctx context.Context) error {
	if a.httpServer == nil {
		return nil
	}
	return a.httpServer.Shutdown(ctx)
}

// Uptime returns the seconds since the API started.
func (a *API) Uptime() int64 {
	if a.startTime.IsZero() {
		return 0
	}
	return int64(time.Since(a.startTime).Seconds())
}
