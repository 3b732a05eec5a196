// Package storage persists endpoint definitions, request schemas, and
// response templates for the mock simulator.
package storage

import (
	"errors"
	"time"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// EndpointRecord is a stored endpoint with its identity and timestamps.
type EndpointRecord struct {
	ID string `json:"id"`
	api.Endpoint
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchemaRecord is a stored request schema bound to an endpoint.
type SchemaRecord struct {
	ID         string `json:"id"`
	EndpointID string `json:"endpoint_id"`
	api.RequestSchema
	CreatedAt time.Time `json:"created_at"`
}

// TemplateRecord is a stored response template bound to an endpoint.
type TemplateRecord struct {
	ID         string `json:"id"`
	EndpointID string `json:"endpoint_id"`
	api.ResponseTemplate
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence boundary used by the dispatcher and the admin
// API. Implementations must be safe for concurrent use.
type Store interface {
	// CreateEndpoint stores a new endpoint and returns its record.
	CreateEndpoint(ep api.Endpoint) (*EndpointRecord, error)

	// GetEndpoint retrieves an endpoint by ID.
	GetEndpoint(id string) (*EndpointRecord, error)

	// FindEndpoint locates an active endpoint by method and path. Routes
	// may use OpenAPI-style templates such as /candidates/{id}; exact
	// matches win over templated ones.
	FindEndpoint(method, path string) (*EndpointRecord, error)

	// ListEndpoints returns all endpoints ordered by creation time.
	ListEndpoints() []*EndpointRecord

	// UpdateEndpoint replaces the endpoint descriptor for id.
	UpdateEndpoint(id string, ep api.Endpoint) (*EndpointRecord, error)

	// DeleteEndpoint removes an endpoint and its schemas and templates.
	DeleteEndpoint(id string) error

	// CreateSchema stores a request schema for an endpoint. A schema
	// marked default demotes any previous default on the same endpoint.
	CreateSchema(endpointID string, schema api.RequestSchema) (*SchemaRecord, error)

	// ListSchemas returns the schemas bound to an endpoint.
	ListSchemas(endpointID string) []*SchemaRecord

	// DefaultSchema returns the default schema for an endpoint, or
	// ErrNotFound when the endpoint has none.
	DefaultSchema(endpointID string) (*SchemaRecord, error)

	// DeleteSchema removes a schema by ID.
	DeleteSchema(id string) error

	// CreateTemplate stores a response template for an endpoint. A
	// template marked default demotes any previous default.
	CreateTemplate(endpointID string, tmpl api.ResponseTemplate) (*TemplateRecord, error)

	// ListTemplates returns the templates bound to an endpoint.
	ListTemplates(endpointID string) []*TemplateRecord

	// DefaultTemplate returns the default template for an endpoint.
	DefaultTemplate(endpointID string) (*TemplateRecord, error)

	// TemplateByName returns the endpoint's template with the given name.
	TemplateByName(endpointID, name string) (*TemplateRecord, error)

	// TemplateByStatus returns the endpoint's template with the given
	// status code.
	TemplateByStatus(endpointID string, status int) (*TemplateRecord, error)

	// DeleteTemplate removes a template by ID.
	DeleteTemplate(id string) error
}
