package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/claudiu-carv/ats-mock-simulator/internal/id"
	"github.com/claudiu-carv/ats-mock-simulator/internal/matching"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
)

// MemoryStore is a thread-safe in-memory implementation of Store.
type MemoryStore struct {
	mu        sync.RWMutex
	endpoints map[string]*EndpointRecord
	schemas   map[string]*SchemaRecord
	templates map[string]*TemplateRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		endpoints: make(map[string]*EndpointRecord),
		schemas:   make(map[string]*SchemaRecord),
		templates: make(map[string]*TemplateRecord),
	}
}

// CreateEndpoint stores a new endpoint and returns its record.
func (s *MemoryStore) CreateEndpoint(ep api.Endpoint) (*EndpointRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec := &EndpointRecord{
		ID:        id.UUID(),
		Endpoint:  ep,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.endpoints[rec.ID] = rec
	return rec, nil
}

// GetEndpoint retrieves an endpoint by ID.
func (s *MemoryStore) GetEndpoint(endpointID string) (*EndpointRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.endpoints[endpointID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// FindEndpoint locates an active endpoint by method and path. An exact
// path match wins over a templated route like /candidates/{id}.
func (s *MemoryStore) FindEndpoint(method, path string) (*EndpointRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	method = strings.ToUpper(method)
	var templated *EndpointRecord
	for _, rec := range s.endpoints {
		if !rec.IsActive || rec.Method != method {
			continue
		}
		if rec.Path == path {
			return rec, nil
		}
		if templated == nil && matching.MatchPath(rec.Path, path) {
			templated = rec
		}
	}
	if templated != nil {
		return templated, nil
	}
	return nil, ErrNotFound
}

// ListEndpoints returns all endpoints ordered by creation time.
func (s *MemoryStore) ListEndpoints() []*EndpointRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*EndpointRecord, 0, len(s.endpoints))
	for _, rec := range s.endpoints {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// UpdateEndpoint replaces the endpoint descriptor for id.
func (s *MemoryStore) UpdateEndpoint(endpointID string, ep api.Endpoint) (*EndpointRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.endpoints[endpointID]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Endpoint = ep
	rec.UpdatedAt = time.Now().UTC()
	return rec, nil
}

// DeleteEndpoint removes an endpoint and its schemas and templates.
func (s *MemoryStore) DeleteEndpoint(endpointID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.endpoints[endpointID]; !ok {
		return ErrNotFound
	}
	delete(s.endpoints, endpointID)
	for sid, schema := range s.schemas {
		if schema.EndpointID == endpointID {
			delete(s.schemas, sid)
		}
	}
	for tid, tmpl := range s.templates {
		if tmpl.EndpointID == endpointID {
			delete(s.templates, tid)
		}
	}
	return nil
}

// CreateSchema stores a request schema for an endpoint.
func (s *MemoryStore) CreateSchema(endpointID string, schema api.RequestSchema) (*SchemaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.endpoints[endpointID]; !ok {
		return nil, ErrNotFound
	}
	if schema.IsDefault {
		for _, existing := range s.schemas {
			if existing.EndpointID == endpointID {
				existing.IsDefault = false
			}
		}
	}

	rec := &SchemaRecord{
		ID:            id.UUID(),
		EndpointID:    endpointID,
		RequestSchema: schema,
		CreatedAt:     time.Now().UTC(),
	}
	s.schemas[rec.ID] = rec
	return rec, nil
}

// ListSchemas returns the schemas bound to an endpoint.
func (s *MemoryStore) ListSchemas(endpointID string) []*SchemaRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*SchemaRecord
	for _, rec := range s.schemas {
		if rec.EndpointID == endpointID {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// DefaultSchema returns the default schema for an endpoint.
func (s *MemoryStore) DefaultSchema(endpointID string) (*SchemaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.schemas {
		if rec.EndpointID == endpointID && rec.IsDefault {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteSchema removes a schema by ID.
func (s *MemoryStore) DeleteSchema(schemaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schemas[schemaID]; !ok {
		return ErrNotFound
	}
	delete(s.schemas, schemaID)
	return nil
}

// CreateTemplate stores a response template for an endpoint.
func (s *MemoryStore) CreateTemplate(endpointID string, tmpl api.ResponseTemplate) (*TemplateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.endpoints[endpointID]; !ok {
		return nil, ErrNotFound
	}
	if tmpl.IsDefault {
		for _, existing := range s.templates {
			if existing.EndpointID == endpointID {
				existing.IsDefault = false
			}
		}
	}

	rec := &TemplateRecord{
		ID:               id.UUID(),
		EndpointID:       endpointID,
		ResponseTemplate: tmpl,
		CreatedAt:        time.Now().UTC(),
	}
	s.templates[rec.ID] = rec
	return rec, nil
}

// ListTemplates returns the templates bound to an endpoint.
func (s *MemoryStore) ListTemplates(endpointID string) []*TemplateRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*TemplateRecord
	for _, rec := range s.templates {
		if rec.EndpointID == endpointID {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// DefaultTemplate returns the default template for an endpoint.
func (s *MemoryStore) DefaultTemplate(endpointID string) (*TemplateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.templates {
		if rec.EndpointID == endpointID && rec.IsDefault {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// TemplateByName returns the endpoint's template with the given name.
func (s *MemoryStore) TemplateByName(endpointID, name string) (*TemplateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.templates {
		if rec.EndpointID == endpointID && rec.Name == name {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// TemplateByStatus returns the endpoint's template with the given status
// code.
func (s *MemoryStore) TemplateByStatus(endpointID string, status int) (*TemplateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.templates {
		if rec.EndpointID == endpointID && rec.StatusCode == status {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteTemplate removes a template by ID.
func (s *MemoryStore) DeleteTemplate(templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[templateID]; !ok {
		return ErrNotFound
	}
	delete(s.templates, templateID)
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
