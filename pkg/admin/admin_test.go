package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudiu-carv/ats-mock-simulator/internal/storage"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/requestlog"
)

func endpointFixture() api.Endpoint {
	return api.Endpoint{Path: "/candidates", Method: "POST", Name: "create candidate", IsActive: true}
}

func newTestAPI() (*API, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return New(0, store), store
}

func doRequest(t *testing.T, api *API, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	api.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst))
}

func TestHealthEndpoint(t *testing.T) {
	api, _ := newTestAPI()
	rr := doRequest(t, api, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var health HealthResponse
	decodeBody(t, rr, &health)
	assert.Equal(t, "ok", health.Status)
}

func TestEndpointLifecycle(t *testing.T) {
	api, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodPost, "/endpoints", map[string]any{
		"path":      "/candidate_profiles",
		"method":    "post",
		"is_active": true,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created storage.EndpointRecord
	decodeBody(t, rr, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "POST", created.Method)
	assert.Equal(t, "Post Candidate Profiles", created.Name, "missing name is derived from the route")

	rr = doRequest(t, api, http.MethodGet, "/endpoints/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, api, http.MethodPut, "/endpoints/"+created.ID, map[string]any{
		"path": "/candidate_profiles", "method": "POST", "name": "renamed", "is_active": false,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var updated storage.EndpointRecord
	decodeBody(t, rr, &updated)
	assert.Equal(t, "renamed", updated.Name)
	assert.False(t, updated.IsActive)

	rr = doRequest(t, api, http.MethodDelete, "/endpoints/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, api, http.MethodGet, "/endpoints/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateEndpointRejectsBadInput(t *testing.T) {
	api, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodPost, "/endpoints", map[string]any{"method": "GET"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/endpoints", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchemaHandlers(t *testing.T) {
	api, store := newTestAPI()
	ep, err := store.CreateEndpoint(endpointFixture())
	require.NoError(t, err)

	rules := `[{"field_name": "email", "field_type": "email"}]`
	rr := doRequest(t, api, http.MethodPost, "/endpoints/"+ep.ID+"/schemas", map[string]any{
		"name":        "default",
		"validations": rules,
		"is_default":  true,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var schema storage.SchemaRecord
	decodeBody(t, rr, &schema)
	assert.Equal(t, ep.ID, schema.EndpointID)

	rr = doRequest(t, api, http.MethodPost, "/endpoints/"+ep.ID+"/schemas", map[string]any{
		"name":        "broken",
		"validations": `[{"field_name": "", "field_type": "string"}]`,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "rules must parse before being stored")

	rr = doRequest(t, api, http.MethodGet, "/endpoints/"+ep.ID+"/schemas", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, api, http.MethodDelete, "/schemas/"+schema.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestTemplateHandlers(t *testing.T) {
	api, store := newTestAPI()
	ep, err := store.CreateEndpoint(endpointFixture())
	require.NoError(t, err)

	rr := doRequest(t, api, http.MethodPost, "/endpoints/"+ep.ID+"/templates", map[string]any{
		"name":        "HTTP_200",
		"template":    `{"id": "${mock.uuid}"}`,
		"status_code": 200,
		"is_default":  true,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, api, http.MethodPost, "/endpoints/"+ep.ID+"/templates", map[string]any{
		"name":        "bad",
		"template":    `{"x": "${bogus.thing}"}`,
		"status_code": 200,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown placeholder prefix is rejected")

	rr = doRequest(t, api, http.MethodPost, "/endpoints/"+ep.ID+"/templates", map[string]any{
		"name":        "bad-status",
		"template":    `{}`,
		"status_code": 99,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidateTemplateHandler(t *testing.T) {
	api, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodPost, "/templates/validate", map[string]any{
		"template": `{"id": "${mock.uuid}", "name": "${request.name}"}`,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var report struct {
		Valid         bool     `json:"valid"`
		RequestFields []string `json:"request_fields"`
		MockFields    []string `json:"mock_fields"`
	}
	decodeBody(t, rr, &report)
	assert.True(t, report.Valid)
	assert.Equal(t, []string{"name"}, report.RequestFields)
	assert.Equal(t, []string{"uuid"}, report.MockFields)
}

func TestImportOpenAPIHandler(t *testing.T) {
	api, store := newTestAPI()

	spec := `{
		"openapi": "3.0.0",
		"info": {"title": "Minimal", "version": "1.0.0"},
		"paths": {
			"/ping": {
				"get": {"responses": {"200": {"description": "pong"}}}
			}
		}
	}`
	rr := doRequest(t, api, http.MethodPost, "/import/openapi", map[string]any{
		"content": spec,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp ImportResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, 1, resp.TotalEndpoints)
	require.Len(t, resp.CreatedIDs, 1)

	stored, err := store.GetEndpoint(resp.CreatedIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "/ping", stored.Path)
	assert.Len(t, store.ListTemplates(stored.ID), 1)
}

func TestRequestHistoryHandlers(t *testing.T) {
	store := storage.NewMemoryStore()
	history := requestlog.NewInMemoryStore(10)
	api := New(0, store, WithHistory(history))

	history.Log(&requestlog.Entry{Method: "GET", Path: "/candidates", ResponseStatus: 200})
	history.Log(&requestlog.Entry{Method: "POST", Path: "/candidates", ResponseStatus: 400})

	rr := doRequest(t, api, http.MethodGet, "/requests?method=POST", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list RequestListResponse
	decodeBody(t, rr, &list)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Requests, 1)
	assert.Equal(t, "POST", list.Requests[0].Method)

	rr = doRequest(t, api, http.MethodGet, "/requests/"+list.Requests[0].ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, api, http.MethodDelete, "/requests", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 0, history.Count())
}

func TestRequestHistoryDisabled(t *testing.T) {
	api, _ := newTestAPI()
	rr := doRequest(t, api, http.MethodGet, "/requests", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestImportOpenAPIRejectsBadRequests(t *testing.T) {
	api, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodPost, "/import/openapi", map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, api, http.MethodPost, "/import/openapi", map[string]any{
		"content": "{}", "format": "xml",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, api, http.MethodPost, "/import/openapi", map[string]any{
		"content": "{broken", "format": "json",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
