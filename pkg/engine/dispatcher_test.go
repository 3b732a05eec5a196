package engine

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudiu-carv/ats-mock-simulator/internal/storage"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
)

func seedEndpoint(t *testing.T, store *storage.MemoryStore, method, path string) *storage.EndpointRecord {
	t.Helper()
	rec, err := store.CreateEndpoint(api.Endpoint{
		Path: path, Method: method, Name: method + " " + path, IsActive: true,
	})
	require.NoError(t, err)
	return rec
}

func serve(d *Dispatcher, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	d.ServeHTTP(rr, req)
	return rr
}

func TestDispatchUnknownEndpoint(t *testing.T) {
	d := NewDispatcher(storage.NewMemoryStore())

	rr := serve(d, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Endpoint not found", body["detail"])
}

func TestDispatchRendersDefaultTemplate(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "POST", "/candidates")
	_, err := store.CreateTemplate(ep.ID, api.ResponseTemplate{
		Name:        "HTTP_201",
		Template:    `{"email": "${request.email}", "id": "${mock.uuid}"}`,
		StatusCode:  201,
		ContentType: "application/json",
		IsDefault:   true,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	req := httptest.NewRequest(http.MethodPost, "/candidates",
		strings.NewReader(`{"email": "jo@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(d, req)

	require.Equal(t, 201, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Empty(t, rr.Header().Get(TemplateUsedHeader), "header only set when forced")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "jo@example.com", body["email"])
	assert.NotEmpty(t, body["id"])
}

func TestDispatchQueryParamsOverrideBody(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "POST", "/candidates")
	_, err := store.CreateTemplate(ep.ID, api.ResponseTemplate{
		Name: "HTTP_200", Template: `{"status": "${request.status}"}`,
		StatusCode: 200, IsDefault: true,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	req := httptest.NewRequest(http.MethodPost, "/candidates?status=query-wins",
		strings.NewReader(`{"status": "from-body"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(d, req)

	assert.Contains(t, rr.Body.String(), "query-wins")
}

func TestDispatchFormBody(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "POST", "/candidates")
	_, err := store.CreateTemplate(ep.ID, api.ResponseTemplate{
		Name: "HTTP_200", Template: `{"name": "${request.full_name}"}`,
		StatusCode: 200, IsDefault: true,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	req := httptest.NewRequest(http.MethodPost, "/candidates",
		strings.NewReader("full_name=Jo+Doe&extra=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := serve(d, req)

	assert.Contains(t, rr.Body.String(), "Jo Doe")
}

func TestDispatchValidationFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "POST", "/candidates")
	_, err := store.CreateSchema(ep.ID, api.RequestSchema{
		Name:        "default",
		Validations: `[{"field_name": "email", "field_type": "email", "required": true}]`,
		IsDefault:   true,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	req := httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(d, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "email", body.Details[0].Field)
	assert.Equal(t, "Field is required", body.Details[0].Message)
}

func TestDispatchMalformedBodyStillValidated(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "POST", "/candidates")
	_, err := store.CreateSchema(ep.ID, api.RequestSchema{
		Name:        "default",
		Validations: `[{"field_name": "email", "field_type": "email"}]`,
		IsDefault:   true,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	req := httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(d, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code,
		"undecodable body behaves like an empty payload and fails required checks")
}

func TestDispatchForcedTemplate(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "GET", "/candidates")
	_, err := store.CreateTemplate(ep.ID, api.ResponseTemplate{
		Name: "HTTP_200", Template: `{"ok": true}`, StatusCode: 200, IsDefault: true,
	})
	require.NoError(t, err)
	_, err = store.CreateTemplate(ep.ID, api.ResponseTemplate{
		Name: "HTTP_503", Template: `{"error": true}`, StatusCode: 503,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)

	// Force by template name.
	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	req.Header.Set(ForceResponseHeader, "HTTP_503")
	rr := serve(d, req)
	assert.Equal(t, 503, rr.Code)
	assert.Equal(t, "HTTP_503", rr.Header().Get(TemplateUsedHeader))

	// Force by numeric status code.
	req = httptest.NewRequest(http.MethodGet, "/candidates", nil)
	req.Header.Set(ForceResponseHeader, "503")
	rr = serve(d, req)
	assert.Equal(t, 503, rr.Code)
	assert.Equal(t, "HTTP_503", rr.Header().Get(TemplateUsedHeader))

	// Unknown force value falls back to the default template.
	req = httptest.NewRequest(http.MethodGet, "/candidates", nil)
	req.Header.Set(ForceResponseHeader, "HTTP_999")
	rr = serve(d, req)
	assert.Equal(t, 200, rr.Code)
	assert.Empty(t, rr.Header().Get(TemplateUsedHeader))
}

func TestDispatchWithoutTemplate(t *testing.T) {
	store := storage.NewMemoryStore()
	seedEndpoint(t, store, "GET", "/bare")

	d := NewDispatcher(store)
	rr := serve(d, httptest.NewRequest(http.MethodGet, "/bare", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Request processed successfully", body["message"])
}

func TestDispatchPathParams(t *testing.T) {
	store := storage.NewMemoryStore()
	ep := seedEndpoint(t, store, "GET", "/candidates/{id}")
	_, err := store.CreateTemplate(ep.ID, api.ResponseTemplate{
		Name: "HTTP_200", Template: `{"id": "${request.id}"}`,
		StatusCode: 200, IsDefault: true,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	rr := serve(d, httptest.NewRequest(http.MethodGet, "/candidates/abc-42", nil))

	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "abc-42")
}

func TestDispatchInactiveEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	_, err := store.CreateEndpoint(api.Endpoint{
		Path: "/off", Method: "GET", IsActive: false,
	})
	require.NoError(t, err)

	d := NewDispatcher(store)
	rr := serve(d, httptest.NewRequest(http.MethodGet, "/off", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"200", 200, true},
		{"503", 503, true},
		{"HTTP_200", 0, false},
		{"", 0, false},
		{"99", 0, false},
		{"600", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
