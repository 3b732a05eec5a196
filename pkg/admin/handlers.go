package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/claudiu-carv/ats-mock-simulator/internal/storage"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/validation"
)

// ErrorResponse is the JSON error envelope for the admin API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int64  `json:"uptime_seconds"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// decodeJSON parses a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: a.Uptime(),
	})
}

func (a *API) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.ListEndpoints())
}

func (a *API) handleCreateEndpoint(w http.ResponseWriter, r *http.Request) {
	var ep api.Endpoint
	if err := decodeJSON(r, &ep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	if ep.Path == "" || ep.Method == "" {
		writeError(w, http.StatusBadRequest, "invalid_endpoint", "Endpoint requires a path and a method")
		return
	}
	ep.Method = strings.ToUpper(ep.Method)
	if ep.Name == "" {
		ep.Name = displayName(ep.Method, ep.Path)
	}

	rec, err := a.store.CreateEndpoint(ep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed", "Failed to create endpoint")
		return
	}
	a.log.Info("endpoint created", "id", rec.ID, "method", rec.Method, "path", rec.Path)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	rec, err := a.store.GetEndpoint(r.PathValue("id"))
	if err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) handleUpdateEndpoint(w http.ResponseWriter, r *http.Request) {
	var ep api.Endpoint
	if err := decodeJSON(r, &ep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	ep.Method = strings.ToUpper(ep.Method)

	rec, err := a.store.UpdateEndpoint(r.PathValue("id"), ep)
	if err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteEndpoint(r.PathValue("id")); err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	endpointID := r.PathValue("id")
	if _, err := a.store.GetEndpoint(endpointID); err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, a.store.ListSchemas(endpointID))
}

func (a *API) handleCreateSchema(w http.ResponseWriter, r *http.Request) {
	var schema api.RequestSchema
	if err := decodeJSON(r, &schema); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	if _, err := validation.ParseRules(schema.Validations); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_rules", err.Error())
		return
	}

	rec, err := a.store.CreateSchema(r.PathValue("id"), schema)
	if err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleDeleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteSchema(r.PathValue("id")); err != nil {
		writeNotFound(w, err, "Schema not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	endpointID := r.PathValue("id")
	if _, err := a.store.GetEndpoint(endpointID); err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, a.store.ListTemplates(endpointID))
}

func (a *API) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var tmpl api.ResponseTemplate
	if err := decodeJSON(r, &tmpl); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	if tmpl.StatusCode < 100 || tmpl.StatusCode > 599 {
		writeError(w, http.StatusBadRequest, "invalid_status", "Template status code out of range")
		return
	}
	if report := a.renderer.Validate(tmpl.Template); !report.Valid {
		writeError(w, http.StatusBadRequest, "invalid_template", strings.Join(report.Errors, "; "))
		return
	}

	rec, err := a.store.CreateTemplate(r.PathValue("id"), tmpl)
	if err != nil {
		writeNotFound(w, err, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteTemplate(r.PathValue("id")); err != nil {
		writeNotFound(w, err, "Template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeNotFound(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", message)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
}

// displayName derives a human-readable endpoint name from its route, e.g.
// POST /candidate_profiles becomes "Post Candidate Profiles".
func displayName(method, path string) string {
	cleaned := strings.NewReplacer("/", " ", "_", " ", "-", " ", "{", "", "}", "").Replace(path)
	name := strings.Join(strings.Fields(method+" "+cleaned), " ")
	return cases.Title(language.English).String(strings.ToLower(name))
}
