package engine

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claudiu-carv/ats-mock-simulator/internal/matching"
	"github.com/claudiu-carv/ats-mock-simulator/internal/storage"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/logging"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/requestlog"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/template"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/util"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/validation"
)

// ForceResponseHeader selects a response template by name or status code,
// overriding the endpoint's default template.
const ForceResponseHeader = "X-Force-Response"

// TemplateUsedHeader echoes the name of a forced template on the response.
const TemplateUsedHeader = "X-Template-Used"

// Dispatcher serves mock traffic: it matches incoming requests against the
// configured endpoints, validates the request data, and renders the selected
// response template.
type Dispatcher struct {
	store    storage.Store
	renderer *template.Engine
	history  requestlog.Logger
	log      *slog.Logger
}

// NewDispatcher creates a Dispatcher that discards logs.
func NewDispatcher(store storage.Store) *Dispatcher {
	return NewDispatcherWithLogger(store, logging.Nop())
}

// NewDispatcherWithLogger creates a Dispatcher with the given logger.
func NewDispatcherWithLogger(store storage.Store, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		renderer: template.NewWithLogger(log),
		log:      log,
	}
}

// SetHistory installs a request history sink. Every dispatched request is
// recorded, including misses.
func (d *Dispatcher) SetHistory(history requestlog.Logger) {
	d.history = history
}

// ServeHTTP implements http.Handler for all mock traffic.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entry := &requestlog.Entry{
		Method:      r.Method,
		Path:        r.URL.Path,
		QueryString: r.URL.RawQuery,
		RemoteAddr:  r.RemoteAddr,
	}
	entry.ResponseStatus = d.dispatch(w, r, entry)
	entry.DurationMs = time.Since(start).Milliseconds()
	if d.history != nil {
		d.history.Log(entry)
	}
}

func (d *Dispatcher) dispatch(w http.ResponseWriter, r *http.Request, entry *requestlog.Entry) int {
	endpoint, err := d.store.FindEndpoint(r.Method, r.URL.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Endpoint not found"})
			return http.StatusNotFound
		}
		d.log.Error("endpoint lookup failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "Internal error"})
		return http.StatusInternalServerError
	}
	entry.EndpointID = endpoint.ID

	data := d.requestData(r, entry)
	for name, value := range matching.PathParams(endpoint.Path, r.URL.Path) {
		if _, ok := data[name]; !ok {
			data[name] = value
		}
	}

	if result := d.validateRequest(endpoint.ID, data); result != nil && !result.Valid {
		d.log.Info("request failed validation",
			"method", r.Method, "path", r.URL.Path, "errors", len(result.Errors))
		entry.ValidationFailed = true
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": result.Errors,
		})
		return http.StatusBadRequest
	}

	tmpl, forced := d.selectTemplate(endpoint.ID, r.Header.Get(ForceResponseHeader))
	if tmpl == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Request processed successfully",
		})
		return http.StatusOK
	}
	entry.TemplateName = tmpl.Name

	body := d.renderer.Render(tmpl.Template, data)

	contentType := tmpl.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	if forced {
		w.Header().Set(TemplateUsedHeader, tmpl.Name)
	}
	w.WriteHeader(tmpl.StatusCode)
	io.WriteString(w, body)

	d.log.Debug("served mock response",
		"method", r.Method, "path", r.URL.Path,
		"template", tmpl.Name, "status", tmpl.StatusCode)
	return tmpl.StatusCode
}

// requestData collects the values exposed to validation and to
// ${request.*} placeholders: the parsed body merged with the query string.
// Query parameters win on key collisions.
func (d *Dispatcher) requestData(r *http.Request, entry *requestlog.Entry) map[string]any {
	data := map[string]any{}

	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			d.log.Warn("failed to read request body", "error", err)
			break
		}
		entry.Body = util.TruncateBody(string(raw), 0)
		if len(raw) > 0 {
			data = d.parseBody(r.Header.Get("Content-Type"), raw)
		}
	}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}
	return data
}

// parseBody decodes the request body according to its content type. Bodies
// that cannot be decoded yield an empty map rather than an error; a mock
// endpoint should answer even on malformed input.
func (d *Dispatcher) parseBody(contentType string, raw []byte) map[string]any {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch {
	case strings.Contains(mediaType, "application/json"):
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			d.log.Debug("ignoring undecodable JSON body", "error", err)
			return map[string]any{}
		}
		return body
	case strings.Contains(mediaType, "application/x-www-form-urlencoded"):
		return parseForm(string(raw))
	default:
		// Unknown content type: accept JSON if it happens to parse.
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err == nil {
			return body
		}
		return map[string]any{}
	}
}

// validateRequest runs the endpoint's default schema against the request
// data. A missing schema or an unparseable rule set skips validation.
func (d *Dispatcher) validateRequest(endpointID string, data map[string]any) *validation.Result {
	schema, err := d.store.DefaultSchema(endpointID)
	if err != nil {
		return nil
	}
	rules, err := validation.ParseRules(schema.Validations)
	if err != nil {
		d.log.Error("skipping validation: stored rules are invalid",
			"endpoint_id", endpointID, "schema", schema.Name, "error", err)
		return nil
	}
	return validation.Validate(data, rules)
}

// selectTemplate picks the response template for a request. A forced value
// is tried first as a template name, then as a numeric status code; when it
// matches nothing, or no value is forced, the endpoint default applies.
func (d *Dispatcher) selectTemplate(endpointID, force string) (tmpl *storage.TemplateRecord, forced bool) {
	if force != "" {
		if byName, err := d.store.TemplateByName(endpointID, force); err == nil {
			return byName, true
		}
		if status, ok := parseStatus(force); ok {
			if byStatus, err := d.store.TemplateByStatus(endpointID, status); err == nil {
				return byStatus, true
			}
		}
		d.log.Warn("forced template not found, falling back to default",
			"endpoint_id", endpointID, "force", force)
	}

	def, err := d.store.DefaultTemplate(endpointID)
	if err != nil {
		return nil, false
	}
	return def, false
}

// parseForm converts a URL-encoded body into a flat string map, keeping the
// first value for repeated keys.
func parseForm(body string) map[string]any {
	values, err := url.ParseQuery(body)
	if err != nil {
		return map[string]any{}
	}
	data := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			data[key] = vals[0]
		}
	}
	return data
}

func parseStatus(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	status := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		status = status*10 + int(r-'0')
	}
	if status < 100 || status > 599 {
		return 0, false
	}
	return status, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
