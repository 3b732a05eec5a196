// Package requestlog stores request history for inspection via the admin
// API.
package requestlog

import "time"

// Entry captures one mock request and the response served for it.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	// Method and Path identify the request.
	Method string `json:"method"`
	Path   string `json:"path"`

	// QueryString is the raw query string.
	QueryString string `json:"query_string,omitempty"`

	// Body is the request body content, truncated if oversized.
	Body string `json:"body,omitempty"`

	// RemoteAddr is the client address.
	RemoteAddr string `json:"remote_addr,omitempty"`

	// EndpointID is the matched endpoint, empty on a miss.
	EndpointID string `json:"endpoint_id,omitempty"`

	// TemplateName is the response template that was rendered.
	TemplateName string `json:"template_name,omitempty"`

	// ResponseStatus is the status code returned.
	ResponseStatus int `json:"response_status"`

	// ValidationFailed reports whether the request was rejected by the
	// endpoint's request schema.
	ValidationFailed bool `json:"validation_failed,omitempty"`

	// DurationMs is the request processing time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// Filter defines criteria for listing request logs.
type Filter struct {
	// Method filters by HTTP method.
	Method string

	// Path filters by path prefix.
	Path string

	// EndpointID filters by matched endpoint.
	EndpointID string

	// StatusCode filters by response status code.
	StatusCode int

	// Limit is the maximum number of entries to return. Zero means all.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

// Logger is the minimal sink interface used by the dispatcher.
type Logger interface {
	Log(entry *Entry)
}

// Store is request history storage queried by the admin API.
type Store interface {
	Logger

	// Get retrieves a log entry by ID, or nil.
	Get(id string) *Entry

	// List returns entries newest first, optionally filtered.
	List(filter *Filter) []*Entry

	// Clear removes all log entries.
	Clear()

	// Count returns the number of stored entries.
	Count() int
}
