// Package api defines the shared data-transfer types that cross the
// boundary between the import engine, the persistence layer, and the
// admin API.
package api

// Endpoint describes a mock endpoint: the path and method it answers on,
// plus operator-facing metadata.
type Endpoint struct {
	// Path is the endpoint path, e.g. /webhook/candidate.
	Path string `json:"path"`

	// Method is the HTTP method, e.g. POST.
	Method string `json:"method"`

	// Name is a human-readable endpoint name.
	Name string `json:"name"`

	// Description is optional free-form documentation.
	Description string `json:"description,omitempty"`

	// IsActive controls whether the endpoint answers live traffic.
	IsActive bool `json:"is_active"`
}

// RequestSchema holds a serialized field-validation rule list for an
// endpoint. Validations is a JSON array of field-validation rules as
// produced by validation.SerializeRules.
type RequestSchema struct {
	// Name identifies the schema.
	Name string `json:"name"`

	// Validations is the JSON-serialized rule list.
	Validations string `json:"validations"`

	// IsDefault marks the schema applied to incoming requests when no
	// explicit schema is selected.
	IsDefault bool `json:"is_default"`
}

// ResponseTemplate is a JSON response body with embedded ${...}
// placeholders, plus the transport metadata needed to serve it.
type ResponseTemplate struct {
	// Name identifies the template, e.g. HTTP_200.
	Name string `json:"name"`

	// Template is the JSON body with ${...} placeholders.
	Template string `json:"template"`

	// StatusCode is the HTTP status code to answer with.
	StatusCode int `json:"status_code"`

	// ContentType is the response content type.
	ContentType string `json:"content_type"`

	// IsDefault marks the template served when none is forced.
	IsDefault bool `json:"is_default"`
}

// ImportedEndpoint bundles one converted OpenAPI operation: the endpoint
// descriptor, an optional request schema, and its response templates.
type ImportedEndpoint struct {
	Endpoint  Endpoint           `json:"endpoint"`
	Schema    *RequestSchema     `json:"schema,omitempty"`
	Templates []ResponseTemplate `json:"templates"`
}

// ImportResult aggregates the outcome of one OpenAPI import.
// TotalEndpoints counts successfully converted operations only; Errors
// carries the per-operation failures that did not abort the batch.
type ImportResult struct {
	Endpoints      []ImportedEndpoint `json:"endpoints"`
	TotalEndpoints int                `json:"total_endpoints"`
	Errors         []string           `json:"errors"`
	Warnings       []string           `json:"warnings"`
}
