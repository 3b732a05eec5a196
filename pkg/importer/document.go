package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization of an imported document.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat guesses the serialization of a document: a first
// non-whitespace '{' means JSON, anything else is treated as YAML.
func DetectFormat(content string) Format {
	if strings.HasPrefix(strings.TrimSpace(content), "{") {
		return FormatJSON
	}
	return FormatYAML
}

// parseDocument decodes the document into a generic attribute tree for
// $ref resolution and schema walking.
func parseDocument(content string, format Format) (map[string]any, error) {
	if format == FormatAuto {
		format = DetectFormat(content)
	}

	var doc map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal([]byte(content), &doc); err != nil {
			return nil, fmt.Errorf("parse JSON document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
			return nil, fmt.Errorf("parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	return doc, nil
}

// validateDocument checks the document against the OpenAPI 3.x
// specification. A failure here is fatal to the whole import.
func validateDocument(ctx context.Context, content string) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData([]byte(content))
	if err != nil {
		return fmt.Errorf("load OpenAPI document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return nil
}
