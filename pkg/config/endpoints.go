package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/validation"
)

// EndpointEntry is one item of the endpoints list. It is either an inline
// endpoint definition, a reference to a single endpoint file, or a glob of
// endpoint files.
type EndpointEntry struct {
	// Inline definition fields.
	Path        string           `yaml:"path,omitempty"`
	Method      string           `yaml:"method,omitempty"`
	Name        string           `yaml:"name,omitempty"`
	Description string           `yaml:"description,omitempty"`
	Active      *bool            `yaml:"active,omitempty"`
	Validations []ValidationRule `yaml:"validations,omitempty"`
	Responses   []ResponseDef    `yaml:"responses,omitempty"`

	// File is a reference to a YAML file holding one or more endpoints.
	File string `yaml:"file,omitempty"`

	// Files is a glob pattern of endpoint files. Supports ** recursion.
	Files string `yaml:"files,omitempty"`
}

// IsInline reports whether the entry defines an endpoint directly.
func (e *EndpointEntry) IsInline() bool { return e.Path != "" }

// IsFileRef reports whether the entry references a single file.
func (e *EndpointEntry) IsFileRef() bool { return e.File != "" }

// IsGlob reports whether the entry is a glob of endpoint files.
func (e *EndpointEntry) IsGlob() bool { return e.Files != "" }

func (e *EndpointEntry) validate() error {
	switch {
	case e.IsInline():
		if e.Method == "" {
			return fmt.Errorf("endpoint %s: missing method", e.Path)
		}
		for i := range e.Responses {
			if e.Responses[i].Status == 0 {
				return fmt.Errorf("endpoint %s: responses[%d] missing status", e.Path, i)
			}
		}
		return nil
	case e.IsFileRef(), e.IsGlob():
		return nil
	default:
		return errors.New("entry needs a path, file, or files field")
	}
}

// ValidationRule is the YAML form of a request validation rule.
type ValidationRule struct {
	Field     string   `yaml:"field"`
	Type      string   `yaml:"type"`
	Required  *bool    `yaml:"required,omitempty"`
	MinLength *int     `yaml:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty"`
	MinValue  *float64 `yaml:"min_value,omitempty"`
	MaxValue  *float64 `yaml:"max_value,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Choices   []string `yaml:"choices,omitempty"`
}

// toRule converts the YAML rule to its validation engine form. Required
// defaults to true when omitted.
func (v ValidationRule) toRule() validation.FieldValidation {
	required := true
	if v.Required != nil {
		required = *v.Required
	}
	return validation.FieldValidation{
		FieldName: v.Field,
		FieldType: v.Type,
		Required:  required,
		MinLength: v.MinLength,
		MaxLength: v.MaxLength,
		MinValue:  v.MinValue,
		MaxValue:  v.MaxValue,
		Pattern:   v.Pattern,
		Choices:   v.Choices,
	}
}

// ResponseDef is the YAML form of a response template. The template body is
// given either as a raw string or as a YAML structure serialized to JSON.
type ResponseDef struct {
	Name        string `yaml:"name,omitempty"`
	Status      int    `yaml:"status"`
	ContentType string `yaml:"content_type,omitempty"`
	Default     bool   `yaml:"default,omitempty"`
	Template    string `yaml:"template,omitempty"`
	Body        any    `yaml:"body,omitempty"`
}

// EndpointFileContent is the parsed contents of an endpoint file: either a
// single endpoint definition or an array of them.
type EndpointFileContent struct {
	EndpointEntry `yaml:",inline"`

	// Entries is populated when the file holds an array of endpoints.
	Entries []EndpointFileContent `yaml:"-"`
}

// UnmarshalYAML handles both single-endpoint and array file formats.
func (c *EndpointFileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var entries []EndpointFileContent
		if err := node.Decode(&entries); err != nil {
			return err
		}
		c.Entries = entries
		return nil
	}
	return node.Decode(&c.EndpointEntry)
}

// LoadAllEndpoints expands the endpoint entries into a flat list of inline
// definitions, reading file references and globs relative to baseDir.
func LoadAllEndpoints(entries []EndpointEntry, baseDir string) ([]EndpointEntry, error) {
	var result []EndpointEntry
	for i, entry := range entries {
		switch {
		case entry.IsInline():
			result = append(result, entry)
		case entry.IsFileRef():
			loaded, err := loadEndpointsFromFile(resolvePath(baseDir, entry.File))
			if err != nil {
				return nil, err
			}
			result = append(result, loaded...)
		case entry.IsGlob():
			loaded, err := loadEndpointsFromGlob(entry.Files, baseDir)
			if err != nil {
				return nil, err
			}
			result = append(result, loaded...)
		default:
			return nil, fmt.Errorf("endpoints[%d]: entry needs a path, file, or files field", i)
		}
	}
	return result, nil
}

func loadEndpointsFromFile(path string) ([]EndpointEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading endpoint file: %w", err)
	}

	var content EndpointFileContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parsing endpoint file %s: %w", path, err)
	}

	if len(content.Entries) > 0 {
		result := make([]EndpointEntry, 0, len(content.Entries))
		for _, entry := range content.Entries {
			if err := entry.validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			result = append(result, entry.EndpointEntry)
		}
		return result, nil
	}

	if err := content.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []EndpointEntry{content.EndpointEntry}, nil
}

// loadEndpointsFromGlob loads endpoint files matching a glob pattern.
// Supports ** for recursive directory matching via the doublestar library.
func loadEndpointsFromGlob(pattern, baseDir string) ([]EndpointEntry, error) {
	matches, err := expandGlob(resolvePath(baseDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	sort.Strings(matches)

	var result []EndpointEntry
	for _, match := range matches {
		loaded, err := loadEndpointsFromFile(match)
		if err != nil {
			return nil, err
		}
		result = append(result, loaded...)
	}
	return result, nil
}

// expandGlob expands a glob pattern. Uses doublestar for ** support, falls
// back to filepath.Glob for simple patterns.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ToImported converts an inline endpoint entry to the common imported
// endpoint shape shared with the OpenAPI importer.
func (e *EndpointEntry) ToImported() (*api.ImportedEndpoint, error) {
	method := strings.ToUpper(e.Method)
	name := e.Name
	if name == "" {
		name = method + " " + e.Path
	}
	active := true
	if e.Active != nil {
		active = *e.Active
	}

	imported := &api.ImportedEndpoint{
		Endpoint: api.Endpoint{
			Path:        e.Path,
			Method:      method,
			Name:        name,
			Description: e.Description,
			IsActive:    active,
		},
	}

	if len(e.Validations) > 0 {
		rules := make([]validation.FieldValidation, 0, len(e.Validations))
		for _, v := range e.Validations {
			rules = append(rules, v.toRule())
		}
		serialized, err := validation.SerializeRules(rules)
		if err != nil {
			return nil, fmt.Errorf("endpoint %s %s: %w", method, e.Path, err)
		}
		imported.Schema = &api.RequestSchema{
			Name:        name + " Schema",
			Validations: serialized,
			IsDefault:   true,
		}
	}

	// The first response is the default unless one is marked explicitly.
	haveExplicitDefault := false
	for _, resp := range e.Responses {
		if resp.Default {
			haveExplicitDefault = true
		}
	}
	for i, resp := range e.Responses {
		tmpl, err := resp.template()
		if err != nil {
			return nil, fmt.Errorf("endpoint %s %s: %w", method, e.Path, err)
		}
		respName := resp.Name
		if respName == "" {
			respName = fmt.Sprintf("HTTP_%d", resp.Status)
		}
		contentType := resp.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		isDefault := resp.Default || (!haveExplicitDefault && i == 0)
		imported.Templates = append(imported.Templates, api.ResponseTemplate{
			Name:        respName,
			Template:    tmpl,
			StatusCode:  resp.Status,
			ContentType: contentType,
			IsDefault:   isDefault,
		})
	}
	return imported, nil
}

func (r *ResponseDef) template() (string, error) {
	if r.Template != "" {
		return r.Template, nil
	}
	if r.Body == nil {
		return "{}", nil
	}
	data, err := json.MarshalIndent(r.Body, "", "  ")
	if err != nil {
		return "", fmt.Errorf("response %d body: %w", r.Status, err)
	}
	return string(data), nil
}
