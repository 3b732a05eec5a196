package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/logging"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/validation"
)

// httpMethods lists the operations the importer converts, in the order
// they are visited within a path item.
var httpMethods = []string{"get", "post", "put", "delete", "patch"}

// typeMapping converts OpenAPI schema types to validation field types.
// Arrays and objects degrade to string validation.
var typeMapping = map[string]string{
	"string":  validation.TypeString,
	"integer": validation.TypeInt,
	"number":  validation.TypeFloat,
	"boolean": validation.TypeBool,
	"array":   validation.TypeString,
	"object":  validation.TypeString,
}

func mapType(openapiType string) string {
	if mapped, ok := typeMapping[openapiType]; ok {
		return mapped
	}
	return validation.TypeString
}

// Importer converts OpenAPI documents into endpoint definitions.
type Importer struct {
	log *slog.Logger
}

// New creates an importer with a no-op logger.
func New() *Importer {
	return &Importer{log: logging.Nop()}
}

// NewWithLogger creates an importer that logs import progress.
func NewWithLogger(log *slog.Logger) *Importer {
	if log == nil {
		log = logging.Nop()
	}
	return &Importer{log: log}
}

// ImportSpec parses, validates, and converts an OpenAPI document. It
// fails only when the document itself cannot be parsed or is structurally
// invalid; a conversion failure in one operation is recorded in the
// result's Errors and the remaining operations still convert.
func (im *Importer) ImportSpec(ctx context.Context, content string, format Format) (*api.ImportResult, error) {
	doc, err := parseDocument(content, format)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(ctx, content); err != nil {
		return nil, err
	}

	result := &api.ImportResult{
		Endpoints: []api.ImportedEndpoint{},
		Errors:    []string{},
		Warnings:  []string{},
	}
	resolver := NewResolver(doc)

	paths := getMap(doc, "paths")
	sortedPaths := make([]string, 0, len(paths))
	for path := range paths {
		sortedPaths = append(sortedPaths, path)
	}
	sort.Strings(sortedPaths)

	for _, path := range sortedPaths {
		pathItem := getMap(paths, path)
		for _, method := range httpMethods {
			op := getMap(pathItem, method)
			if op == nil {
				continue
			}
			upper := strings.ToUpper(method)

			converted, err := im.convertOperation(path, upper, op, resolver)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Error processing %s %s: %v", upper, path, err))
				continue
			}
			result.Endpoints = append(result.Endpoints, converted)
			result.TotalEndpoints++
		}
	}

	im.log.Info("imported OpenAPI document",
		"endpoints", result.TotalEndpoints, "errors", len(result.Errors))
	return result, nil
}

// convertOperation turns one path+method pair into an endpoint with its
// request schema and response templates.
func (im *Importer) convertOperation(path, method string, op map[string]any, resolver *Resolver) (api.ImportedEndpoint, error) {
	name := getString(op, "summary")
	if name == "" {
		name = method + " " + path
	}

	endpoint := api.Endpoint{
		Path:        path,
		Method:      method,
		Name:        name,
		Description: getString(op, "description"),
		IsActive:    true,
	}

	schema, err := buildRequestSchema(op, method, resolver)
	if err != nil {
		return api.ImportedEndpoint{}, err
	}
	templates, err := buildResponseTemplates(op, resolver)
	if err != nil {
		return api.ImportedEndpoint{}, err
	}

	return api.ImportedEndpoint{Endpoint: endpoint, Schema: schema, Templates: templates}, nil
}

// buildRequestSchema derives validation rules from the operation's
// request body (POST/PUT/PATCH only) and its query and header
// parameters. Returns nil when no rules can be derived: a schema is
// optional, not a zero-length placeholder.
func buildRequestSchema(op map[string]any, method string, resolver *Resolver) (*api.RequestSchema, error) {
	var rules []validation.FieldValidation

	if method == "POST" || method == "PUT" || method == "PATCH" {
		rules = append(rules, bodyValidations(op, resolver)...)
	}
	rules = append(rules, parameterValidations(asSlice(op["parameters"]), resolver)...)

	if len(rules) == 0 {
		return nil, nil
	}

	serialized, err := validation.SerializeRules(rules)
	if err != nil {
		return nil, err
	}

	name := getString(op, "operationId")
	if name == "" {
		name = "OpenAPI Schema"
	}
	return &api.RequestSchema{
		Name:        name + " Schema",
		Validations: serialized,
		IsDefault:   true,
	}, nil
}

// bodyValidations extracts rules from a JSON (or form-urlencoded, as
// fallback) request body schema, following one $ref hop at each level.
func bodyValidations(op map[string]any, resolver *Resolver) []validation.FieldValidation {
	body := getMap(op, "requestBody")
	if ref := getString(body, "$ref"); ref != "" {
		body = resolver.Resolve(ref)
	}
	if body == nil {
		return nil
	}

	content := getMap(body, "content")
	media := getMap(content, "application/json")
	if getMap(media, "schema") == nil {
		media = getMap(content, "application/x-www-form-urlencoded")
	}
	schema := getMap(media, "schema")
	if ref := getString(schema, "$ref"); ref != "" {
		schema = resolver.Resolve(ref)
	}
	if schema == nil {
		return nil
	}
	return schemaValidations(schema, resolver)
}

// schemaValidations converts an object schema into one rule per declared
// property. Root-level array and primitive schemas degrade to a single
// generic rule.
func schemaValidations(schema map[string]any, resolver *Resolver) []validation.FieldValidation {
	var rules []validation.FieldValidation

	switch schemaType(schema) {
	case "object":
		required := stringSlice(asSlice(schema["required"]))
		properties := getMap(schema, "properties")

		names := make([]string, 0, len(properties))
		for name := range properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			propSchema := asMap(properties[name])
			if ref := getString(propSchema, "$ref"); ref != "" {
				if resolved := resolver.Resolve(ref); resolved != nil {
					propSchema = resolved
				}
			}
			rules = append(rules, propertyRule(name, propSchema, contains(required, name)))
		}

	case "array":
		if items := getMap(schema, "items"); items != nil {
			rule := validation.FieldValidation{
				FieldName: "items",
				FieldType: validation.TypeString,
				Required:  true,
			}
			if n, ok := getInt(schema, "minItems"); ok {
				rule.MinLength = &n
			}
			if n, ok := getInt(schema, "maxItems"); ok {
				rule.MaxLength = &n
			}
			rules = append(rules, rule)
		}

	case "string", "integer", "number", "boolean":
		rules = append(rules, propertyRule("value", schema, true))
	}

	return rules
}

// propertyRule builds one validation rule from a body property schema.
// String properties with an email format validate as email.
func propertyRule(name string, schema map[string]any, required bool) validation.FieldValidation {
	rule := baseRule(name, schema, required)
	if getString(schema, "type") == "string" && getString(schema, "format") == "email" {
		rule.FieldType = validation.TypeEmail
	}
	return rule
}

// baseRule builds a rule from a schema using the plain type mapping.
func baseRule(name string, schema map[string]any, required bool) validation.FieldValidation {
	fieldType := getString(schema, "type")
	if fieldType == "" {
		fieldType = "string"
	}
	mapped := mapType(fieldType)

	rule := validation.FieldValidation{
		FieldName: name,
		FieldType: mapped,
		Required:  required,
		Pattern:   getString(schema, "pattern"),
	}
	if n, ok := getInt(schema, "minLength"); ok {
		rule.MinLength = &n
	}
	if n, ok := getInt(schema, "maxLength"); ok {
		rule.MaxLength = &n
	}
	if f, ok := getFloat(schema, "minimum"); ok {
		rule.MinValue = &f
	}
	if f, ok := getFloat(schema, "maximum"); ok {
		rule.MaxValue = &f
	}
	if enum := asSlice(schema["enum"]); len(enum) > 0 {
		rule.Choices = stringSlice(enum)
	}
	return rule
}

// parameterValidations converts query and header parameters into rules.
// Path parameters belong to URL structure and x- headers to transport, so
// both are skipped.
func parameterValidations(params []any, resolver *Resolver) []validation.FieldValidation {
	var rules []validation.FieldValidation

	for _, raw := range params {
		param := asMap(raw)
		if ref := getString(param, "$ref"); ref != "" {
			param = resolver.Resolve(ref)
			if param == nil {
				continue
			}
		}

		name := getString(param, "name")
		if name == "" {
			continue
		}
		in := getString(param, "in")
		if in != "query" && in != "header" {
			continue
		}
		if in == "header" && strings.HasPrefix(strings.ToLower(name), "x-") {
			continue
		}

		// The required flag lives on the parameter, not its schema.
		rules = append(rules, baseRule(name, getMap(param, "schema"), getBool(param, "required")))
	}

	return rules
}

// buildResponseTemplates converts every declared 2xx/4xx/5xx response.
// The first (lowest) 2xx becomes the endpoint's default template.
func buildResponseTemplates(op map[string]any, resolver *Resolver) ([]api.ResponseTemplate, error) {
	responses := getMap(op, "responses")

	statuses := make([]string, 0, len(responses))
	for status := range responses {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	templates := []api.ResponseTemplate{}
	hasDefault := false

	for _, status := range statuses {
		respDef := asMap(responses[status])
		if ref := getString(respDef, "$ref"); ref != "" {
			respDef = resolver.Resolve(ref)
			if respDef == nil {
				continue
			}
		}

		if !strings.HasPrefix(status, "2") && !strings.HasPrefix(status, "4") && !strings.HasPrefix(status, "5") {
			continue
		}
		isDefault := strings.HasPrefix(status, "2") && !hasDefault

		template, err := responseTemplate(status, respDef, resolver, isDefault)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
		if isDefault {
			hasDefault = true
		}
	}

	return templates, nil
}

// responseTemplate builds one template record: schema-directed synthesis
// when the response declares a JSON schema, a fixed-shape fallback
// otherwise.
func responseTemplate(status string, respDef map[string]any, resolver *Resolver, isDefault bool) (api.ResponseTemplate, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		return api.ResponseTemplate{}, fmt.Errorf("invalid status code %q", status)
	}

	var value any
	media := getMap(getMap(respDef, "content"), "application/json")
	schema := getMap(media, "schema")
	if ref := getString(schema, "$ref"); ref != "" {
		schema = resolver.Resolve(ref)
	}

	if schema != nil {
		synth := &synthesizer{resolver: resolver}
		value = synth.synthesize(schema, refSet{}, 0)
	} else if getMap(media, "schema") != nil {
		// Declared schema whose top-level $ref did not resolve.
		value = fallbackTemplate(status, "")
	} else {
		value = fallbackTemplate(status, getString(respDef, "description"))
	}

	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return api.ResponseTemplate{}, fmt.Errorf("encode template for status %s: %w", status, err)
	}

	return api.ResponseTemplate{
		Name:        "HTTP_" + status,
		Template:    string(encoded),
		StatusCode:  code,
		ContentType: "application/json",
		IsDefault:   isDefault,
	}, nil
}

func stringSlice(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
