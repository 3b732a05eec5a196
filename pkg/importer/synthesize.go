package importer

import (
	"fmt"
	"strings"
)

// Sentinel keys marking branches the synthesizer could not expand. They
// stay in the template as in-band data so the operator can spot and fix
// them.
const (
	circularRefKey   = "_circular_ref"
	unresolvedRefKey = "_unresolved_ref"
)

const unresolvedMessage = "Schema reference could not be resolved"

// maxSynthesisDepth bounds schema nesting, so import time stays
// proportional to the document even for pathologically deep schemas.
const maxSynthesisDepth = 32

// refSet tracks the $ref identifiers on the current root-to-leaf path.
// It is copied when recursion branches, so sibling subtrees cannot
// falsely report each other's cycles.
type refSet map[string]bool

func (s refSet) clone() refSet {
	c := make(refSet, len(s))
	for ref := range s {
		c[ref] = true
	}
	return c
}

func (s refSet) with(ref string) refSet {
	c := s.clone()
	c[ref] = true
	return c
}

// synthesizer walks response schemas and produces template values with
// embedded placeholders.
type synthesizer struct {
	resolver *Resolver
}

// synthesize converts one schema node into a template value: a map for
// object schemas, a single-element slice for array schemas, and a
// placeholder string for primitive leaves.
func (s *synthesizer) synthesize(schema map[string]any, visited refSet, depth int) any {
	if depth > maxSynthesisDepth {
		return "${mock.string[10-30]}"
	}

	if ref := getString(schema, "$ref"); ref != "" {
		if visited[ref] {
			return map[string]any{circularRefKey: ref}
		}
		resolved := s.resolver.Resolve(ref)
		if resolved == nil {
			return map[string]any{unresolvedRefKey: unresolvedMessage}
		}
		schema = resolved
		visited = visited.with(ref)
	}

	switch schemaType(schema) {
	case "object":
		return s.synthesizeObject(schema, visited, depth)
	case "array":
		items := getMap(schema, "items")
		return []any{s.synthesize(items, visited.clone(), depth+1)}
	default:
		return primitiveTemplate(schema)
	}
}

func (s *synthesizer) synthesizeObject(schema map[string]any, visited refSet, depth int) map[string]any {
	template := make(map[string]any)

	for propName, raw := range getMap(schema, "properties") {
		propSchema := asMap(raw)
		branch := visited

		if ref := getString(propSchema, "$ref"); ref != "" {
			if visited[ref] {
				template[propName] = map[string]any{circularRefKey: ref}
				continue
			}
			resolved := s.resolver.Resolve(ref)
			if resolved == nil {
				template[propName] = map[string]any{unresolvedRefKey: ref}
				continue
			}
			propSchema = resolved
			branch = visited.with(ref)
		}

		switch schemaType(propSchema) {
		case "object":
			template[propName] = s.synthesizeObject(propSchema, branch.clone(), depth+1)
		case "array":
			items := getMap(propSchema, "items")
			template[propName] = []any{s.synthesize(items, branch.clone(), depth+1)}
		default:
			template[propName] = leafPlaceholder(propName, propSchema)
		}
	}

	return template
}

// schemaType returns a schema's declared type, defaulting to object.
func schemaType(schema map[string]any) string {
	if t := getString(schema, "type"); t != "" {
		return t
	}
	return "object"
}

// requestWords is the vocabulary of field names that echo the incoming
// request instead of generating mock data.
var requestWords = []string{"name", "email", "phone", "description", "title", "message"}

func nameContainsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// leafPlaceholder maps a primitive property to a placeholder string using
// a naming-and-type heuristic. First match wins.
func leafPlaceholder(fieldName string, schema map[string]any) string {
	lower := strings.ToLower(fieldName)

	if nameContainsAny(lower, requestWords) {
		return "${request." + fieldName + "}"
	}

	switch schemaType(schema) {
	case "string":
		format := getString(schema, "format")
		switch {
		case format == "email":
			return "${mock.email}"
		case format == "date-time" || nameContainsAny(lower, []string{"date", "created", "updated", "time"}):
			return "${mock.date.now}"
		case format == "date":
			return "${mock.date}"
		case format == "time":
			return "${mock.time}"
		case nameContainsAny(lower, []string{"id", "uuid"}):
			return "${mock.uuid}"
		case nameContainsAny(lower, []string{"url", "link", "href"}):
			return "${mock.url}"
		case nameContainsAny(lower, []string{"price", "cost"}):
			return "${mock.currency}"
		case nameContainsAny(lower, []string{"category", "type", "status"}):
			return "${mock.string[8-15]}"
		}
		if enum := asSlice(schema["enum"]); len(enum) > 0 {
			return enumPlaceholder(enum)
		}
		return stringPlaceholder(schema)

	case "integer":
		switch {
		case strings.Contains(lower, "id"):
			return "${mock.id}"
		case nameContainsAny(lower, []string{"count", "total"}):
			return "${mock.int[1-100]}"
		case nameContainsAny(lower, []string{"price", "cost"}):
			return "${mock.int[1-10000]}"
		}
		return intPlaceholder(schema)

	case "number":
		if nameContainsAny(lower, []string{"price", "cost"}) {
			return "${mock.float[1.00-999.99]}"
		}
		return floatPlaceholder(schema)

	case "boolean":
		return "${mock.bool}"

	default:
		return "${mock.string[10-30]}"
	}
}

// primitiveTemplate handles non-object, non-array schemas at the root of
// a response, where there is no field name to drive the heuristic.
func primitiveTemplate(schema map[string]any) string {
	switch schemaType(schema) {
	case "string":
		if enum := asSlice(schema["enum"]); len(enum) > 0 {
			return enumPlaceholder(enum)
		}
		return stringPlaceholder(schema)
	case "integer":
		return intPlaceholder(schema)
	case "number":
		return floatPlaceholder(schema)
	case "boolean":
		return "${mock.bool}"
	default:
		return "${mock.string[10-30]}"
	}
}

func enumPlaceholder(enum []any) string {
	values := make([]string, len(enum))
	for i, v := range enum {
		values[i] = fmt.Sprintf("%v", v)
	}
	return "${mock.enum[" + strings.Join(values, ",") + "]}"
}

func stringPlaceholder(schema map[string]any) string {
	minLen, ok := getInt(schema, "minLength")
	if !ok {
		minLen = 5
	}
	maxLen, ok := getInt(schema, "maxLength")
	if !ok {
		maxLen = 20
	}
	return fmt.Sprintf("${mock.string[%d-%d]}", minLen, maxLen)
}

func intPlaceholder(schema map[string]any) string {
	min, ok := getInt(schema, "minimum")
	if !ok {
		min = 1
	}
	max, ok := getInt(schema, "maximum")
	if !ok {
		max = 1000
	}
	return fmt.Sprintf("${mock.int[%d-%d]}", min, max)
}

func floatPlaceholder(schema map[string]any) string {
	min, max := "0.1", "100.0"
	if v, ok := schema["minimum"]; ok {
		min = numberString(v)
	}
	if v, ok := schema["maximum"]; ok {
		max = numberString(v)
	}
	return "${mock.float[" + min + "-" + max + "]}"
}
