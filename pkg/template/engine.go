package template

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/logging"
)

// Engine renders response templates by substituting ${...} placeholders.
// An Engine is stateless apart from its logger and safe for concurrent use.
type Engine struct {
	log *slog.Logger
}

// New creates a template engine with a no-op logger.
func New() *Engine {
	return &Engine{log: logging.Nop()}
}

// NewWithLogger creates a template engine that logs render diagnostics.
func NewWithLogger(log *slog.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{log: log}
}

// Render substitutes every well-formed placeholder in a single left-to-right
// pass. Substituted text is never re-scanned, so placeholder-shaped output
// from a request echo stays literal. Rendering never fails: request paths
// that do not resolve become empty strings, unknown mock kinds echo as
// literal text, and unknown prefixes are left verbatim with their
// delimiters.
//
// The result should be valid JSON once placeholders are filled; a parse
// failure is logged as a diagnostic but does not change the returned string.
func (e *Engine) Render(template string, requestData map[string]any) string {
	var sb strings.Builder
	i := 0
	for {
		open := strings.Index(template[i:], "${")
		if open < 0 {
			sb.WriteString(template[i:])
			break
		}
		open += i
		close := strings.IndexByte(template[open+2:], '}')
		if close < 0 {
			sb.WriteString(template[i:])
			break
		}
		close += open + 2

		sb.WriteString(template[i:open])
		sb.WriteString(e.resolve(parsePlaceholder(template[open+2:close]), requestData))
		i = close + 1
	}

	result := sb.String()
	if !json.Valid([]byte(result)) {
		e.log.Debug("rendered template is not valid JSON", "length", len(result))
	}
	return result
}

// resolve produces the substitution text for one parsed placeholder.
func (e *Engine) resolve(p Placeholder, requestData map[string]any) string {
	switch p.Type {
	case TypeRequest:
		val := lookupPath(requestData, p.Path)
		if val == nil {
			return ""
		}
		return formatValue(val)
	case TypeMock:
		return generateMock(p)
	default:
		return "${" + p.Body + "}"
	}
}

// lookupPath walks a parsed JSON object by dot-separated keys. Returns nil
// if any segment is missing or the container at that segment is not a map.
func lookupPath(data map[string]any, path string) any {
	var current any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// formatValue converts a resolved request value to its string form.
func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// TemplateReport describes the placeholders found in a template and any
// syntax problems, without producing stored output.
type TemplateReport struct {
	Valid         bool     `json:"valid"`
	Placeholders  []string `json:"placeholders"`
	RequestFields []string `json:"request_fields"`
	MockFields    []string `json:"mock_fields"`
	Errors        []string `json:"errors"`
}

// Validate extracts every placeholder from a template and classifies it by
// prefix. A placeholder with an unrecognized prefix is an error. The
// template is then trial-rendered with a fixed dummy value for every
// discovered request field; if the rendered result is not valid JSON, that
// is reported as an error too.
func (e *Engine) Validate(template string) *TemplateReport {
	report := &TemplateReport{
		Valid:         true,
		Placeholders:  []string{},
		RequestFields: []string{},
		MockFields:    []string{},
		Errors:        []string{},
	}

	for _, p := range extractPlaceholders(template) {
		report.Placeholders = append(report.Placeholders, p.Body)
		switch p.Type {
		case TypeRequest:
			report.RequestFields = append(report.RequestFields, p.Path)
		case TypeMock:
			report.MockFields = append(report.MockFields, p.Body[len(mockPrefix):])
		default:
			report.Errors = append(report.Errors, "Unknown placeholder type: "+p.Body)
			report.Valid = false
		}
	}

	testData := make(map[string]any, len(report.RequestFields))
	for _, field := range report.RequestFields {
		testData[field] = "test_value"
	}
	if rendered := e.Render(template, testData); !json.Valid([]byte(rendered)) {
		report.Errors = append(report.Errors, "Invalid JSON template")
		report.Valid = false
	}

	return report
}
