package template

import "strings"

// PlaceholderType classifies a parsed placeholder by its prefix keyword.
type PlaceholderType int

const (
	// TypeRequest is a request-echo placeholder: ${request.<path>}.
	TypeRequest PlaceholderType = iota
	// TypeMock is a mock-data placeholder: ${mock.<kind>} or ${mock.<kind>[spec]}.
	TypeMock
	// TypeUnknown is any placeholder with an unrecognized prefix.
	TypeUnknown
)

// Placeholder is one parsed ${...} unit of template syntax. It exists only
// for the duration of a render or validate call.
type Placeholder struct {
	// Body is the raw placeholder body without the ${ } delimiters.
	Body string

	// Type selects which of the remaining fields are meaningful.
	Type PlaceholderType

	// Path is the dot-separated request field path (TypeRequest only).
	Path string

	// Kind is the mock value kind, e.g. "string" or "date.now" (TypeMock only).
	Kind string

	// Spec is the bracketed specifier without brackets, e.g. "6-10" or
	// "a,b,c". Empty when no specifier is present (TypeMock only).
	Spec string
}

const (
	requestPrefix = "request."
	mockPrefix    = "mock."
)

// parsePlaceholder classifies a placeholder body into its tagged form.
// A mock kind with a bracketed specifier splits at the first '['; a
// trailing ']' is required for the specifier to be recognized, otherwise
// the whole remainder is kept as the kind and the generator falls back to
// its default behavior.
func parsePlaceholder(body string) Placeholder {
	p := Placeholder{Body: body}

	switch {
	case strings.HasPrefix(body, requestPrefix):
		p.Type = TypeRequest
		p.Path = body[len(requestPrefix):]

	case strings.HasPrefix(body, mockPrefix):
		p.Type = TypeMock
		rest := body[len(mockPrefix):]
		if open := strings.IndexByte(rest, '['); open >= 0 && strings.HasSuffix(rest, "]") {
			p.Kind = rest[:open]
			p.Spec = rest[open+1 : len(rest)-1]
		} else {
			p.Kind = rest
		}

	default:
		p.Type = TypeUnknown
	}

	return p
}

// extractPlaceholders scans a template left to right and returns every
// well-formed ${...} placeholder in order of occurrence. Nested braces are
// not part of the grammar: the body ends at the first '}'. Text with an
// unterminated ${ is not a placeholder.
func extractPlaceholders(template string) []Placeholder {
	var out []Placeholder
	for i := 0; i < len(template); {
		open := strings.Index(template[i:], "${")
		if open < 0 {
			break
		}
		open += i
		close := strings.IndexByte(template[open+2:], '}')
		if close < 0 {
			break
		}
		close += open + 2
		out = append(out, parsePlaceholder(template[open+2:close]))
		i = close + 1
	}
	return out
}
