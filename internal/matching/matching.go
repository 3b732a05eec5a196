// Package matching matches request paths against endpoint route patterns.
//
// Routes use OpenAPI-style templates: /candidates/{id} matches
// /candidates/123 and exposes id as a path parameter. A trailing /*
// wildcard matches any remaining segments.
package matching

import "strings"

// MatchPath reports whether the request path matches the route pattern.
// Exact matches, {param} segments, and a trailing /* wildcard are
// supported.
func MatchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	if !strings.Contains(pattern, "{") {
		return false
	}

	patternParts := splitPath(pattern)
	pathParts := splitPath(path)
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, part := range patternParts {
		if isParam(part) {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}

// IsExact reports whether the pattern contains no parameters or wildcards.
func IsExact(pattern string) bool {
	return !strings.Contains(pattern, "{") && !strings.Contains(pattern, "*")
}

// PathParams extracts {param} values from a matching path. Returns an
// empty map when the pattern has no parameters.
func PathParams(pattern, path string) map[string]string {
	params := map[string]string{}
	if !strings.Contains(pattern, "{") {
		return params
	}

	patternParts := splitPath(pattern)
	pathParts := splitPath(path)
	for i, part := range patternParts {
		if i >= len(pathParts) {
			break
		}
		if isParam(part) {
			params[part[1:len(part)-1]] = pathParts[i]
		}
	}
	return params
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}
