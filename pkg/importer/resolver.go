package importer

import "strings"

// Resolver resolves $ref pointers within one parsed document. It is
// stateless: cycle detection is the caller's responsibility, so the same
// ref may be resolved repeatedly.
type Resolver struct {
	doc map[string]any
}

// NewResolver creates a resolver over a parsed document tree.
func NewResolver(doc map[string]any) *Resolver {
	return &Resolver{doc: doc}
}

// Resolve walks a local reference of the form #/a/b/c and returns the
// node it points at. Cross-document refs and refs whose path does not
// exist resolve to nil.
func (r *Resolver) Resolve(ref string) map[string]any {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}

	var current any = r.doc
	for _, part := range strings.Split(ref[2:], "/") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return asMap(current)
}
