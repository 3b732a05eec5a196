// Package validation type-checks request payloads against declarative
// per-field rule lists.
//
// A rule list is an ordered sequence of FieldValidation entries, one per
// payload field. Validate walks the list in order and accumulates one
// FieldError per violated constraint; a single field can contribute
// several errors. Validation is best-effort by design: unknown field
// types, malformed regex patterns, and internal faults become field-level
// errors rather than panics, so one bad rule never takes down request
// handling.
//
// Rule lists are stored as JSON; ParseRules and SerializeRules convert
// between the wire form and []FieldValidation.
package validation
