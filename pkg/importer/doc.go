// Package importer converts OpenAPI 3.x documents into mock endpoint
// definitions: an endpoint descriptor per operation, validation rules
// derived from request bodies and parameters, and response templates
// synthesized from declared response schemas.
//
// The import is batch-oriented with partial-failure semantics. A
// structurally invalid document aborts the whole import; a single bad
// operation is reported in the result's error list and the remaining
// operations still convert. Schema walking follows $ref pointers within
// the document, detects reference cycles, and marks unresolvable or
// cyclic branches with in-band sentinel values instead of failing, since
// synthesized templates are best-effort artifacts the operator can edit
// afterwards.
package importer
