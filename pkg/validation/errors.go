package validation

// FieldError is one violated constraint for one field. Value carries the
// raw offending input and may be nil for a missing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Result is the outcome of validating one payload against one rule list.
// Valid is true exactly when Errors is empty; use NewResult or AddError so
// the invariant holds.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// NewResult returns a passing result with no errors.
func NewResult() *Result {
	return &Result{Valid: true, Errors: []FieldError{}}
}

// AddError records a violation and marks the result invalid.
func (r *Result) AddError(field, message string, value any) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message, Value: value})
}

// addAll appends a batch of errors, keeping the Valid invariant.
func (r *Result) addAll(errs []FieldError) {
	if len(errs) == 0 {
		return
	}
	r.Valid = false
	r.Errors = append(r.Errors, errs...)
}
