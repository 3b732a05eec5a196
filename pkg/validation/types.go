package validation

import "encoding/json"

// Field type constants for FieldValidation.FieldType.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeEmail  = "email"
)

// knownTypes lists every field type the validator dispatches on.
var knownTypes = map[string]bool{
	TypeString: true,
	TypeInt:    true,
	TypeFloat:  true,
	TypeBool:   true,
	TypeEmail:  true,
}

// FieldValidation is one declarative constraint set for one named field of
// a request payload. Rule lists are ordered; a FieldValidation is immutable
// once validation begins.
type FieldValidation struct {
	// FieldName is the payload key this rule applies to. Non-empty and
	// unique within its rule list.
	FieldName string `json:"field_name"`

	// FieldType is one of string, int, float, bool, email.
	FieldType string `json:"field_type"`

	// Required reports whether the field must be present. Defaults to
	// true when absent from rule JSON.
	Required bool `json:"required"`

	// MinLength and MaxLength bound string length. String fields only.
	MinLength *int `json:"min_length,omitempty"`
	MaxLength *int `json:"max_length,omitempty"`

	// MinValue and MaxValue bound numeric values. Int and float fields
	// only.
	MinValue *float64 `json:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty"`

	// Pattern is an optional regular expression the value must match
	// from the start of the string. String fields only.
	Pattern string `json:"pattern,omitempty"`

	// Choices is an optional ordered set of allowed literal strings.
	Choices []string `json:"choices,omitempty"`
}

// UnmarshalJSON applies the Required=true default for rules that omit the
// field.
func (f *FieldValidation) UnmarshalJSON(data []byte) error {
	type plain FieldValidation
	tmp := plain{Required: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*f = FieldValidation(tmp)
	return nil
}
