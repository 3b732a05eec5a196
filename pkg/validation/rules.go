package validation

import (
	"encoding/json"
	"fmt"
)

// ParseRules decodes a JSON array of field-validation rules and checks the
// structural invariants every rule list must satisfy: non-empty unique
// field names, a known field type, and ordered bounds.
func ParseRules(rulesJSON string) ([]FieldValidation, error) {
	var rules []FieldValidation
	if err := json.Unmarshal([]byte(rulesJSON), &rules); err != nil {
		return nil, fmt.Errorf("invalid JSON in validation rules: %w", err)
	}

	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule.FieldName == "" {
			return nil, fmt.Errorf("invalid validation rule %d: field_name is empty", i)
		}
		if seen[rule.FieldName] {
			return nil, fmt.Errorf("invalid validation rule %d: duplicate field_name %q", i, rule.FieldName)
		}
		seen[rule.FieldName] = true

		if !knownTypes[rule.FieldType] {
			return nil, fmt.Errorf("invalid validation rule %d: unknown field_type %q", i, rule.FieldType)
		}
		if rule.MinLength != nil && *rule.MinLength < 0 {
			return nil, fmt.Errorf("invalid validation rule %d: negative min_length", i)
		}
		if rule.MaxLength != nil && *rule.MaxLength < 0 {
			return nil, fmt.Errorf("invalid validation rule %d: negative max_length", i)
		}
		if rule.MinLength != nil && rule.MaxLength != nil && *rule.MinLength > *rule.MaxLength {
			return nil, fmt.Errorf("invalid validation rule %d: min_length exceeds max_length", i)
		}
		if rule.MinValue != nil && rule.MaxValue != nil && *rule.MinValue > *rule.MaxValue {
			return nil, fmt.Errorf("invalid validation rule %d: min_value exceeds max_value", i)
		}
	}

	return rules, nil
}

// SerializeRules encodes a rule list as indented JSON, the storage format
// for request schemas. ParseRules inverts it.
func SerializeRules(rules []FieldValidation) (string, error) {
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize validation rules: %w", err)
	}
	return string(data), nil
}
