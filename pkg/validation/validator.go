package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validate checks a request payload against an ordered rule list and
// returns one error per violated constraint, in rule order then check
// order. It never panics for well-formed rules; an unexpected internal
// fault surfaces as a per-field validation error instead.
func Validate(data map[string]any, rules []FieldValidation) *Result {
	result := NewResult()

	for _, rule := range rules {
		value, present := data[rule.FieldName]
		if !present {
			if rule.Required {
				result.AddError(rule.FieldName, "Field is required", nil)
			}
			continue
		}
		if value == nil && !rule.Required {
			continue
		}
		result.addAll(validateField(rule, value))
	}

	return result
}

// validateField dispatches on the rule's field type. The recover guard
// keeps a single faulty rule from aborting validation of the whole
// payload.
func validateField(rule FieldValidation, value any) (errs []FieldError) {
	defer func() {
		if r := recover(); r != nil {
			errs = append(errs, FieldError{
				Field:   rule.FieldName,
				Message: fmt.Sprintf("Validation error: %v", r),
				Value:   value,
			})
		}
	}()

	switch rule.FieldType {
	case TypeString:
		errs = validateString(rule, toString(value), value)

	case TypeInt:
		n, ok := coerceInt(value)
		if !ok {
			return []FieldError{{Field: rule.FieldName, Message: "Value must be an integer", Value: value}}
		}
		errs = validateNumeric(rule, float64(n), value)

	case TypeFloat:
		f, ok := coerceFloat(value)
		if !ok {
			return []FieldError{{Field: rule.FieldName, Message: "Value must be a number", Value: value}}
		}
		errs = validateNumeric(rule, f, value)

	case TypeBool:
		if _, ok := coerceBool(value); !ok {
			return []FieldError{{Field: rule.FieldName, Message: "Value must be a boolean", Value: value}}
		}

	case TypeEmail:
		if !validEmail(toString(value)) {
			return []FieldError{{Field: rule.FieldName, Message: "Invalid email format", Value: value}}
		}

	default:
		return []FieldError{{
			Field:   rule.FieldName,
			Message: "Unknown field type: " + rule.FieldType,
			Value:   value,
		}}
	}

	return errs
}

func validateString(rule FieldValidation, value string, raw any) []FieldError {
	var errs []FieldError
	length := utf8.RuneCountInString(value)

	if rule.MinLength != nil && length < *rule.MinLength {
		errs = append(errs, FieldError{
			Field:   rule.FieldName,
			Message: fmt.Sprintf("Value must be at least %d characters long", *rule.MinLength),
			Value:   raw,
		})
	}
	if rule.MaxLength != nil && length > *rule.MaxLength {
		errs = append(errs, FieldError{
			Field:   rule.FieldName,
			Message: fmt.Sprintf("Value must be no more than %d characters long", *rule.MaxLength),
			Value:   raw,
		})
	}

	if rule.Pattern != "" {
		// Anchored at the start only, so a pattern constrains the prefix
		// unless it ends with $.
		re, err := regexp.Compile("^(?:" + rule.Pattern + ")")
		if err != nil {
			errs = append(errs, FieldError{
				Field:   rule.FieldName,
				Message: "Invalid regex pattern: " + rule.Pattern,
				Value:   raw,
			})
		} else if !re.MatchString(value) {
			errs = append(errs, FieldError{
				Field:   rule.FieldName,
				Message: "Value does not match required pattern: " + rule.Pattern,
				Value:   raw,
			})
		}
	}

	if len(rule.Choices) > 0 && !contains(rule.Choices, value) {
		errs = append(errs, FieldError{
			Field:   rule.FieldName,
			Message: "Value must be one of: " + strings.Join(rule.Choices, ", "),
			Value:   raw,
		})
	}

	return errs
}

func validateNumeric(rule FieldValidation, value float64, raw any) []FieldError {
	var errs []FieldError

	if rule.MinValue != nil && value < *rule.MinValue {
		errs = append(errs, FieldError{
			Field:   rule.FieldName,
			Message: "Value must be at least " + formatNumber(*rule.MinValue),
			Value:   raw,
		})
	}
	if rule.MaxValue != nil && value > *rule.MaxValue {
		errs = append(errs, FieldError{
			Field:   rule.FieldName,
			Message: "Value must be no more than " + formatNumber(*rule.MaxValue),
			Value:   raw,
		})
	}

	return errs
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toString coerces any JSON value to its string form. Never fails.
func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coerceInt accepts native numbers (truncating fractions), booleans, and
// decimal strings.
func coerceInt(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// coerceFloat accepts native numbers, booleans, and numeric strings.
func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceBool accepts native booleans and the usual truthy/falsy string
// spellings, case-insensitively.
func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
	}
	return false, false
}
