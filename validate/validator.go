package validate

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/votecard/cardflow/model"
)

// Validate applies each FieldSpec in specs to the raw values, in declaration
// order. Per field the checks run as required-presence, kind coercion, then
// value constraints, stopping at the first violation. Fields not named in
// specs are never evaluated, which is what scopes validation to a single
// step. The returned map holds the coerced values of every passing field.
func Validate(values map[string]any, specs []model.FieldSpec) (map[string]any, map[string]string) {
	normalized := make(map[string]any)
	errors := make(map[string]string)
	for _, spec := range specs {
		raw, present := values[spec.Name]
		if !present || raw == nil || isEmptyString(raw) {
			if spec.RequiredTrue {
				errors[spec.Name] = spec.Message(model.RULE_REQUIRED_TRUE)
			} else if spec.Required {
				errors[spec.Name] = spec.Message(model.RULE_REQUIRED)
			}
			continue
		}
		value, ok := coerce(raw, spec.Kind)
		if !ok {
			errors[spec.Name] = spec.Message(model.RULE_KIND)
			continue
		}
		if rule, ok := checkConstraints(value, spec); !ok {
			errors[spec.Name] = spec.Message(rule)
			continue
		}
		normalized[spec.Name] = value
	}
	return normalized, errors
}

// ValidateRecord validates the full field set of a definition and then
// evaluates its record-level rules. Rules run only when every field passed,
// over the normalized record; a failing rule anchors its message to the
// configured field.
func ValidateRecord(values map[string]any, def *model.WorkflowDefinition) (map[string]any, map[string]string) {
	normalized, errors := Validate(values, def.Fields)
	if len(errors) > 0 {
		return normalized, errors
	}
	for field, msg := range EvaluateRules(normalized, def.Rules) {
		if _, exists := errors[field]; !exists {
			errors[field] = msg
		}
	}
	return normalized, errors
}

// FirstError returns the message of the first field, in declaration order,
// that has an error.
func FirstError(specs []model.FieldSpec, errors map[string]string) string {
	for _, spec := range specs {
		if msg, ok := errors[spec.Name]; ok {
			return msg
		}
	}
	return ""
}

func isEmptyString(raw any) bool {
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) == ""
}

func coerce(raw any, kind model.FieldKind) (any, bool) {
	switch kind {
	case model.FIELD_KIND_STRING, model.FIELD_KIND_ENUM:
		s, ok := raw.(string)
		return s, ok
	case model.FIELD_KIND_NUMBER:
		return coerceNumber(raw)
	case model.FIELD_KIND_BOOLEAN:
		return coerceBoolean(raw)
	case model.FIELD_KIND_ARRAY:
		return coerceArray(raw)
	}
	return nil, false
}

func coerceNumber(raw any) (any, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return nil, false
}

func coerceBoolean(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		// "on" is what unvalued html checkboxes post
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return nil, false
}

func coerceArray(raw any) (any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	case string:
		var items []any
		if err := json.Unmarshal([]byte(v), &items); err != nil {
			return nil, false
		}
		return items, true
	}
	return nil, false
}

func checkConstraints(value any, spec model.FieldSpec) (string, bool) {
	switch v := value.(type) {
	case string:
		if spec.MinLen > 0 && len(v) < spec.MinLen {
			return model.RULE_MIN_LEN, false
		}
		if spec.MaxLen > 0 && len(v) > spec.MaxLen {
			return model.RULE_MAX_LEN, false
		}
		if spec.Pattern != "" {
			matched, err := regexp.MatchString(spec.Pattern, v)
			if err != nil || !matched {
				return model.RULE_PATTERN, false
			}
		}
		if spec.Kind == model.FIELD_KIND_ENUM && !containsString(spec.Values, v) {
			return model.RULE_ENUM, false
		}
	case float64:
		if spec.Min != nil && v < *spec.Min {
			return model.RULE_MIN, false
		}
		if spec.Max != nil && v > *spec.Max {
			return model.RULE_MAX, false
		}
	case bool:
		if spec.RequiredTrue && !v {
			return model.RULE_REQUIRED_TRUE, false
		}
	case []any:
		if spec.MinLen > 0 && len(v) < spec.MinLen {
			return model.RULE_MIN_LEN, false
		}
		if spec.MaxLen > 0 && len(v) > spec.MaxLen {
			return model.RULE_MAX_LEN, false
		}
	}
	return "", true
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
