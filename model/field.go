package model

import "fmt"

type FieldKind string

const FIELD_KIND_STRING FieldKind = "string"
const FIELD_KIND_NUMBER FieldKind = "number"
const FIELD_KIND_BOOLEAN FieldKind = "boolean"
const FIELD_KIND_ENUM FieldKind = "enum"
const FIELD_KIND_ARRAY FieldKind = "array"

// Constraint identifiers, used as keys into FieldSpec.Messages.
const RULE_REQUIRED string = "required"
const RULE_KIND string = "kind"
const RULE_MIN_LEN string = "minLen"
const RULE_MAX_LEN string = "maxLen"
const RULE_MIN string = "min"
const RULE_MAX string = "max"
const RULE_PATTERN string = "pattern"
const RULE_ENUM string = "enum"
const RULE_REQUIRED_TRUE string = "requiredTrue"

type FieldSpec struct {
	Name         string            `json:"name"`
	Label        string            `json:"label"`
	Kind         FieldKind         `json:"kind"`
	Required     bool              `json:"required"`
	RequiredTrue bool              `json:"requiredTrue,omitempty"`
	MinLen       int               `json:"minLen,omitempty"`
	MaxLen       int               `json:"maxLen,omitempty"`
	Min          *float64          `json:"min,omitempty"`
	Max          *float64          `json:"max,omitempty"`
	Pattern      string            `json:"pattern,omitempty"`
	Values       []string          `json:"values,omitempty"`
	Messages     map[string]string `json:"messages,omitempty"`
}

// Message returns the configured message for a violated constraint, falling
// back to a generic one built from the field label.
func (f FieldSpec) Message(rule string) string {
	if msg, ok := f.Messages[rule]; ok {
		return msg
	}
	label := f.Label
	if label == "" {
		label = f.Name
	}
	switch rule {
	case RULE_REQUIRED:
		return fmt.Sprintf("%s is required.", label)
	case RULE_REQUIRED_TRUE:
		return fmt.Sprintf("%s must be accepted.", label)
	case RULE_KIND:
		return fmt.Sprintf("%s has an invalid value.", label)
	case RULE_MIN_LEN:
		return fmt.Sprintf("%s is too short.", label)
	case RULE_MAX_LEN:
		return fmt.Sprintf("%s is too long.", label)
	case RULE_MIN:
		return fmt.Sprintf("%s is too small.", label)
	case RULE_MAX:
		return fmt.Sprintf("%s is too large.", label)
	case RULE_PATTERN:
		return fmt.Sprintf("%s has an invalid format.", label)
	case RULE_ENUM:
		return fmt.Sprintf("Please select a valid %s.", label)
	}
	return fmt.Sprintf("%s is invalid.", label)
}

func Float(v float64) *float64 {
	return &v
}
