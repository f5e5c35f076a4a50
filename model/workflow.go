package model

import (
	"fmt"
	"regexp"
)

type StepDefinition struct {
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

// RecordRule is a cross-field constraint evaluated over the full normalized
// record at submit time. Expression is a javascript predicate over $; a falsy
// result attaches Message to the Anchor field.
type RecordRule struct {
	Anchor     string `json:"anchor"`
	Expression string `json:"expression"`
	Message    string `json:"message"`
}

type VerificationSpec struct {
	Service string         `json:"service"`
	Fields  []string       `json:"fields"`
	Payload map[string]any `json:"payload,omitempty"`
}

type WorkflowDefinition struct {
	Name           string            `json:"name"`
	Steps          []StepDefinition  `json:"steps"`
	Fields         []FieldSpec       `json:"fields"`
	Rules          []RecordRule      `json:"rules,omitempty"`
	Verification   *VerificationSpec `json:"verification,omitempty"`
	RejectField    string            `json:"rejectField,omitempty"`
	RejectPattern  string            `json:"rejectPattern,omitempty"`
	RejectMessage  string            `json:"rejectMessage,omitempty"`
	SuccessMessage string            `json:"successMessage"`
	Redirect       string            `json:"redirect,omitempty"`
}

// Validate checks the structural invariants of a definition: at least one
// step, every step field declared, every declared field owned by exactly one
// step, rule anchors declared, patterns compile.
func (w *WorkflowDefinition) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workflow name can not be empty")
	}
	if len(w.Steps) == 0 {
		return fmt.Errorf("workflow %s has no steps", w.Name)
	}
	declared := make(map[string]bool)
	for _, f := range w.Fields {
		if declared[f.Name] {
			return fmt.Errorf("workflow %s declares field %s twice", w.Name, f.Name)
		}
		if f.Pattern != "" {
			if _, err := regexp.Compile(f.Pattern); err != nil {
				return fmt.Errorf("workflow %s field %s has invalid pattern: %w", w.Name, f.Name, err)
			}
		}
		declared[f.Name] = true
	}
	owned := make(map[string]bool)
	for _, step := range w.Steps {
		for _, name := range step.Fields {
			if !declared[name] {
				return fmt.Errorf("workflow %s step %s references undeclared field %s", w.Name, step.Label, name)
			}
			if owned[name] {
				return fmt.Errorf("workflow %s field %s is owned by two steps", w.Name, name)
			}
			owned[name] = true
		}
	}
	for name := range declared {
		if !owned[name] {
			return fmt.Errorf("workflow %s field %s is not owned by any step", w.Name, name)
		}
	}
	for _, rule := range w.Rules {
		if !declared[rule.Anchor] {
			return fmt.Errorf("workflow %s rule anchored to undeclared field %s", w.Name, rule.Anchor)
		}
	}
	if w.RejectPattern != "" {
		if w.RejectField == "" {
			return fmt.Errorf("workflow %s has a reject pattern without a reject field", w.Name)
		}
		if _, err := regexp.Compile(w.RejectPattern); err != nil {
			return fmt.Errorf("workflow %s has invalid reject pattern: %w", w.Name, err)
		}
	}
	return nil
}

func (w *WorkflowDefinition) FieldByName(name string) (FieldSpec, bool) {
	for _, f := range w.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// StepFields returns the FieldSpecs owned by step i, in declaration order of
// the overall field set.
func (w *WorkflowDefinition) StepFields(i int) []FieldSpec {
	if i < 0 || i >= len(w.Steps) {
		return nil
	}
	owned := make(map[string]bool)
	for _, name := range w.Steps[i].Fields {
		owned[name] = true
	}
	var specs []FieldSpec
	for _, f := range w.Fields {
		if owned[f.Name] {
			specs = append(specs, f)
		}
	}
	return specs
}
