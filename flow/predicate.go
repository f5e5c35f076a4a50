package flow

import (
	"fmt"
	"regexp"

	"github.com/votecard/cardflow/model"
)

// TerminalPredicate is an extra submit-time check that can fail an otherwise
// schema-valid record. It returns the user-facing message when it rejects.
type TerminalPredicate func(record map[string]any) (string, bool)

// RejectByPattern rejects any record whose field value matches the pattern.
// This models known-invalid or already-used code checks.
func RejectByPattern(field string, pattern string, message string) (TerminalPredicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid reject pattern %s: %w", pattern, err)
	}
	return func(record map[string]any) (string, bool) {
		value, ok := record[field].(string)
		if !ok {
			return "", false
		}
		if re.MatchString(value) {
			return message, true
		}
		return "", false
	}, nil
}

// PredicatesFor builds the terminal predicates a definition configures.
func PredicatesFor(def *model.WorkflowDefinition) ([]TerminalPredicate, error) {
	if def.RejectPattern == "" {
		return nil, nil
	}
	predicate, err := RejectByPattern(def.RejectField, def.RejectPattern, def.RejectMessage)
	if err != nil {
		return nil, err
	}
	return []TerminalPredicate{predicate}, nil
}
