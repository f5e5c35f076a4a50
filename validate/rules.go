package validate

import (
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"go.uber.org/zap"
)

// EvaluateRules runs each record rule as a javascript predicate with $ bound
// to the normalized record. A rule that evaluates falsy, or fails to
// evaluate at all, attaches its message to the anchor field.
func EvaluateRules(record map[string]any, rules []model.RecordRule) map[string]string {
	if len(rules) == 0 {
		return nil
	}
	errors := make(map[string]string)
	data, err := json.Marshal(record)
	if err != nil {
		logger.Error("error serializing record for rule evaluation", zap.Error(err))
		for _, rule := range rules {
			errors[rule.Anchor] = rule.Message
		}
		return errors
	}
	vm := goja.New()
	if _, err := vm.RunString(fmt.Sprintf("var $ = %s;", data)); err != nil {
		logger.Error("error binding record for rule evaluation", zap.Error(err))
		for _, rule := range rules {
			errors[rule.Anchor] = rule.Message
		}
		return errors
	}
	for _, rule := range rules {
		val, err := vm.RunString(rule.Expression)
		if err != nil {
			logger.Error("error evaluating record rule", zap.String("anchor", rule.Anchor), zap.Error(err))
			errors[rule.Anchor] = rule.Message
			continue
		}
		if !val.ToBoolean() {
			if _, exists := errors[rule.Anchor]; !exists {
				errors[rule.Anchor] = rule.Message
			}
		}
	}
	return errors
}
