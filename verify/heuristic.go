package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/votecard/cardflow/model"
)

var placeholderValues = []string{"test", "asdf", "none", "n/a", "xxx"}

// HeuristicVerifier is a local rule-based scorer used when no remote service
// is configured. It is deterministic: the same record always produces the
// same result.
type HeuristicVerifier struct {
	threshold float64
}

func NewHeuristicVerifier() *HeuristicVerifier {
	return &HeuristicVerifier{threshold: 50}
}

func (h *HeuristicVerifier) Verify(ctx context.Context, spec *model.VerificationSpec, record map[string]any) model.VerificationResult {
	score := 0.0
	var signals []string
	for _, name := range spec.Fields {
		value, ok := record[name].(string)
		if !ok {
			continue
		}
		lowered := strings.ToLower(strings.TrimSpace(value))
		for _, placeholder := range placeholderValues {
			if lowered == placeholder {
				score += 40
				signals = append(signals, fmt.Sprintf("%s looks like a placeholder", name))
				break
			}
		}
		if isRepeatedDigits(lowered) {
			score += 30
			signals = append(signals, fmt.Sprintf("%s is a repeated digit sequence", name))
		}
	}
	if score > 100 {
		score = 100
	}
	explanation := "No anomalies detected."
	if len(signals) > 0 {
		explanation = strings.Join(signals, "; ")
	}
	return model.VerificationResult{
		Verdict:     score >= h.threshold,
		Score:       score,
		Explanation: explanation,
	}
}

func isRepeatedDigits(s string) bool {
	if len(s) < 4 {
		return false
	}
	first := s[0]
	if first < '0' || first > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}
