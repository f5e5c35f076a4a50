package verify

import (
	"context"
	"sync"

	"github.com/votecard/cardflow/model"
)

const SERVICE_FRAUD string = "fraud-detection"
const SERVICE_LEGITIMACY string = "order-verification"

const defaultExplanation string = "Verification could not be completed."

// Verifier scores a normalized record subset against one external service.
// Implementations never return an error: any fault collapses into the
// default result.
type Verifier interface {
	Verify(ctx context.Context, spec *model.VerificationSpec, record map[string]any) model.VerificationResult
}

// DefaultResult is the fail-open verdict used on any transport or protocol
// fault.
func DefaultResult() model.VerificationResult {
	return model.VerificationResult{
		Verdict:     false,
		Score:       0,
		Explanation: defaultExplanation,
	}
}

// ResponseContract names the response fields of one external service.
type ResponseContract struct {
	Verdict     string
	Score       string
	Explanation string
}

// FraudContract matches the fraud detection service response.
func FraudContract() ResponseContract {
	return ResponseContract{
		Verdict:     "isFraudulent",
		Score:       "riskScore",
		Explanation: "fraudExplanation",
	}
}

// LegitimacyContract matches the order verification service response.
func LegitimacyContract() ResponseContract {
	return ResponseContract{
		Verdict:     "isLegitimate",
		Score:       "legitimacyScore",
		Explanation: "analysis",
	}
}

type Registry struct {
	mu        sync.RWMutex
	verifiers map[string]Verifier
}

func NewRegistry() *Registry {
	return &Registry{
		verifiers: make(map[string]Verifier),
	}
}

func (r *Registry) Register(service string, v Verifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifiers[service] = v
}

func (r *Registry) Get(service string) (Verifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.verifiers[service]
	return v, ok
}
