package verify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"go.uber.org/zap"
)

// RemoteVerifier posts the payload to an external scoring service over http.
// The call is bounded by the client timeout; a timeout, an error status or a
// response that does not satisfy the contract all yield the default result.
type RemoteVerifier struct {
	client   *resty.Client
	url      string
	contract ResponseContract
}

func NewRemoteVerifier(url string, timeout time.Duration, contract ResponseContract) *RemoteVerifier {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &RemoteVerifier{
		client:   client,
		url:      url,
		contract: contract,
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, spec *model.VerificationSpec, record map[string]any) model.VerificationResult {
	payload := BuildPayload(spec, record)
	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(v.url)
	if err != nil {
		logger.Error("verification request failed", zap.String("service", spec.Service), zap.Error(err))
		return DefaultResult()
	}
	if resp.IsError() {
		logger.Error("verification service returned error status", zap.String("service", spec.Service), zap.Int("status", resp.StatusCode()))
		return DefaultResult()
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		logger.Error("verification response is not valid json", zap.String("service", spec.Service), zap.Error(err))
		return DefaultResult()
	}
	result, ok := v.mapResponse(body)
	if !ok {
		logger.Error("verification response violates contract", zap.String("service", spec.Service))
		return DefaultResult()
	}
	return result
}

func (v *RemoteVerifier) mapResponse(body map[string]any) (model.VerificationResult, bool) {
	verdict, ok := body[v.contract.Verdict].(bool)
	if !ok {
		return model.VerificationResult{}, false
	}
	score, ok := body[v.contract.Score].(float64)
	if !ok || score < 0 || score > 100 {
		return model.VerificationResult{}, false
	}
	explanation, ok := body[v.contract.Explanation].(string)
	if !ok {
		return model.VerificationResult{}, false
	}
	return model.VerificationResult{
		Verdict:     verdict,
		Score:       score,
		Explanation: explanation,
	}, true
}
