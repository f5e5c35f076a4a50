package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/votecard/cardflow/model"
)

func fraudSpec() *model.VerificationSpec {
	return &model.VerificationSpec{
		Service: SERVICE_FRAUD,
		Fields:  []string{"cardCode", "accountNumber"},
	}
}

func TestRemoteVerifier(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test well formed response maps through": testRemoteWellFormed,
		"test error status yields default":       testRemoteErrorStatus,
		"test malformed body yields default":     testRemoteMalformedBody,
		"test out of range score yields default": testRemoteOutOfRangeScore,
		"test timeout yields default":            testRemoteTimeout,
	} {
		t.Run(scenario, fn)
	}
}

func testRemoteWellFormed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"isFraudulent":true,"riskScore":87,"fraudExplanation":"multiple redemptions from one address"}`))
	}))
	defer server.Close()

	v := NewRemoteVerifier(server.URL, time.Second, FraudContract())
	result := v.Verify(context.Background(), fraudSpec(), map[string]any{"cardCode": "OK-1"})
	require.True(t, result.Verdict)
	require.Equal(t, float64(87), result.Score)
	require.Equal(t, "multiple redemptions from one address", result.Explanation)
}

func testRemoteErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	v := NewRemoteVerifier(server.URL, time.Second, FraudContract())
	result := v.Verify(context.Background(), fraudSpec(), map[string]any{})
	require.False(t, result.Verdict)
	require.Equal(t, float64(0), result.Score)
}

func testRemoteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	v := NewRemoteVerifier(server.URL, time.Second, FraudContract())
	result := v.Verify(context.Background(), fraudSpec(), map[string]any{})
	require.Equal(t, DefaultResult(), result)
}

func testRemoteOutOfRangeScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isFraudulent":false,"riskScore":250,"fraudExplanation":"x"}`))
	}))
	defer server.Close()

	v := NewRemoteVerifier(server.URL, time.Second, FraudContract())
	result := v.Verify(context.Background(), fraudSpec(), map[string]any{})
	require.Equal(t, DefaultResult(), result)
}

func testRemoteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	v := NewRemoteVerifier(server.URL, 50*time.Millisecond, FraudContract())
	result := v.Verify(context.Background(), fraudSpec(), map[string]any{})
	require.Equal(t, DefaultResult(), result)
}

func TestLegitimacyContractMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isLegitimate":true,"legitimacyScore":92,"analysis":"known party, realistic order"}`))
	}))
	defer server.Close()

	spec := &model.VerificationSpec{Service: SERVICE_LEGITIMACY, Fields: []string{"politicianName"}}
	v := NewRemoteVerifier(server.URL, time.Second, LegitimacyContract())
	result := v.Verify(context.Background(), spec, map[string]any{"politicianName": "Ada Obi"})
	require.True(t, result.Verdict)
	require.Equal(t, float64(92), result.Score)
}

func TestHeuristicVerifier(t *testing.T) {
	v := NewHeuristicVerifier()
	spec := &model.VerificationSpec{
		Service: SERVICE_FRAUD,
		Fields:  []string{"accountName", "accountNumber"},
	}

	clean := v.Verify(context.Background(), spec, map[string]any{
		"accountName":   "Ada Obi",
		"accountNumber": "0123456789",
	})
	require.False(t, clean.Verdict)
	require.Equal(t, float64(0), clean.Score)
	require.Equal(t, "No anomalies detected.", clean.Explanation)

	flagged := v.Verify(context.Background(), spec, map[string]any{
		"accountName":   "test",
		"accountNumber": "0000000000",
	})
	require.True(t, flagged.Verdict)
	require.Equal(t, float64(70), flagged.Score)

	// deterministic
	again := v.Verify(context.Background(), spec, map[string]any{
		"accountName":   "test",
		"accountNumber": "0000000000",
	})
	require.Equal(t, flagged, again)
}

func TestBuildPayload(t *testing.T) {
	record := map[string]any{
		"accountNumber": "0123456789",
		"bankName":      "Zenith Bank",
		"orderItems":    []any{map[string]any{"denomination": float64(500), "quantity": float64(100)}},
	}

	spec := &model.VerificationSpec{
		Service: SERVICE_FRAUD,
		Fields:  []string{"accountNumber", "bankName"},
		Payload: map[string]any{
			"redemptionData": "account={$.accountNumber} bank={$.bankName}",
		},
	}
	payload := BuildPayload(spec, record)
	require.Equal(t, "account=0123456789 bank=Zenith Bank", payload["redemptionData"])

	// without a template the body is the plain field subset
	spec = &model.VerificationSpec{Service: SERVICE_FRAUD, Fields: []string{"bankName"}}
	payload = BuildPayload(spec, record)
	require.Equal(t, map[string]any{"bankName": "Zenith Bank"}, payload)

	// non-scalar values are serialized as json
	spec = &model.VerificationSpec{
		Service: SERVICE_LEGITIMACY,
		Fields:  []string{"orderItems"},
		Payload: map[string]any{"orderItems": "{$.orderItems}"},
	}
	payload = BuildPayload(spec, record)
	require.Equal(t, `[{"denomination":500,"quantity":100}]`, payload["orderItems"])
}
