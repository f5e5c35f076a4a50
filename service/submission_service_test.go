package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
	"github.com/votecard/cardflow/persistence/inmem"
	"github.com/votecard/cardflow/seed"
)

func newTestService(t *testing.T) *SubmissionService {
	var wg sync.WaitGroup
	storage := inmem.NewInmemMetadataStorage()
	require.NoError(t, seed.Register(storage))
	runs := inmem.NewInmemRunStore(30*time.Minute, &wg)
	return NewSubmissionService(storage, runs, nil, nil)
}

func TestRedemptionEndToEnd(t *testing.T) {
	s := newTestService(t)

	record, err := s.StartRun("card-redemption")
	require.NoError(t, err)
	require.Equal(t, 0, record.Step)

	result, err := s.Submit(record.Id, map[string]any{
		"cardCode":     "OK-0001",
		"serialNumber": "SN-1",
		"consent":      true,
	})
	require.NoError(t, err)
	require.Equal(t, model.RESULT_SUCCESS, result.Status)
	require.Equal(t, "/redeem/details", result.Redirect)

	// the run is destroyed on a terminal state
	_, err = s.Submit(record.Id, nil)
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)
}

func TestRedemptionRejectedCode(t *testing.T) {
	s := newTestService(t)

	record, err := s.StartRun("card-redemption")
	require.NoError(t, err)

	result, err := s.Submit(record.Id, map[string]any{
		"cardCode":     "FAIL123",
		"serialNumber": "SN-1",
		"consent":      true,
	})
	require.NoError(t, err)
	require.Equal(t, model.RESULT_ERROR, result.Status)
	require.Equal(t, "This card code is invalid or has already been used.", result.Message)
}

func TestDetailsWizard(t *testing.T) {
	s := newTestService(t)

	record, err := s.StartRun("redemption-details")
	require.NoError(t, err)

	record, err = s.Advance(record.Id, map[string]any{
		"accountName": "Ada Obi",
		"email":       "ada@example.com",
		"phone":       "08012345678",
		"nin":         "12345678901",
	})
	require.NoError(t, err)
	require.Equal(t, 1, record.Step)

	record, err = s.Advance(record.Id, map[string]any{
		"accountNumber": "0123456789",
		"bankName":      "Zenith Bank",
		"bvn":           "12345678901",
	})
	require.NoError(t, err)
	require.Equal(t, 2, record.Step)

	record, err = s.Back(record.Id)
	require.NoError(t, err)
	require.Equal(t, 1, record.Step)
	require.Equal(t, "Ada Obi", record.Values["accountName"])

	record, err = s.Advance(record.Id, nil)
	require.NoError(t, err)
	require.Equal(t, 2, record.Step)

	result, err := s.Submit(record.Id, map[string]any{
		"state": "Lagos",
		"lga":   "Ikeja",
	})
	require.NoError(t, err)
	require.Equal(t, model.RESULT_SUCCESS, result.Status)
}

func TestOrderTotalQuantity(t *testing.T) {
	s := newTestService(t)

	record, err := s.StartRun("card-order")
	require.NoError(t, err)

	record, err = s.Advance(record.Id, map[string]any{
		"title":          "Hon",
		"politicianName": "Ada Obi",
		"politicalParty": "APC",
		"politicalRole":  "Senator",
		"email":          "ada@example.com",
		"phone":          "08012345678",
	})
	require.NoError(t, err)
	require.Equal(t, 1, record.Step)

	result, err := s.Submit(record.Id, map[string]any{
		"orderItems": `[{"denomination":2000,"quantity":50}]`,
	})
	require.NoError(t, err)
	require.Equal(t, model.RESULT_ERROR, result.Status)
	require.Equal(t, "Total quantity must be at least 100.", result.Message)
}

func TestUnknownWorkflow(t *testing.T) {
	s := newTestService(t)
	_, err := s.StartRun("no-such-flow")
	require.Error(t, err)
}

func TestDefinitionLifecycle(t *testing.T) {
	s := newTestService(t)

	def := model.WorkflowDefinition{
		Name:  "custom",
		Steps: []model.StepDefinition{{Label: "One", Fields: []string{"a"}}},
		Fields: []model.FieldSpec{
			{Name: "a", Kind: model.FIELD_KIND_STRING, Required: true},
		},
		SuccessMessage: "done",
	}
	require.NoError(t, s.CreateDefinition(def))

	loaded, err := s.GetDefinition("custom")
	require.NoError(t, err)
	require.Equal(t, "custom", loaded.Name)

	// a structurally invalid definition is refused
	def.Steps[0].Fields = []string{"missing"}
	require.Error(t, s.CreateDefinition(def))

	require.NoError(t, s.DeleteDefinition("custom"))
	_, err = s.GetDefinition("custom")
	require.Error(t, err)
}
